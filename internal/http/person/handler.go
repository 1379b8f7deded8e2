package person

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/person"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=person
type Service interface {
	Create(ctx context.Context, params person.CreateParams) (*person.Person, error)
	Get(ctx context.Context, id uuid.UUID) (*person.Person, error)
	List(ctx context.Context) ([]*person.Person, error)
	Update(ctx context.Context, id uuid.UUID, params person.UpdateParams) (*person.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Today() time.Time
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type personResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	BirthDate string     `json:"birth_date"`
	Age       int        `json:"age"`
	IsMinor   bool       `json:"is_minor"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (h *Handler) toResponse(p *person.Person) personResponse {
	today := h.svc.Today()

	return personResponse{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate.Format(time.DateOnly),
		Age:       p.AgeOn(today),
		IsMinor:   p.IsMinorOn(today),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type personRequest struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birth_date"`
}

func (req personRequest) birthDate() (*time.Time, error) {
	if req.BirthDate == nil {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *req.BirthDate)
	if err != nil {
		return nil, errors.New("birth_date must be formatted as YYYY-MM-DD")
	}

	return &t, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	birth, err := req.birthDate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := person.CreateParams{}
	if req.Name != nil {
		params.Name = *req.Name
	}

	if birth != nil {
		params.BirthDate = *birth
	}

	p, err := h.svc.Create(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, h.toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	people, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := make([]personResponse, 0, len(people))
	for _, p := range people {
		resp = append(resp, h.toResponse(p))
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, h.toResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req personRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	birth, err := req.birthDate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Update(r.Context(), id, person.UpdateParams{Name: req.Name, BirthDate: birth})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, h.toResponse(p))
}

// delete also removes every transaction owned by the person.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, person.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, person.ErrInvalidName), errors.Is(err, person.ErrInvalidBirthDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		render.Internal(w, r, "person request failed", err)
	}
}
