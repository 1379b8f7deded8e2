package category

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=category
type Service interface {
	Create(ctx context.Context, params category.CreateParams) (*category.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
	List(ctx context.Context) ([]*category.Category, error)
	Update(ctx context.Context, id uuid.UUID, params category.UpdateParams) (*category.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
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

type categoryResponse struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Purpose     category.Purpose `json:"purpose"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Description: c.Description,
		Purpose:     c.Purpose,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type categoryRequest struct {
	Description *string           `json:"description"`
	Purpose     *category.Purpose `json:"purpose"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var params category.CreateParams
	if req.Description != nil {
		params.Description = *req.Description
	}

	if req.Purpose != nil {
		params.Purpose = *req.Purpose
	}

	c, err := h.svc.Create(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(c))
}

// list accepts ?kind=expense|income and then keeps only the categories a
// transaction of that kind may be recorded in.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var kind *transaction.Kind

	if s := r.URL.Query().Get("kind"); s != "" {
		k := transaction.Kind(s)
		if !k.Valid() {
			http.Error(w, transaction.ErrInvalidKind.Error(), http.StatusBadRequest)
			return
		}

		kind = &k
	}

	categories, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		if kind != nil && !transaction.IsKindCompatible(*kind, c.Purpose) {
			continue
		}

		resp = append(resp, toResponse(c))
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req categoryRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), id, category.UpdateParams{Description: req.Description, Purpose: req.Purpose})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}

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
	case errors.Is(err, category.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, category.ErrInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, category.ErrInvalidDescription), errors.Is(err, category.ErrInvalidPurpose):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		render.Internal(w, r, "category request failed", err)
	}
}
