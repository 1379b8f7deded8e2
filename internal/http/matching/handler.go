package matching

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/matching"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=matching
type Service interface {
	Suggest(ctx context.Context, rawDescription string) (uuid.UUID, bool, error)
	Learn(ctx context.Context, pattern string, categoryID uuid.UUID) (*matching.Rule, error)
	List(ctx context.Context) ([]*matching.Rule, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Get("/", h.list)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	id, ok, err := h.svc.Suggest(r.Context(), desc)
	if err != nil {
		render.Internal(w, r, "failed to suggest category", err)
		return
	}

	resp := suggestResponse{Description: desc}
	if ok {
		resp.CategoryID = &id
	}

	render.JSON(w, http.StatusOK, resp)
}

type ruleResponse struct {
	ID         uuid.UUID `json:"id"`
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(rule *matching.Rule) ruleResponse {
	return ruleResponse{
		ID:         rule.ID,
		Pattern:    rule.Pattern,
		CategoryID: rule.CategoryID,
		CreatedAt:  rule.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		render.Internal(w, r, "failed to list rules", err)
		return
	}

	resp := make([]ruleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, toResponse(rule))
	}

	render.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	Pattern    string    `json:"pattern"`
	CategoryID uuid.UUID `json:"category_id"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Learn(r.Context(), req.Pattern, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrInvalidPattern):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, matching.ErrCategoryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			render.Internal(w, r, "failed to learn rule", err)
		}

		return
	}

	render.JSON(w, http.StatusCreated, toResponse(rule))
}
