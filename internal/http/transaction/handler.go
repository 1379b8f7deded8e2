package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=transaction
type Service interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
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
}

type createTransactionRequest struct {
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Kind        transaction.Kind `json:"kind"`
	PersonID    uuid.UUID        `json:"person_id"`
	CategoryID  uuid.UUID        `json:"category_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := render.Decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Kind:        req.Kind,
		PersonID:    req.PersonID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		Fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, ToResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		Fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, ToResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.IDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		Fail(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, ToResponse(tx))
}

// ParseListFilter reads the optional person_id and category_id query parameters.
func ParseListFilter(r *http.Request) (transaction.ListFilter, error) {
	personID, err := render.OptionalUUID(r, "person_id")
	if err != nil {
		return transaction.ListFilter{}, err
	}

	categoryID, err := render.OptionalUUID(r, "category_id")
	if err != nil {
		return transaction.ListFilter{}, err
	}

	return transaction.ListFilter{PersonID: personID, CategoryID: categoryID}, nil
}

// Fail maps transaction errors onto HTTP statuses. A rule violation answers
// 400 with its reason as the body.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	var violation *transaction.RuleViolation

	switch {
	case errors.As(err, &violation):
		http.Error(w, violation.Reason, http.StatusBadRequest)
	case errors.Is(err, transaction.ErrReferenceNotFound), errors.Is(err, transaction.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrInvalidKind),
		errors.Is(err, transaction.ErrInvalidDescription):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		render.Internal(w, r, "transaction request failed", err)
	}
}
