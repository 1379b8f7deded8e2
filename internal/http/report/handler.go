package report

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/http/render"
	txhttp "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=report
type Service interface {
	PersonTotals(ctx context.Context) (*report.PersonReport, error)
	CategoryTotals(ctx context.Context) (*report.CategoryReport, error)
	Summary(ctx context.Context, filter transaction.ListFilter) (report.Totals, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/people", h.people)
	r.Get("/categories", h.categories)
	r.Get("/summary", h.summary)
}

type totalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func toTotals(t report.Totals) totalsResponse {
	return totalsResponse{Income: t.Income, Expense: t.Expense, Balance: t.Balance}
}

type personRow struct {
	PersonID uuid.UUID `json:"person_id"`
	Name     string    `json:"name"`
	Age      int       `json:"age"`
	totalsResponse
}

type personReportResponse struct {
	People []personRow    `json:"people"`
	Total  totalsResponse `json:"total"`
}

type categoryRow struct {
	CategoryID  uuid.UUID        `json:"category_id"`
	Description string           `json:"description"`
	Purpose     category.Purpose `json:"purpose"`
	totalsResponse
}

type categoryReportResponse struct {
	Categories []categoryRow  `json:"categories"`
	Total      totalsResponse `json:"total"`
}

func (h *Handler) people(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.PersonTotals(r.Context())
	if err != nil {
		render.Internal(w, r, "failed to build person report", err)
		return
	}

	resp := personReportResponse{People: make([]personRow, 0, len(rep.Rows)), Total: toTotals(rep.Total)}
	for _, row := range rep.Rows {
		resp.People = append(resp.People, personRow{
			PersonID:       row.PersonID,
			Name:           row.Name,
			Age:            row.Age,
			totalsResponse: toTotals(row.Totals),
		})
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.CategoryTotals(r.Context())
	if err != nil {
		render.Internal(w, r, "failed to build category report", err)
		return
	}

	resp := categoryReportResponse{Categories: make([]categoryRow, 0, len(rep.Rows)), Total: toTotals(rep.Total)}
	for _, row := range rep.Rows {
		resp.Categories = append(resp.Categories, categoryRow{
			CategoryID:     row.CategoryID,
			Description:    row.Description,
			Purpose:        row.Purpose,
			totalsResponse: toTotals(row.Totals),
		})
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := txhttp.ParseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	totals, err := h.svc.Summary(r.Context(), filter)
	if err != nil {
		render.Internal(w, r, "failed to build summary", err)
		return
	}

	render.JSON(w, http.StatusOK, toTotals(totals))
}
