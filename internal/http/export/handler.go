package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/http/render"
	txhttp "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=export
type Service interface {
	Export(ctx context.Context, filter transaction.ListFilter) (*export.Statement, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.metadata)
	r.Get("/download", h.download)
}

type totalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type exportMetadataResponse struct {
	Transactions []txhttp.Response `json:"transactions"`
	Totals       totalsResponse    `json:"totals"`
	Summary      string            `json:"summary"`
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) (*export.Statement, bool) {
	filter, err := txhttp.ParseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	st, err := h.svc.Export(r.Context(), filter)
	if err != nil {
		render.Internal(w, r, "failed to export transactions", err)
		return nil, false
	}

	return st, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	st, ok := h.statement(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, exportMetadataResponse{
		Transactions: txhttp.ToResponseList(st.Transactions),
		Totals: totalsResponse{
			Income:  st.Totals.Income,
			Expense: st.Totals.Expense,
			Balance: st.Totals.Balance,
		},
		Summary: export.Summary(st),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	st, ok := h.statement(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"statement_%s.zip\"", h.now().Format("20060102")))

	if err := export.WriteArchive(w, st); err != nil {
		slog.Error("failed to write statement archive", "error", err)
	}
}
