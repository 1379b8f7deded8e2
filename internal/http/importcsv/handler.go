package importcsv

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/http/render"
	txhttp "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const maxUploadSize = 10 << 20

//go:generate mockgen -source=handler.go -destination=service_mock.go -package=importcsv
type Importer interface {
	Import(bank importer.Bank, r io.Reader) ([]transaction.CreateParams, error)
}

type Suggester interface {
	Suggest(ctx context.Context, rawDescription string) (uuid.UUID, bool, error)
}

type Recorder interface {
	ImportBatch(ctx context.Context, personID uuid.UUID, params []transaction.CreateParams) (*transaction.ImportResult, error)
}

type Handler struct {
	importSvc Importer
	matchSvc  Suggester
	txSvc     Recorder
}

func NewHandler(importSvc Importer, matchSvc Suggester, txSvc Recorder) *Handler {
	return &Handler{
		importSvc: importSvc,
		matchSvc:  matchSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rejectedResponse struct {
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Kind        transaction.Kind `json:"kind"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	Reason      string           `json:"reason"`
}

type importResponse struct {
	Imported     int                `json:"imported"`
	Transactions []txhttp.Response  `json:"transactions"`
	Rejected     []rejectedResponse `json:"rejected"`
}

// importCSV parses a bank export for one person, assigns each row the
// category learned for its description and records what the rules accept.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		http.Error(w, "bank field is required", http.StatusBadRequest)
		return
	}

	personID, err := uuid.Parse(r.FormValue("person_id"))
	if err != nil {
		http.Error(w, "person_id field must be a valid id", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i, p := range params {
		categoryID, ok, err := h.matchSvc.Suggest(r.Context(), p.Description)
		if err != nil {
			slog.Error("failed to suggest category", "description", p.Description, "error", err)
			continue
		}

		if ok {
			params[i].CategoryID = categoryID
		}
	}

	result, err := h.txSvc.ImportBatch(r.Context(), personID, params)
	if err != nil {
		if errors.Is(err, transaction.ErrReferenceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		render.Internal(w, r, "failed to import transactions", err)

		return
	}

	status := http.StatusOK
	if len(result.Imported) > 0 {
		status = http.StatusCreated
	}

	render.JSON(w, status, toResponse(result))
}

func toResponse(result *transaction.ImportResult) importResponse {
	resp := importResponse{
		Imported:     len(result.Imported),
		Transactions: txhttp.ToResponseList(result.Imported),
		Rejected:     make([]rejectedResponse, 0, len(result.Rejected)),
	}

	for _, rej := range result.Rejected {
		row := rejectedResponse{
			Description: rej.Params.Description,
			Amount:      rej.Params.Amount,
			Kind:        rej.Params.Kind,
			Reason:      rej.Reason,
		}
		if rej.Params.CategoryID != uuid.Nil {
			row.CategoryID = &rej.Params.CategoryID
		}

		resp.Rejected = append(resp.Rejected, row)
	}

	return resp
}
