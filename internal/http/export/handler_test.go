package export_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/export"
	exporthttp "github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func serve(t *testing.T, setup func(m *exporthttp.MockService), target string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := exporthttp.NewMockService(ctrl)

	if setup != nil {
		setup(svc)
	}

	router := chi.NewRouter()
	router.Route("/export", exporthttp.NewHandler(svc).Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func statement() *export.Statement {
	amount := decimal.RequireFromString("9.99")

	return &export.Statement{
		Transactions: []*transaction.Transaction{{
			ID:          uuid.New(),
			Description: "Netflix",
			Amount:      amount,
			Kind:        transaction.KindExpense,
			CreatedAt:   time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		}},
		Totals: report.Totals{Income: decimal.Zero, Expense: amount, Balance: amount.Neg()},
	}
}

func TestHandler_Metadata(t *testing.T) {
	personID := uuid.New()

	rec := serve(t, func(m *exporthttp.MockService) {
		m.EXPECT().
			Export(gomock.Any(), transaction.ListFilter{PersonID: &personID}).
			Return(statement(), nil)
	}, "/export/?person_id="+personID.String())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totals":{"income":"0","expense":"9.99","balance":"-9.99"}`)
	assert.Contains(t, rec.Body.String(), `Netflix | -9.99 €`)
}

func TestHandler_Download(t *testing.T) {
	rec := serve(t, func(m *exporthttp.MockService) {
		m.EXPECT().Export(gomock.Any(), transaction.ListFilter{}).Return(statement(), nil)
	}, "/export/download")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "statement_")

	body := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}

func TestHandler_BadFilter(t *testing.T) {
	rec := serve(t, nil, "/export/?person_id=ana")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ExportError(t *testing.T) {
	rec := serve(t, func(m *exporthttp.MockService) {
		m.EXPECT().Export(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	}, "/export/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
