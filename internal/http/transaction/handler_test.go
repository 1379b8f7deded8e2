package transaction_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	txhttp "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func serve(t *testing.T, setup func(m *txhttp.MockService), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := txhttp.NewMockService(ctrl)

	if setup != nil {
		setup(svc)
	}

	router := chi.NewRouter()
	router.Route("/transactions", txhttp.NewHandler(svc).Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_Create(t *testing.T) {
	personID := uuid.New()
	categoryID := uuid.New()
	body := fmt.Sprintf(`{"description":"Salary","amount":"50.00","kind":"income","person_id":%q,"category_id":%q}`,
		personID, categoryID)

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Created",
			body:       body,
			wantStatus: http.StatusCreated,
			wantBody:   `"amount":"50"`,
		},
		{
			name: "RuleViolation",
			body: body,
			err: &transaction.RuleViolation{
				Rule:   transaction.RuleMinorIncome,
				Reason: "minors may only record expenses.",
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "minors may only record expenses.\n",
		},
		{
			name:       "PersonNotFound",
			body:       body,
			err:        &transaction.ReferenceError{Err: transaction.ErrPersonNotFound, ID: personID},
			wantStatus: http.StatusNotFound,
			wantBody:   "person " + personID.String() + " not found",
		},
		{
			name:       "CategoryNotFound",
			body:       body,
			err:        &transaction.ReferenceError{Err: transaction.ErrCategoryNotFound, ID: categoryID},
			wantStatus: http.StatusNotFound,
			wantBody:   "category " + categoryID.String() + " not found",
		},
		{
			name:       "InvalidAmount",
			body:       body,
			err:        transaction.ErrInvalidAmount,
			wantStatus: http.StatusBadRequest,
			wantBody:   transaction.ErrInvalidAmount.Error(),
		},
		{
			name:       "Unexpected",
			body:       body,
			err:        errors.New("deadlock detected"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, func(m *txhttp.MockService) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, p transaction.CreateParams) (*transaction.Transaction, error) {
						assert.True(t, decimal.RequireFromString("50").Equal(p.Amount))
						assert.Equal(t, transaction.KindIncome, p.Kind)
						assert.Equal(t, personID, p.PersonID)

						if tt.err != nil {
							return nil, tt.err
						}

						return &transaction.Transaction{
							ID:         uuid.New(),
							Amount:     p.Amount,
							Kind:       p.Kind,
							PersonID:   p.PersonID,
							CategoryID: p.CategoryID,
						}, nil
					})
			}, http.MethodPost, "/transactions/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Create_BadJSON(t *testing.T) {
	rec := serve(t, nil, http.MethodPost, "/transactions/", `{"amount":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_List_Filters(t *testing.T) {
	personID := uuid.New()

	rec := serve(t, func(m *txhttp.MockService) {
		m.EXPECT().
			List(gomock.Any(), transaction.ListFilter{PersonID: &personID}).
			Return([]*transaction.Transaction{{ID: uuid.New(), PersonID: personID, Amount: decimal.NewFromInt(3)}}, nil)
	}, http.MethodGet, "/transactions/?person_id="+personID.String(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), personID.String())
}

func TestHandler_List_BadFilter(t *testing.T) {
	rec := serve(t, nil, http.MethodGet, "/transactions/?category_id=food", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid category_id")
}

func TestHandler_Get_NotFound(t *testing.T) {
	id := uuid.New()

	rec := serve(t, func(m *txhttp.MockService) {
		m.EXPECT().Get(gomock.Any(), id).Return(nil, transaction.ErrNotFound)
	}, http.MethodGet, "/transactions/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
