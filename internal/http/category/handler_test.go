package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/category"
	categoryhttp "github.com/MrJamesThe3rd/tally/internal/http/category"
)

func serve(t *testing.T, setup func(m *categoryhttp.MockService), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := categoryhttp.NewMockService(ctrl)

	if setup != nil {
		setup(svc)
	}

	router := chi.NewRouter()
	router.Route("/categories", categoryhttp.NewHandler(svc).Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

var all = []*category.Category{
	{ID: uuid.New(), Description: "Food", Purpose: category.PurposeExpense},
	{ID: uuid.New(), Description: "Salary", Purpose: category.PurposeIncome},
	{ID: uuid.New(), Description: "Gifts", Purpose: category.PurposeBoth},
}

func TestHandler_List_KindFilter(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"Food", "Salary", "Gifts"}},
		{query: "?kind=expense", want: []string{"Food", "Gifts"}},
		{query: "?kind=income", want: []string{"Salary", "Gifts"}},
	}

	for _, tt := range tests {
		t.Run("kind"+tt.query, func(t *testing.T) {
			rec := serve(t, func(m *categoryhttp.MockService) {
				m.EXPECT().List(gomock.Any()).Return(all, nil)
			}, http.MethodGet, "/categories/"+tt.query, "")

			require.Equal(t, http.StatusOK, rec.Code)

			var got []struct {
				Description string `json:"description"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

			descriptions := make([]string, 0, len(got))
			for _, c := range got {
				descriptions = append(descriptions, c.Description)
			}

			assert.Equal(t, tt.want, descriptions)
		})
	}
}

func TestHandler_List_InvalidKind(t *testing.T) {
	rec := serve(t, nil, http.MethodGet, "/categories/?kind=transfer", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Create(t *testing.T) {
	rec := serve(t, func(m *categoryhttp.MockService) {
		m.EXPECT().
			Create(gomock.Any(), category.CreateParams{Description: "Rent", Purpose: category.PurposeExpense}).
			Return(&category.Category{ID: uuid.New(), Description: "Rent", Purpose: category.PurposeExpense}, nil)
	}, http.MethodPost, "/categories/", `{"description":"Rent","purpose":"expense"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"purpose":"expense"`)
}

func TestHandler_Create_InvalidPurpose(t *testing.T) {
	rec := serve(t, func(m *categoryhttp.MockService) {
		m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, category.ErrInvalidPurpose)
	}, http.MethodPost, "/categories/", `{"description":"Rent","purpose":"monthly"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Delete_InUse(t *testing.T) {
	id := uuid.New()

	rec := serve(t, func(m *categoryhttp.MockService) {
		m.EXPECT().Delete(gomock.Any(), id).Return(category.ErrInUse)
	}, http.MethodDelete, "/categories/"+id.String(), "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}
