package person_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	personhttp "github.com/MrJamesThe3rd/tally/internal/http/person"
	"github.com/MrJamesThe3rd/tally/internal/person"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func serve(t *testing.T, setup func(m *personhttp.MockService), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := personhttp.NewMockService(ctrl)
	svc.EXPECT().Today().Return(today).AnyTimes()

	if setup != nil {
		setup(svc)
	}

	router := chi.NewRouter()
	router.Route("/people", personhttp.NewHandler(svc).Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_Create(t *testing.T) {
	id := uuid.MustParse("0b7f8a64-3c39-4d57-9b7e-3f1a1e1d2c10")

	tests := []struct {
		name       string
		body       string
		setup      func(m *personhttp.MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Created",
			body: `{"name":"Maria","birth_date":"2010-03-15"}`,
			setup: func(m *personhttp.MockService) {
				m.EXPECT().
					Create(gomock.Any(), person.CreateParams{Name: "Maria", BirthDate: time.Date(2010, 3, 15, 0, 0, 0, 0, time.UTC)}).
					Return(&person.Person{ID: id, Name: "Maria", BirthDate: time.Date(2010, 3, 15, 0, 0, 0, 0, time.UTC)}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"age":16`,
		},
		{
			name:       "BadDate",
			body:       `{"name":"Maria","birth_date":"15/03/2010"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "YYYY-MM-DD",
		},
		{
			name:       "MalformedJSON",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "ValidationError",
			body: `{"name":"","birth_date":"2010-03-15"}`,
			setup: func(m *personhttp.MockService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, person.ErrInvalidName)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   person.ErrInvalidName.Error(),
		},
		{
			name: "StorageError",
			body: `{"name":"Maria","birth_date":"2010-03-15"}`,
			setup: func(m *personhttp.MockService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.setup, http.MethodPost, "/people/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_List(t *testing.T) {
	rec := serve(t, func(m *personhttp.MockService) {
		m.EXPECT().List(gomock.Any()).Return([]*person.Person{
			{ID: uuid.New(), Name: "Ana", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: uuid.New(), Name: "Zoe", BirthDate: time.Date(2012, 12, 31, 0, 0, 0, 0, time.UTC)},
		}, nil)
	}, http.MethodGet, "/people/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ana","birth_date":"1990-01-01","age":36,"is_minor":false`)
	assert.Contains(t, rec.Body.String(), `"name":"Zoe","birth_date":"2012-12-31","age":13,"is_minor":true`)
}

func TestHandler_Get_NotFound(t *testing.T) {
	id := uuid.New()

	rec := serve(t, func(m *personhttp.MockService) {
		m.EXPECT().Get(gomock.Any(), id).Return(nil, person.ErrNotFound)
	}, http.MethodGet, "/people/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Get_InvalidID(t *testing.T) {
	rec := serve(t, nil, http.MethodGet, "/people/42", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Update_PartialFields(t *testing.T) {
	id := uuid.New()

	rec := serve(t, func(m *personhttp.MockService) {
		m.EXPECT().
			Update(gomock.Any(), id, person.UpdateParams{Name: new("Ana Lima")}).
			Return(&person.Person{ID: id, Name: "Ana Lima", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}, nil)
	}, http.MethodPut, "/people/"+id.String(), `{"name":"Ana Lima"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ana Lima"`)
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	rec := serve(t, func(m *personhttp.MockService) {
		m.EXPECT().Delete(gomock.Any(), id).Return(nil)
	}, http.MethodDelete, "/people/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
