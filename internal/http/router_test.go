package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	tallyhttp "github.com/MrJamesThe3rd/tally/internal/http"
	categoryhttp "github.com/MrJamesThe3rd/tally/internal/http/category"
	exporthttp "github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	matchinghttp "github.com/MrJamesThe3rd/tally/internal/http/matching"
	personhttp "github.com/MrJamesThe3rd/tally/internal/http/person"
	reporthttp "github.com/MrJamesThe3rd/tally/internal/http/report"
	txhttp "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/person"
)

func newRouter(t *testing.T) (http.Handler, *personhttp.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	people := personhttp.NewMockService(ctrl)
	people.EXPECT().Today().Return(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)).AnyTimes()

	router := tallyhttp.New(tallyhttp.Options{
		Timeout:        time.Second,
		AllowedOrigins: []string{"http://localhost:5173"},
	}, tallyhttp.Handlers{
		People:       personhttp.NewHandler(people),
		Categories:   categoryhttp.NewHandler(categoryhttp.NewMockService(ctrl)),
		Transactions: txhttp.NewHandler(txhttp.NewMockService(ctrl)),
		Reports:      reporthttp.NewHandler(reporthttp.NewMockService(ctrl)),
		Import: importcsv.NewHandler(
			importcsv.NewMockImporter(ctrl),
			importcsv.NewMockSuggester(ctrl),
			importcsv.NewMockRecorder(ctrl),
		),
		Matching: matchinghttp.NewHandler(matchinghttp.NewMockService(ctrl)),
		Export:   exporthttp.NewHandler(exporthttp.NewMockService(ctrl)),
	})

	return router, people
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_MountsVersionedRoutes(t *testing.T) {
	router, people := newRouter(t)
	people.EXPECT().List(gomock.Any()).Return([]*person.Person{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/people/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_RejectsNonJSONBodies(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/people/", strings.NewReader("name=Ana"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_CORS(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		origin string
		want   string
	}{
		{origin: "http://localhost:5173", want: "http://localhost:5173"},
		{origin: "http://evil.example", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/people/", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
