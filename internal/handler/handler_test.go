package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/cesarcasstella/fintrack-pro/internal/config"
	"github.com/cesarcasstella/fintrack-pro/internal/service"
)

func testHandler() *Handler {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{DefaultHorizonDays: 90}
	svc := service.NewService(nil, log, cfg, nil, nil)
	return NewHandler(svc, cfg, log)
}

func testRouter() *mux.Router {
	router := mux.NewRouter()
	testHandler().RegisterRoutes(router)
	return router
}

func asUser(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), "userID", id))
}

func TestRoutesRequireUser(t *testing.T) {
	router := testRouter()

	requests := []struct {
		method string
		path   string
	}{
		{"POST", "/accounts"},
		{"GET", "/accounts"},
		{"POST", "/recurring-rules"},
		{"GET", "/transactions"},
		{"POST", "/transactions"},
	}

	for _, req := range requests {
		t.Run(req.method+" "+req.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(req.method, req.path, strings.NewReader("{}")))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestCreateAccountRejectsBadInput(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"missing name", `{"type": "checking"}`},
		{"unknown type", `{"name": "Nómina", "type": "retirement"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest("POST", "/accounts", strings.NewReader(tt.body)), "1")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateRecurringRuleRejectsBadInput(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name string
		body string
	}{
		{"bad type", `{"account_id": 1, "type": "transfer", "amount": "100", "frequency": "monthly", "next_occurrence": "2025-02-01T00:00:00Z"}`},
		{"zero amount", `{"account_id": 1, "type": "expense", "amount": "0", "frequency": "monthly", "next_occurrence": "2025-02-01T00:00:00Z"}`},
		{"unknown frequency", `{"account_id": 1, "type": "income", "amount": "100", "frequency": "quarterly", "next_occurrence": "2025-02-01T00:00:00Z"}`},
		{"missing anchor", `{"account_id": 1, "type": "income", "amount": "100", "frequency": "monthly"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest("POST", "/recurring-rules", strings.NewReader(tt.body)), "1")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListTransactionsRejectsBadDates(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name  string
		query url.Values
	}{
		{"malformed from", url.Values{"from": {"01/02/2025"}}},
		{"malformed to", url.Values{"to": {"next-week"}}},
		{"inverted period", url.Values{"from": {"2025-03-01"}, "to": {"2025-02-01"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest("GET", "/transactions?"+tt.query.Encode(), nil), "1")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
