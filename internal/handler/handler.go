package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cesarcasstella/fintrack-pro/internal/config"
	"github.com/cesarcasstella/fintrack-pro/internal/models"
	"github.com/cesarcasstella/fintrack-pro/internal/projection"
	"github.com/cesarcasstella/fintrack-pro/internal/service"
)

type Handler struct {
	svc *service.Service
	cfg *config.Config
	log *logrus.Logger
}

func NewHandler(svc *service.Service, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// RegisterRoutes wires the authenticated API routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/projections", h.GetProjection).Methods("GET")
	router.HandleFunc("/whatif", h.PostWhatIf).Methods("POST")
	router.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	router.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	router.HandleFunc("/recurring-rules", h.CreateRecurringRule).Methods("POST")
	router.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	router.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		FullName    string `json:"full_name"`
		Password    string `json:"password"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Email, req.FullName, req.Password, req.PhoneNumber)
	if err != nil {
		h.log.WithError(err).Warn("Registration failed")
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetDashboard returns account totals and month-over-month stats
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	dashboard, err := h.svc.GetDashboard(userID)
	if err != nil {
		h.log.WithError(err).Error("Failed to build dashboard")
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// GetProjection returns the day-by-day balance forecast
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	days := h.cfg.DefaultHorizonDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid days parameter", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	result, err := h.svc.Projection(userID, days)
	if err != nil {
		h.log.WithError(err).Error("Projection failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PostWhatIf returns a forecast adjusted by hypothetical changes. The
// exact re-simulation is the default; strategy=linear selects the legacy
// quick-preview smear.
func (h *Handler) PostWhatIf(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Days     int                 `json:"days"`
		Changes  []projection.Change `json:"changes"`
		Strategy string              `json:"strategy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Days == 0 {
		req.Days = h.cfg.DefaultHorizonDays
	}

	result, err := h.svc.WhatIf(userID, req.Days, req.Changes, req.Strategy == "linear")
	if err != nil {
		h.log.WithError(err).Error("What-if failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CreateAccount opens a new account for the authenticated user
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name           string          `json:"name"`
		Type           string          `json:"type"`
		Balance        decimal.Decimal `json:"balance"`
		Currency       string          `json:"currency"`
		IncludeInTotal *bool           `json:"include_in_total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	includeInTotal := true
	if req.IncludeInTotal != nil {
		includeInTotal = *req.IncludeInTotal
	}

	account, err := h.svc.CreateAccount(userID, req.Name, req.Type, req.Currency, req.Balance, includeInTotal)
	if err != nil {
		h.log.WithError(err).Warn("Failed to create account")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// ListAccounts returns the user's active accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	accounts, err := h.svc.ListAccounts(userID)
	if err != nil {
		h.log.WithError(err).Error("Failed to list accounts")
		http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// CreateRecurringRule registers a repeating income or expense template
func (h *Handler) CreateRecurringRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		AccountID      int64           `json:"account_id"`
		Type           string          `json:"type"`
		Amount         decimal.Decimal `json:"amount"`
		Description    string          `json:"description"`
		Frequency      string          `json:"frequency"`
		IntervalCount  int             `json:"interval_count"`
		NextOccurrence time.Time       `json:"next_occurrence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rule, err := h.svc.CreateRecurringRule(userID, req.AccountID, req.Type, req.Amount, req.Description, req.Frequency, req.IntervalCount, req.NextOccurrence)
	if err != nil {
		h.log.WithError(err).Warn("Failed to create recurring rule")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

// ListTransactions returns transactions for a period. Without from/to the
// current month is used.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, "Invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	txs, err := h.svc.ListTransactions(userID, from, to)
	if err != nil {
		h.log.WithError(err).Error("Failed to list transactions")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// CreateTransaction records a manual transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Type        string          `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		http.Error(w, "Type must be income or expense", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.RecordTransaction(userID, req.Type, req.Amount, req.Description, req.Category, models.SourceManual)
	if err != nil {
		h.log.WithError(err).Error("Failed to record transaction")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func userIDFrom(r *http.Request) (int64, bool) {
	raw, ok := r.Context().Value("userID").(string)
	if !ok || raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
