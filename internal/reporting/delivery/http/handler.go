package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tavernhq/backoffice/internal/reporting/usecase/query"
	"github.com/tavernhq/backoffice/pkg/auth"
	"github.com/tavernhq/backoffice/pkg/logger"
)

// ReportingHandler handles HTTP requests for back-office reports
type ReportingHandler struct {
	salesHandler     *query.SalesSummaryHandler
	valuationHandler *query.StockValuationHandler
}

// NewReportingHandler creates a new reporting handler
func NewReportingHandler(salesHandler *query.SalesSummaryHandler, valuationHandler *query.StockValuationHandler) *ReportingHandler {
	return &ReportingHandler{salesHandler: salesHandler, valuationHandler: valuationHandler}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SalesSummary handles GET /api/reports/sales
func (h *ReportingHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := time.Parse("2006-01-02", q.Get("from"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "from must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", q.Get("to"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "to must be YYYY-MM-DD"})
		return
	}
	topN, _ := strconv.Atoi(q.Get("top"))

	summary, err := h.salesHandler.Handle(r.Context(), query.SalesSummaryQuery{
		From: from,
		To:   to.AddDate(0, 0, 1), // inclusive end date
		TopN: topN,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build sales summary")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: summary})
}

// StockValuation handles GET /api/reports/stock-valuation
func (h *ReportingHandler) StockValuation(w http.ResponseWriter, r *http.Request) {
	valuation, err := h.valuationHandler.Handle(r.Context(), query.StockValuationQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build stock valuation")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to build stock valuation"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: valuation})
}

// RegisterRoutes registers all reporting routes
func (h *ReportingHandler) RegisterRoutes(router *mux.Router, requireRole func(...string) func(http.HandlerFunc) http.HandlerFunc) {
	manager := requireRole(auth.RoleAdmin, auth.RoleManager)

	router.HandleFunc("/api/reports/sales", manager(h.SalesSummary)).Methods("GET")
	router.HandleFunc("/api/reports/stock-valuation", manager(h.StockValuation)).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
