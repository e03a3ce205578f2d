package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/hr/domain"
	"github.com/tavernhq/backoffice/internal/hr/usecase/command"
	"github.com/tavernhq/backoffice/internal/hr/usecase/query"
	"github.com/tavernhq/backoffice/pkg/auth"
	"github.com/tavernhq/backoffice/pkg/logger"
)

var validate = validator.New()

// HRHandler handles HTTP requests for the roster, attendance and payroll
type HRHandler struct {
	// Command handlers
	createEmployeeHandler *command.CreateEmployeeHandler
	updateEmployeeHandler *command.UpdateEmployeeHandler
	deleteEmployeeHandler *command.DeleteEmployeeHandler
	clockInHandler        *command.ClockInHandler
	clockOutHandler       *command.ClockOutHandler
	requestLeaveHandler   *command.RequestLeaveHandler
	reviewLeaveHandler    *command.ReviewLeaveHandler

	// Query handlers
	listEmployeesHandler   *query.ListEmployeesHandler
	listAttendanceHandler  *query.ListAttendanceHandler
	listLeavesHandler      *query.ListLeavesHandler
	estimatePayrollHandler *query.EstimatePayrollHandler
}

// NewHRHandler creates a new HR handler
func NewHRHandler(
	createEmployeeHandler *command.CreateEmployeeHandler,
	updateEmployeeHandler *command.UpdateEmployeeHandler,
	deleteEmployeeHandler *command.DeleteEmployeeHandler,
	clockInHandler *command.ClockInHandler,
	clockOutHandler *command.ClockOutHandler,
	requestLeaveHandler *command.RequestLeaveHandler,
	reviewLeaveHandler *command.ReviewLeaveHandler,
	listEmployeesHandler *query.ListEmployeesHandler,
	listAttendanceHandler *query.ListAttendanceHandler,
	listLeavesHandler *query.ListLeavesHandler,
	estimatePayrollHandler *query.EstimatePayrollHandler,
) *HRHandler {
	return &HRHandler{
		createEmployeeHandler:  createEmployeeHandler,
		updateEmployeeHandler:  updateEmployeeHandler,
		deleteEmployeeHandler:  deleteEmployeeHandler,
		clockInHandler:         clockInHandler,
		clockOutHandler:        clockOutHandler,
		requestLeaveHandler:    requestLeaveHandler,
		reviewLeaveHandler:     reviewLeaveHandler,
		listEmployeesHandler:   listEmployeesHandler,
		listAttendanceHandler:  listAttendanceHandler,
		listLeavesHandler:      listLeavesHandler,
		estimatePayrollHandler: estimatePayrollHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type createEmployeeRequest struct {
	Name        string          `json:"name" validate:"required"`
	Role        string          `json:"role"`
	PayType     string          `json:"pay_type" validate:"required,oneof=hourly monthly"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
}

// CreateEmployee handles POST /api/employees
func (h *HRHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	e, err := h.createEmployeeHandler.Handle(r.Context(), command.CreateEmployeeCommand{
		Name:        req.Name,
		Role:        req.Role,
		PayType:     domain.PayType(req.PayType),
		HourlyRate:  req.HourlyRate,
		MonthlyRate: req.MonthlyRate,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create employee")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Employee created successfully", Data: e})
}

type updateEmployeeRequest struct {
	Name        *string          `json:"name"`
	Role        *string          `json:"role"`
	PayType     *string          `json:"pay_type"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateEmployee handles PUT /api/employees/{id}
func (h *HRHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	var payType *domain.PayType
	if req.PayType != nil {
		pt := domain.PayType(*req.PayType)
		payType = &pt
	}

	e, err := h.updateEmployeeHandler.Handle(r.Context(), command.UpdateEmployeeCommand{
		EmployeeID:  id,
		Name:        req.Name,
		Role:        req.Role,
		PayType:     payType,
		HourlyRate:  req.HourlyRate,
		MonthlyRate: req.MonthlyRate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondHRError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Employee updated successfully", Data: e})
}

// DeleteEmployee handles DELETE /api/employees/{id}
func (h *HRHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deleteEmployeeHandler.Handle(r.Context(), command.DeleteEmployeeCommand{EmployeeID: id}); err != nil {
		respondHRError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Employee deleted successfully"})
}

// ListEmployees handles GET /api/employees
func (h *HRHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	employees, err := h.listEmployeesHandler.Handle(r.Context(), query.ListEmployeesQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list employees")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list employees"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: employees})
}

type punchRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// ClockIn handles POST /api/employees/{id}/clock-in
func (h *HRHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req punchRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	a, err := h.clockInHandler.Handle(r.Context(), command.ClockInCommand{EmployeeID: id, Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		respondHRError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Clocked in", Data: a})
}

// ClockOut handles POST /api/employees/{id}/clock-out
func (h *HRHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req punchRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	a, err := h.clockOutHandler.Handle(r.Context(), command.ClockOutCommand{EmployeeID: id, Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		respondHRError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Clocked out", Data: a})
}

// ListAttendance handles GET /api/employees/{id}/attendance
func (h *HRHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.listAttendanceHandler.Handle(r.Context(), query.ListAttendanceQuery{
		EmployeeID: id,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list attendance")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list attendance"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: records})
}

type requestLeaveRequest struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Type       string `json:"type" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Reason     string `json:"reason"`
}

// RequestLeave handles POST /api/leaves
func (h *HRHandler) RequestLeave(w http.ResponseWriter, r *http.Request) {
	var req requestLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "end_date must be YYYY-MM-DD"})
		return
	}

	lr, err := h.requestLeaveHandler.Handle(r.Context(), command.RequestLeaveCommand{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	})
	if err != nil {
		respondHRError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Leave requested", Data: lr})
}

type reviewLeaveRequest struct {
	Approve bool `json:"approve"`
}

// ReviewLeave handles POST /api/leaves/{id}/review
func (h *HRHandler) ReviewLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req reviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	lr, err := h.reviewLeaveHandler.Handle(r.Context(), command.ReviewLeaveCommand{
		LeaveID: id,
		Approve: req.Approve,
		ActorID: actorID(r),
	})
	if err != nil {
		respondHRError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Leave reviewed", Data: lr})
}

// ListLeaves handles GET /api/leaves
func (h *HRHandler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	var status *domain.LeaveStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.LeaveStatus(raw)
		status = &s
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.listLeavesHandler.Handle(r.Context(), query.ListLeavesQuery{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// EstimatePayroll handles GET /api/payroll/estimate
func (h *HRHandler) EstimatePayroll(w http.ResponseWriter, r *http.Request) {
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

	var employeeIDs []uint
	for _, raw := range q["employee_id"] {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid employee_id"})
			return
		}
		employeeIDs = append(employeeIDs, uint(id))
	}

	rows, err := h.estimatePayrollHandler.Handle(r.Context(), query.EstimatePayrollQuery{
		From:        from,
		To:          to,
		EmployeeIDs: employeeIDs,
	})
	if err != nil {
		respondHRError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: rows})
}

// RegisterRoutes registers all HR routes
func (h *HRHandler) RegisterRoutes(router *mux.Router, requireRole func(...string) func(http.HandlerFunc) http.HandlerFunc) {
	staff := requireRole(auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleStaff)
	manager := requireRole(auth.RoleAdmin, auth.RoleManager)

	router.HandleFunc("/api/employees", manager(h.ListEmployees)).Methods("GET")
	router.HandleFunc("/api/employees", manager(h.CreateEmployee)).Methods("POST")
	router.HandleFunc("/api/employees/{id}", manager(h.UpdateEmployee)).Methods("PUT")
	router.HandleFunc("/api/employees/{id}", manager(h.DeleteEmployee)).Methods("DELETE")
	router.HandleFunc("/api/employees/{id}/clock-in", staff(h.ClockIn)).Methods("POST")
	router.HandleFunc("/api/employees/{id}/clock-out", staff(h.ClockOut)).Methods("POST")
	router.HandleFunc("/api/employees/{id}/attendance", manager(h.ListAttendance)).Methods("GET")
	router.HandleFunc("/api/leaves", staff(h.RequestLeave)).Methods("POST")
	router.HandleFunc("/api/leaves", manager(h.ListLeaves)).Methods("GET")
	router.HandleFunc("/api/leaves/{id}/review", manager(h.ReviewLeave)).Methods("POST")
	router.HandleFunc("/api/payroll/estimate", manager(h.EstimatePayroll)).Methods("GET")
}

func respondHRError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound), errors.Is(err, domain.ErrLeaveNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrAlreadyClockedIn),
		errors.Is(err, domain.ErrNoActiveClockIn),
		errors.Is(err, domain.ErrLeaveAlreadyMoved):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTimeRange):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	default:
		logger.Error(r.Context()).Err(err).Msg("HR operation failed")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// actorID reads the authenticated user id set by the auth middleware
func actorID(r *http.Request) uint {
	if id, ok := r.Context().Value(auth.UserIDContextKey).(uint); ok {
		return id
	}
	return 0
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
