package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// ClockInCommand represents the command to open an attendance record
type ClockInCommand struct {
	EmployeeID uint
	Lat        *float64
	Lng        *float64
}

// ClockInHandler handles clock in command
type ClockInHandler struct {
	employees  domain.EmployeeRepository
	attendance domain.AttendanceRepository
	shiftStart string // "15:04" wall clock; empty disables late marking
}

// NewClockInHandler creates a new clock in handler
func NewClockInHandler(employees domain.EmployeeRepository, attendance domain.AttendanceRepository, shiftStart string) *ClockInHandler {
	return &ClockInHandler{employees: employees, attendance: attendance, shiftStart: shiftStart}
}

// Handle executes the clock in command
func (h *ClockInHandler) Handle(ctx context.Context, cmd ClockInCommand) (*domain.Attendance, error) {
	if cmd.EmployeeID == 0 {
		return nil, fmt.Errorf("employee_id is required")
	}

	if _, err := h.employees.FindByID(ctx, cmd.EmployeeID); err != nil {
		return nil, err
	}

	open, err := h.attendance.FindOpen(ctx, cmd.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open attendance: %w", err)
	}
	if open != nil {
		return nil, domain.ErrAlreadyClockedIn
	}

	now := time.Now()
	a := &domain.Attendance{
		EmployeeID: cmd.EmployeeID,
		ClockIn:    now,
		ClockInLat: cmd.Lat,
		ClockInLng: cmd.Lng,
		IsLate:     h.isLate(now),
	}
	if err := h.attendance.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to clock in: %w", err)
	}

	return a, nil
}

func (h *ClockInHandler) isLate(at time.Time) bool {
	if h.shiftStart == "" {
		return false
	}
	start, err := time.Parse("15:04", h.shiftStart)
	if err != nil {
		return false
	}

	shift := time.Date(at.Year(), at.Month(), at.Day(), start.Hour(), start.Minute(), 0, 0, at.Location())
	return at.After(shift)
}
