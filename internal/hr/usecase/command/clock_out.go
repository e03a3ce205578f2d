package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/hr/domain"
	"github.com/tavernhq/backoffice/internal/hr/otcalc"
)

// ClockOutCommand represents the command to close the open attendance record
type ClockOutCommand struct {
	EmployeeID uint
	Lat        *float64
	Lng        *float64
}

// ClockOutHandler handles clock out command
type ClockOutHandler struct {
	attendance  domain.AttendanceRepository
	breakHours  decimal.Decimal
	normalHours decimal.Decimal
}

// NewClockOutHandler creates a new clock out handler
func NewClockOutHandler(attendance domain.AttendanceRepository) *ClockOutHandler {
	return &ClockOutHandler{
		attendance:  attendance,
		breakHours:  otcalc.DefaultBreakHours,
		normalHours: otcalc.DefaultNormalHours,
	}
}

// Handle closes the open record and fills in the hour breakdown
func (h *ClockOutHandler) Handle(ctx context.Context, cmd ClockOutCommand) (*domain.Attendance, error) {
	if cmd.EmployeeID == 0 {
		return nil, fmt.Errorf("employee_id is required")
	}

	open, err := h.attendance.FindOpen(ctx, cmd.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open attendance: %w", err)
	}
	if open == nil {
		return nil, domain.ErrNoActiveClockIn
	}

	now := time.Now()
	if now.Before(open.ClockIn) {
		return nil, domain.ErrInvalidTimeRange
	}

	result := otcalc.Calculate(open.ClockIn, now, h.breakHours, h.normalHours)

	open.ClockOut = &now
	open.ClockOutLat = cmd.Lat
	open.ClockOutLng = cmd.Lng
	open.TotalHours = result.WorkingHours
	open.OTHours = result.OTHours

	if err := h.attendance.Update(ctx, open); err != nil {
		return nil, fmt.Errorf("failed to clock out: %w", err)
	}

	return open, nil
}
