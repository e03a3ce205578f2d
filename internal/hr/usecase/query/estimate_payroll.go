package query

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/hr/domain"
	"github.com/tavernhq/backoffice/internal/hr/otcalc"
)

// Payroll estimation defaults; a deployment that pays differently overrides
// them on the handler.
var (
	DefaultOTMultiplier    = decimal.NewFromFloat(1.5)
	DefaultStdDaysPerMonth = decimal.NewFromInt(26)
	DefaultStdHoursPerDay  = decimal.NewFromInt(8)
)

// EstimatePayrollQuery asks for a pay estimate over [From, To). An empty
// EmployeeIDs covers all active employees.
type EstimatePayrollQuery struct {
	From        time.Time
	To          time.Time
	EmployeeIDs []uint
}

// PayrollRow is one employee's estimate. Nothing is persisted; processing
// payroll from these numbers is a separate concern.
type PayrollRow struct {
	EmployeeID uint            `json:"employee_id"`
	Name       string          `json:"name"`
	PayType    domain.PayType  `json:"pay_type"`
	TotalHours decimal.Decimal `json:"total_hours"`
	OTHours    decimal.Decimal `json:"ot_hours"`
	BasePay    decimal.Decimal `json:"base_pay"`
	OTPay      decimal.Decimal `json:"ot_pay"`
	TotalPay   decimal.Decimal `json:"total_pay"`
}

// EstimatePayrollHandler handles estimate payroll query
type EstimatePayrollHandler struct {
	employees  domain.EmployeeRepository
	attendance domain.AttendanceRepository

	otMultiplier    decimal.Decimal
	stdDaysPerMonth decimal.Decimal
	stdHoursPerDay  decimal.Decimal
}

// NewEstimatePayrollHandler creates a new estimate payroll handler
func NewEstimatePayrollHandler(employees domain.EmployeeRepository, attendance domain.AttendanceRepository) *EstimatePayrollHandler {
	return &EstimatePayrollHandler{
		employees:       employees,
		attendance:      attendance,
		otMultiplier:    DefaultOTMultiplier,
		stdDaysPerMonth: DefaultStdDaysPerMonth,
		stdHoursPerDay:  DefaultStdHoursPerDay,
	}
}

// Handle sums completed attendance per employee and prices it. Hourly staff
// earn hours times rate; monthly staff earn the fixed rate with overtime
// priced against the hourly equivalent of their monthly pay.
func (h *EstimatePayrollHandler) Handle(ctx context.Context, q EstimatePayrollQuery) ([]PayrollRow, error) {
	if q.From.IsZero() || q.To.IsZero() {
		return nil, fmt.Errorf("from and to are required")
	}
	if q.To.Before(q.From) {
		return nil, domain.ErrInvalidTimeRange
	}

	var (
		employees []domain.Employee
		err       error
	)
	if len(q.EmployeeIDs) == 0 {
		employees, err = h.employees.FindActive(ctx)
	} else {
		employees, err = h.employees.FindByIDs(ctx, q.EmployeeIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	records, err := h.attendance.FindClosedInRange(ctx, q.From, q.To, q.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	type hours struct{ total, ot decimal.Decimal }
	worked := make(map[uint]hours, len(employees))
	for _, rec := range records {
		w := worked[rec.EmployeeID]
		w.total = w.total.Add(rec.TotalHours)
		w.ot = w.ot.Add(rec.OTHours)
		worked[rec.EmployeeID] = w
	}

	rows := make([]PayrollRow, 0, len(employees))
	for _, e := range employees {
		w := worked[e.ID]

		var basePay, otRate decimal.Decimal
		switch e.PayType {
		case domain.PayMonthly:
			basePay = e.MonthlyRate
			otRate = e.MonthlyRate.DivRound(h.stdDaysPerMonth.Mul(h.stdHoursPerDay), 4)
		default:
			basePay = w.total.Mul(e.HourlyRate).Round(2)
			otRate = e.HourlyRate
		}
		otPay := otcalc.OTPay(w.ot, otRate, h.otMultiplier)

		rows = append(rows, PayrollRow{
			EmployeeID: e.ID,
			Name:       e.Name,
			PayType:    e.PayType,
			TotalHours: w.total,
			OTHours:    w.ot,
			BasePay:    basePay,
			OTPay:      otPay,
			TotalPay:   basePay.Add(otPay).Round(2),
		})
	}

	return rows, nil
}
