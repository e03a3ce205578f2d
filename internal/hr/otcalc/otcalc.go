// Package otcalc computes working and overtime hours for one attendance
// record. Pure functions, no I/O; callers validate interval ordering before
// calling in.
package otcalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults applied when the deployment does not configure its own values
var (
	DefaultBreakHours  = decimal.NewFromInt(1)
	DefaultNormalHours = decimal.NewFromInt(8)
)

// Result is the hour breakdown of a completed shift, all values rounded to
// two decimal places
type Result struct {
	TotalHours   decimal.Decimal `json:"total_hours"`
	BreakHours   decimal.Decimal `json:"break_hours"`
	WorkingHours decimal.Decimal `json:"working_hours"`
	NormalHours  decimal.Decimal `json:"normal_hours"`
	OTHours      decimal.Decimal `json:"ot_hours"`
	IsOvertime   bool            `json:"is_overtime"`
}

// Calculate derives the shift breakdown from a clock-in/clock-out pair.
// Ordering is the caller's problem: a clockOut before clockIn yields a
// negative TotalHours and must be rejected upstream. Both timestamps must
// be in the same reference frame; no timezone normalization happens here.
func Calculate(clockIn, clockOut time.Time, breakHours, normalHours decimal.Decimal) Result {
	total := decimal.NewFromFloat(clockOut.Sub(clockIn).Hours()).Round(2)

	working := total.Sub(breakHours)
	if working.IsNegative() {
		working = decimal.Zero
	}
	working = working.Round(2)

	ot := working.Sub(normalHours)
	if ot.IsNegative() {
		ot = decimal.Zero
	}
	ot = ot.Round(2)

	return Result{
		TotalHours:   total,
		BreakHours:   breakHours,
		WorkingHours: working,
		NormalHours:  normalHours,
		OTHours:      ot,
		IsOvertime:   ot.IsPositive(),
	}
}

// OTPay prices overtime hours at the given rate and multiplier
func OTPay(otHours, hourlyRate, multiplier decimal.Decimal) decimal.Decimal {
	return otHours.Mul(hourlyRate).Mul(multiplier).Round(2)
}
