package otcalc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func at(day, hour, min int) time.Time {
	return time.Date(2024, 3, day, hour, min, 0, 0, time.UTC)
}

func TestCalculate_ShiftScenarios(t *testing.T) {
	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut time.Time
		working  string
		ot       string
		overtime bool
	}{
		{"standard nine-to-six", at(1, 9, 0), at(1, 18, 0), "8", "0", false},
		{"one hour over", at(1, 9, 0), at(1, 19, 0), "9", "1", true},
		{"evening shift", at(1, 14, 0), at(1, 23, 0), "8", "0", false},
		{"shift past midnight", at(1, 14, 0), at(2, 0, 0), "9", "1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Calculate(tc.clockIn, tc.clockOut, DefaultBreakHours, DefaultNormalHours)
			if r.WorkingHours.String() != tc.working {
				t.Fatalf("working hours expected %s, got %s", tc.working, r.WorkingHours)
			}
			if r.OTHours.String() != tc.ot {
				t.Fatalf("OT hours expected %s, got %s", tc.ot, r.OTHours)
			}
			if r.IsOvertime != tc.overtime {
				t.Fatalf("IsOvertime expected %v, got %v", tc.overtime, r.IsOvertime)
			}
		})
	}
}

func TestCalculate_ShortShiftFloorsAtZero(t *testing.T) {
	r := Calculate(at(1, 9, 0), at(1, 9, 30), DefaultBreakHours, DefaultNormalHours)
	if !r.WorkingHours.IsZero() {
		t.Fatalf("expected zero working hours, got %s", r.WorkingHours)
	}
	if !r.OTHours.IsZero() {
		t.Fatalf("expected zero OT hours, got %s", r.OTHours)
	}
	if r.IsOvertime {
		t.Fatal("expected IsOvertime false")
	}
}

func TestCalculate_FractionalMinutesRounded(t *testing.T) {
	// 9h20m total -> 8.33 working -> 0.33 OT
	r := Calculate(at(1, 9, 0), at(1, 18, 20), DefaultBreakHours, DefaultNormalHours)
	if r.TotalHours.String() != "9.33" {
		t.Fatalf("total hours expected 9.33, got %s", r.TotalHours)
	}
	if r.WorkingHours.String() != "8.33" {
		t.Fatalf("working hours expected 8.33, got %s", r.WorkingHours)
	}
	if r.OTHours.String() != "0.33" {
		t.Fatalf("OT hours expected 0.33, got %s", r.OTHours)
	}
}

func TestOTPay(t *testing.T) {
	pay := OTPay(decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromFloat(1.5))
	if pay.String() != "300" {
		t.Fatalf("OT pay expected 300, got %s", pay)
	}

	pay = OTPay(decimal.NewFromFloat(0.33), decimal.NewFromFloat(62.5), decimal.NewFromFloat(1.5))
	if pay.String() != "30.94" {
		t.Fatalf("OT pay expected 30.94, got %s", pay)
	}
}
