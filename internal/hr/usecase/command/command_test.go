package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

type fakeEmployees struct {
	byID map[uint]*domain.Employee
}

func (f *fakeEmployees) Create(_ context.Context, e *domain.Employee) error {
	e.ID = uint(len(f.byID) + 1)
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEmployees) FindByID(_ context.Context, id uint) (*domain.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployees) FindAll(_ context.Context, _, _ int) ([]domain.Employee, error) {
	return nil, nil
}

func (f *fakeEmployees) FindByIDs(_ context.Context, ids []uint) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, id := range ids {
		if e, ok := f.byID[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) FindActive(_ context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range f.byID {
		if e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) Update(_ context.Context, e *domain.Employee) error {
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEmployees) Delete(_ context.Context, id uint) error {
	delete(f.byID, id)
	return nil
}

type fakeAttendance struct {
	records []*domain.Attendance
}

func (f *fakeAttendance) Create(_ context.Context, a *domain.Attendance) error {
	a.ID = uint(len(f.records) + 1)
	f.records = append(f.records, a)
	return nil
}

func (f *fakeAttendance) Update(_ context.Context, a *domain.Attendance) error {
	for i, rec := range f.records {
		if rec.ID == a.ID {
			f.records[i] = a
			return nil
		}
	}
	return errors.New("attendance not found")
}

func (f *fakeAttendance) FindOpen(_ context.Context, employeeID uint) (*domain.Attendance, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.ClockOut == nil {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendance) FindByEmployee(_ context.Context, employeeID uint, _, _ int) ([]domain.Attendance, error) {
	var out []domain.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendance) FindClosedInRange(_ context.Context, from, to time.Time, _ []uint) ([]domain.Attendance, error) {
	var out []domain.Attendance
	for _, rec := range f.records {
		if rec.ClockOut != nil && !rec.ClockIn.Before(from) && rec.ClockIn.Before(to) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func seedHR() (*fakeEmployees, *fakeAttendance) {
	employees := &fakeEmployees{byID: map[uint]*domain.Employee{
		1: {ID: 1, Name: "Mya", Role: "cook", PayType: domain.PayHourly, HourlyRate: decimal.NewFromInt(50), IsActive: true},
	}}
	return employees, &fakeAttendance{}
}

func TestClockIn_OpensRecord(t *testing.T) {
	employees, attendance := seedHR()
	h := NewClockInHandler(employees, attendance, "")

	rec, err := h.Handle(context.Background(), ClockInCommand{EmployeeID: 1})
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if rec.ClockOut != nil {
		t.Fatal("fresh record must have no clock out")
	}
	if rec.IsLate {
		t.Fatal("late marking must be off without a shift start")
	}
}

func TestClockIn_RejectsSecondOpen(t *testing.T) {
	employees, attendance := seedHR()
	h := NewClockInHandler(employees, attendance, "")
	ctx := context.Background()

	if _, err := h.Handle(ctx, ClockInCommand{EmployeeID: 1}); err != nil {
		t.Fatalf("first clock in: %v", err)
	}
	if _, err := h.Handle(ctx, ClockInCommand{EmployeeID: 1}); !errors.Is(err, domain.ErrAlreadyClockedIn) {
		t.Fatalf("expected ErrAlreadyClockedIn, got %v", err)
	}
}

func TestClockIn_UnknownEmployee(t *testing.T) {
	employees, attendance := seedHR()
	h := NewClockInHandler(employees, attendance, "")

	if _, err := h.Handle(context.Background(), ClockInCommand{EmployeeID: 99}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestClockOut_ClosesAndFillsHours(t *testing.T) {
	_, attendance := seedHR()
	// Seed an open shift that started nine hours ago.
	start := time.Now().Add(-9 * time.Hour)
	attendance.records = append(attendance.records, &domain.Attendance{ID: 1, EmployeeID: 1, ClockIn: start})

	rec, err := NewClockOutHandler(attendance).Handle(context.Background(), ClockOutCommand{EmployeeID: 1})
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if rec.ClockOut == nil {
		t.Fatal("clock out must be set")
	}
	// 9h minus the 1h break leaves 8 working hours, no overtime.
	if rec.TotalHours.String() != "8" {
		t.Fatalf("total hours expected 8, got %s", rec.TotalHours)
	}
	if !rec.OTHours.IsZero() {
		t.Fatalf("OT hours expected 0, got %s", rec.OTHours)
	}
}

func TestClockOut_WithoutOpenRecord(t *testing.T) {
	_, attendance := seedHR()

	if _, err := NewClockOutHandler(attendance).Handle(context.Background(), ClockOutCommand{EmployeeID: 1}); !errors.Is(err, domain.ErrNoActiveClockIn) {
		t.Fatalf("expected ErrNoActiveClockIn, got %v", err)
	}
}

func TestClockOut_RejectsFutureClockIn(t *testing.T) {
	_, attendance := seedHR()
	attendance.records = append(attendance.records, &domain.Attendance{ID: 1, EmployeeID: 1, ClockIn: time.Now().Add(time.Hour)})

	if _, err := NewClockOutHandler(attendance).Handle(context.Background(), ClockOutCommand{EmployeeID: 1}); !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestCreateEmployee_RateMatchesPayType(t *testing.T) {
	employees, _ := seedHR()
	h := NewCreateEmployeeHandler(employees)
	ctx := context.Background()

	if _, err := h.Handle(ctx, CreateEmployeeCommand{
		Name:    "Ko Ko",
		Role:    "waiter",
		PayType: domain.PayHourly,
	}); err == nil {
		t.Fatal("hourly employee without a rate must be rejected")
	}

	e, err := h.Handle(ctx, CreateEmployeeCommand{
		Name:        "Ko Ko",
		Role:        "waiter",
		PayType:     domain.PayMonthly,
		MonthlyRate: decimal.NewFromInt(300000),
	})
	if err != nil {
		t.Fatalf("create monthly employee: %v", err)
	}
	if e.PayType != domain.PayMonthly {
		t.Fatalf("expected monthly pay type, got %s", e.PayType)
	}
}

func TestRequestLeave_RejectsInvertedRange(t *testing.T) {
	employees, _ := seedHR()
	leaves := &fakeLeaves{}
	h := NewRequestLeaveHandler(employees, leaves)

	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if _, err := h.Handle(context.Background(), RequestLeaveCommand{
		EmployeeID: 1,
		Type:       "annual",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, -1),
	}); !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestReviewLeave_PendingOnly(t *testing.T) {
	employees, _ := seedHR()
	leaves := &fakeLeaves{}
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	req, err := NewRequestLeaveHandler(employees, leaves).Handle(context.Background(), RequestLeaveCommand{
		EmployeeID: 1,
		Type:       "sick",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 2),
	})
	if err != nil {
		t.Fatalf("request leave: %v", err)
	}

	h := NewReviewLeaveHandler(leaves)
	ctx := context.Background()

	reviewed, err := h.Handle(ctx, ReviewLeaveCommand{LeaveID: req.ID, Approve: true, ActorID: 5})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != domain.LeaveApproved || reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != 5 {
		t.Fatalf("expected approved by 5, got %+v", reviewed)
	}

	if _, err := h.Handle(ctx, ReviewLeaveCommand{LeaveID: req.ID, Approve: false, ActorID: 5}); !errors.Is(err, domain.ErrLeaveAlreadyMoved) {
		t.Fatalf("expected ErrLeaveAlreadyMoved, got %v", err)
	}
}

type fakeLeaves struct {
	requests []*domain.LeaveRequest
}

func (f *fakeLeaves) Create(_ context.Context, lr *domain.LeaveRequest) error {
	lr.ID = uint(len(f.requests) + 1)
	f.requests = append(f.requests, lr)
	return nil
}

func (f *fakeLeaves) FindByID(_ context.Context, id uint) (*domain.LeaveRequest, error) {
	for _, lr := range f.requests {
		if lr.ID == id {
			cp := *lr
			return &cp, nil
		}
	}
	return nil, domain.ErrLeaveNotFound
}

func (f *fakeLeaves) FindAll(_ context.Context, status *domain.LeaveStatus, _, _ int) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, lr := range f.requests {
		if status == nil || lr.Status == *status {
			out = append(out, *lr)
		}
	}
	return out, nil
}

func (f *fakeLeaves) Update(_ context.Context, lr *domain.LeaveRequest) error {
	for i, rec := range f.requests {
		if rec.ID == lr.ID {
			f.requests[i] = lr
			return nil
		}
	}
	return domain.ErrLeaveNotFound
}
