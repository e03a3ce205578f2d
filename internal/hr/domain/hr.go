package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayType decides how an employee's base pay is computed
type PayType string

const (
	PayHourly  PayType = "hourly"
	PayMonthly PayType = "monthly"
)

// LeaveStatus is the leave request workflow state
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

var (
	ErrInvalidTimeRange  = errors.New("clock-out must not be before clock-in")
	ErrAlreadyClockedIn  = errors.New("employee already has an open attendance record")
	ErrNoActiveClockIn   = errors.New("employee has no open attendance record")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrLeaveNotFound     = errors.New("leave request not found")
	ErrLeaveAlreadyMoved = errors.New("leave request has already been reviewed")
)

// Employee is a staff member on the roster
type Employee struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null;index"`
	Role        string          `json:"role" gorm:"size:32;not null"`
	PayType     PayType         `json:"pay_type" gorm:"size:20;not null;default:'hourly'"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" gorm:"type:decimal(20,4);not null;default:0"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" gorm:"type:decimal(20,4);not null;default:0"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Employee) TableName() string {
	return "employees"
}

// Attendance is one shift punch pair. Hour fields are filled at clock-out.
type Attendance struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	EmployeeID  uint            `json:"employee_id" gorm:"not null;index"`
	ClockIn     time.Time       `json:"clock_in" gorm:"not null;index"`
	ClockOut    *time.Time      `json:"clock_out,omitempty"`
	ClockInLat  *float64        `json:"clock_in_lat,omitempty"`
	ClockInLng  *float64        `json:"clock_in_lng,omitempty"`
	ClockOutLat *float64        `json:"clock_out_lat,omitempty"`
	ClockOutLng *float64        `json:"clock_out_lng,omitempty"`
	TotalHours  decimal.Decimal `json:"total_hours" gorm:"type:decimal(20,4);not null;default:0"`
	OTHours     decimal.Decimal `json:"ot_hours" gorm:"type:decimal(20,4);not null;default:0"`
	IsLate      bool            `json:"is_late" gorm:"default:false"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Attendance) TableName() string {
	return "attendances"
}

// LeaveRequest is a staff absence request
type LeaveRequest struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	EmployeeID uint        `json:"employee_id" gorm:"not null;index"`
	Type       string      `json:"type" gorm:"size:32;not null"` // annual, sick, unpaid
	StartDate  time.Time   `json:"start_date" gorm:"not null"`
	EndDate    time.Time   `json:"end_date" gorm:"not null"`
	Reason     string      `json:"reason,omitempty" gorm:"type:text"`
	Status     LeaveStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	ReviewedBy *uint       `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time  `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName specifies the table name
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// EmployeeRepository defines the contract for employee data access
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindAll(ctx context.Context, limit, offset int) ([]Employee, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Employee, error)
	FindActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uint) error
}

// AttendanceRepository defines the contract for attendance data access.
// FindOpen returns nil, nil when the employee has no open record.
type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindOpen(ctx context.Context, employeeID uint) (*Attendance, error)
	FindByEmployee(ctx context.Context, employeeID uint, limit, offset int) ([]Attendance, error)
	FindClosedInRange(ctx context.Context, from, to time.Time, employeeIDs []uint) ([]Attendance, error)
}

// LeaveRepository defines the contract for leave request data access
type LeaveRepository interface {
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	FindAll(ctx context.Context, status *LeaveStatus, limit, offset int) ([]LeaveRequest, error)
	Update(ctx context.Context, lr *LeaveRequest) error
}
