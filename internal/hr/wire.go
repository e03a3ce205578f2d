//go:build wireinject
// +build wireinject

package hr

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tavernhq/backoffice/internal/hr/delivery/http"
	"github.com/tavernhq/backoffice/internal/hr/domain"
	"github.com/tavernhq/backoffice/internal/hr/repository"
	"github.com/tavernhq/backoffice/internal/hr/usecase/command"
	"github.com/tavernhq/backoffice/internal/hr/usecase/query"
)

// ShiftStart is the wall-clock time after which a clock-in is marked late
type ShiftStart string

// ProvideEmployeeRepository provides the employee repository
func ProvideEmployeeRepository(db *gorm.DB) domain.EmployeeRepository {
	return repository.NewGormEmployeeRepository(db)
}

// ProvideAttendanceRepository provides the attendance repository
func ProvideAttendanceRepository(db *gorm.DB) domain.AttendanceRepository {
	return repository.NewGormAttendanceRepository(db)
}

// ProvideLeaveRepository provides the leave repository
func ProvideLeaveRepository(db *gorm.DB) domain.LeaveRepository {
	return repository.NewGormLeaveRepository(db)
}

// ProvideClockInHandler provides the clock in handler with the shift start config
func ProvideClockInHandler(employees domain.EmployeeRepository, attendance domain.AttendanceRepository, shiftStart ShiftStart) *command.ClockInHandler {
	return command.NewClockInHandler(employees, attendance, string(shiftStart))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideEmployeeRepository,
	ProvideAttendanceRepository,
	ProvideLeaveRepository,
)

// InitializeHTTPHandler initializes the HR HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, shiftStart ShiftStart) (*httpDelivery.HRHandler, error) {
	wire.Build(
		RepositorySet,
		command.NewCreateEmployeeHandler,
		command.NewUpdateEmployeeHandler,
		command.NewDeleteEmployeeHandler,
		ProvideClockInHandler,
		command.NewClockOutHandler,
		command.NewRequestLeaveHandler,
		command.NewReviewLeaveHandler,
		query.NewListEmployeesHandler,
		query.NewListAttendanceHandler,
		query.NewListLeavesHandler,
		query.NewEstimatePayrollHandler,
		httpDelivery.NewHRHandler,
	)
	return nil, nil
}
