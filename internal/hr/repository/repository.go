package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tavernhq/backoffice/internal/hr/domain"
)

// GormEmployeeRepository implements domain.EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Employee{}, &domain.Attendance{}, &domain.LeaveRequest{})
}

func (r *GormEmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uint) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormEmployeeRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Order("name").
		Limit(limit).
		Offset(offset).
		Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) FindActive(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *GormEmployeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Employee{}, id).Error
}

// GormAttendanceRepository implements domain.AttendanceRepository
type GormAttendanceRepository struct {
	db *gorm.DB
}

func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

func (r *GormAttendanceRepository) Create(ctx context.Context, a *domain.Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *GormAttendanceRepository) Update(ctx context.Context, a *domain.Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// FindOpen returns the employee's record with no clock-out yet, nil if none
func (r *GormAttendanceRepository) FindOpen(ctx context.Context, employeeID uint) (*domain.Attendance, error) {
	var a domain.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND clock_out IS NULL", employeeID).
		Order("clock_in desc").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAttendanceRepository) FindByEmployee(ctx context.Context, employeeID uint, limit, offset int) ([]domain.Attendance, error) {
	var records []domain.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("clock_in desc").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}

// FindClosedInRange returns completed records whose clock-in falls in
// [from, to). An empty employeeIDs means all employees.
func (r *GormAttendanceRepository) FindClosedInRange(ctx context.Context, from, to time.Time, employeeIDs []uint) ([]domain.Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("clock_in >= ? AND clock_in < ? AND clock_out IS NOT NULL", from, to)
	if len(employeeIDs) > 0 {
		q = q.Where("employee_id IN ?", employeeIDs)
	}

	var records []domain.Attendance
	err := q.Order("clock_in asc").Find(&records).Error
	return records, err
}

// GormLeaveRepository implements domain.LeaveRepository
type GormLeaveRepository struct {
	db *gorm.DB
}

func NewGormLeaveRepository(db *gorm.DB) *GormLeaveRepository {
	return &GormLeaveRepository{db: db}
}

func (r *GormLeaveRepository) Create(ctx context.Context, lr *domain.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *GormLeaveRepository) FindByID(ctx context.Context, id uint) (*domain.LeaveRequest, error) {
	var lr domain.LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLeaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *GormLeaveRepository) FindAll(ctx context.Context, status *domain.LeaveStatus, limit, offset int) ([]domain.LeaveRequest, error) {
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var requests []domain.LeaveRequest
	err := q.Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	return requests, err
}

func (r *GormLeaveRepository) Update(ctx context.Context, lr *domain.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(lr).Error
}
