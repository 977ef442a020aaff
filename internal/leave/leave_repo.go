package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type HolidayRow struct {
	Date time.Time
	Name string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindAllByPerson(ctx context.Context, personID string) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	FindOpenOverlapping(ctx context.Context, personID string, start, end time.Time) ([]LeaveRequest, error)
	FindApprovedOverlapping(ctx context.Context, personID string, start, end time.Time) ([]LeaveRequest, error)
	FindHolidaysInRange(ctx context.Context, start, end time.Time) ([]HolidayRow, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByPerson(ctx context.Context, personID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) FindOpenOverlapping(ctx context.Context, personID string, start, end time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindApprovedOverlapping(ctx context.Context, personID string, start, end time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindHolidaysInRange(ctx context.Context, start, end time.Time) ([]HolidayRow, error) {
	var rows []HolidayRow
	err := r.db.WithContext(ctx).
		Table("holidays").
		Select("date, name").
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}
