package balance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, b *LeaveBalance) error
	FindByPerson(ctx context.Context, personID string) ([]LeaveBalance, error)
	FindByPersonAndYear(ctx context.Context, personID string, year int) (*LeaveBalance, error)
	Delete(ctx context.Context, personID string, year int) error
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

func (r *repository) Upsert(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "person_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"entitlement", "used", "pending", "carryover", "updated_at",
			}),
		}).
		Create(b).Error
}

func (r *repository) FindByPerson(ctx context.Context, personID string) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("year DESC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindByPersonAndYear(ctx context.Context, personID string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		First(&b, "person_id = ? AND year = ?", personID, year).Error
	return &b, err
}

func (r *repository) Delete(ctx context.Context, personID string, year int) error {
	return r.db.WithContext(ctx).
		Delete(&LeaveBalance{}, "person_id = ? AND year = ?", personID, year).Error
}
