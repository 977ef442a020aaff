package person

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=person_repo.go -destination=mock/person_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Person) error
	FindAll(ctx context.Context) ([]Person, error)
	FindByID(ctx context.Context, id string) (*Person, error)
	Update(ctx context.Context, p *Person) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, p *Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Person, error) {
	var persons []Person
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&persons).Error
	return persons, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Person) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Person{}, "id = ?", id).Error
}
