package balance_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leavedesk/internal/balance"
	balanceerrors "go-leavedesk/internal/balance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	upsertFn              func(ctx context.Context, b *balance.LeaveBalance) error
	findByPersonFn        func(ctx context.Context, personID string) ([]balance.LeaveBalance, error)
	findByPersonAndYearFn func(ctx context.Context, personID string, year int) (*balance.LeaveBalance, error)
	deleteFn              func(ctx context.Context, personID string, year int) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) Upsert(ctx context.Context, b *balance.LeaveBalance) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByPerson(ctx context.Context, personID string) ([]balance.LeaveBalance, error) {
	if f.findByPersonFn != nil {
		return f.findByPersonFn(ctx, personID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByPersonAndYear(ctx context.Context, personID string, year int) (*balance.LeaveBalance, error) {
	if f.findByPersonAndYearFn != nil {
		return f.findByPersonAndYearFn(ctx, personID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) Delete(ctx context.Context, personID string, year int) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, personID, year)
	}
	return nil
}

type balanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service balance.Service
	repo    *fakeBalanceRepository
}

func setupBalanceServiceTest(t *testing.T) *balanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBalanceRepository{}
	svc := balance.NewService(db, repo)

	return &balanceServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestBalanceRemaining(t *testing.T) {
	cases := []struct {
		name    string
		balance balance.LeaveBalance
		want    int
	}{
		{
			name:    "untouched entitlement",
			balance: balance.LeaveBalance{Entitlement: 20},
			want:    20,
		},
		{
			name:    "used and pending subtract",
			balance: balance.LeaveBalance{Entitlement: 20, Used: 5, Pending: 3},
			want:    12,
		},
		{
			name:    "carryover adds",
			balance: balance.LeaveBalance{Entitlement: 20, Carryover: 4, Used: 10},
			want:    14,
		},
		{
			name:    "overdrawn goes negative",
			balance: balance.LeaveBalance{Entitlement: 14, Used: 16},
			want:    -2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.balance.Remaining())
		})
	}
}

func TestBalanceService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns derived remaining", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		personID := uuid.NewString()
		deps.repo.upsertFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			assert.Equal(t, personID, b.PersonID.String())
			assert.Equal(t, 2025, b.Year)
			return nil
		}

		resp, err := deps.service.Upsert(ctx, balance.UpsertBalanceRequest{
			PersonID:    personID,
			Year:        2025,
			Entitlement: 20,
			Used:        7,
			Pending:     2,
			Carryover:   3,
		})

		assert.NoError(t, err)
		assert.Equal(t, 14, resp.Remaining)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("bad person id rejected", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Upsert(ctx, balance.UpsertBalanceRequest{
			PersonID:    "nope",
			Year:        2025,
			Entitlement: 20,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidPersonID)
	})

	t.Run("year out of range rejected", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Upsert(ctx, balance.UpsertBalanceRequest{
			PersonID:    uuid.NewString(),
			Year:        1999,
			Entitlement: 20,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidYear)
	})

	t.Run("negative component rejected", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Upsert(ctx, balance.UpsertBalanceRequest{
			PersonID:    uuid.NewString(),
			Year:        2025,
			Entitlement: 20,
			Used:        -1,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrNegativeComponent)
	})

	t.Run("unknown person maps foreign key violation", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.upsertFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			return &pgconn.PgError{Code: "23503", ConstraintName: "fk_leave_balances_person"}
		}

		_, err := deps.service.Upsert(ctx, balance.UpsertBalanceRequest{
			PersonID:    uuid.NewString(),
			Year:        2025,
			Entitlement: 20,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrPersonNotFound)
	})
}

func TestBalanceService_GetByPersonAndYear(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row maps not found", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByPersonAndYear(ctx, uuid.NewString(), 2025)

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	})

	t.Run("found row carries remaining", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		personID := uuid.New()
		deps.repo.findByPersonAndYearFn = func(ctx context.Context, got string, year int) (*balance.LeaveBalance, error) {
			assert.Equal(t, personID.String(), got)
			assert.Equal(t, 2025, year)
			return &balance.LeaveBalance{
				ID:          uuid.New(),
				PersonID:    personID,
				Year:        2025,
				Entitlement: 26,
				Used:        6,
			}, nil
		}

		resp, err := deps.service.GetByPersonAndYear(ctx, personID.String(), 2025)

		assert.NoError(t, err)
		assert.Equal(t, 20, resp.Remaining)
	})
}
