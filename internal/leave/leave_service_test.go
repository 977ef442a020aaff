package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-leavedesk/internal/leave"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeLeaveRepository struct {
	createFn                  func(ctx context.Context, l *leave.LeaveRequest) error
	findAllFn                 func(ctx context.Context) ([]leave.LeaveRequest, error)
	findAllByPersonFn         func(ctx context.Context, personID string) ([]leave.LeaveRequest, error)
	findByIDFn                func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	updateFn                  func(ctx context.Context, l *leave.LeaveRequest) error
	findOpenOverlappingFn     func(ctx context.Context, personID string, start, end time.Time) ([]leave.LeaveRequest, error)
	findApprovedOverlappingFn func(ctx context.Context, personID string, start, end time.Time) ([]leave.LeaveRequest, error)
	findHolidaysInRangeFn     func(ctx context.Context, start, end time.Time) ([]leave.HolidayRow, error)

	openOverlapCalls int
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByPerson(ctx context.Context, personID string) ([]leave.LeaveRequest, error) {
	if f.findAllByPersonFn != nil {
		return f.findAllByPersonFn(ctx, personID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindOpenOverlapping(ctx context.Context, personID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	f.openOverlapCalls++
	if f.findOpenOverlappingFn != nil {
		return f.findOpenOverlappingFn(ctx, personID, start, end)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindApprovedOverlapping(ctx context.Context, personID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	if f.findApprovedOverlappingFn != nil {
		return f.findApprovedOverlappingFn(ctx, personID, start, end)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindHolidaysInRange(ctx context.Context, start, end time.Time) ([]leave.HolidayRow, error) {
	if f.findHolidaysInRangeFn != nil {
		return f.findHolidaysInRangeFn(ctx, start, end)
	}
	return nil, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
	outbox  *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewServiceWithOutbox(db, repo, outbox)

	return &leaveServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
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

func TestLeaveService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("inverted range unavailable without store access", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.Check(ctx, leave.CheckAvailabilityRequest{
			PersonID:  uuid.NewString(),
			StartDate: "2025-06-10",
			EndDate:   "2025-06-01",
		})

		assert.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Empty(t, resp.Conflicts)
		assert.Equal(t, 0, deps.repo.openOverlapCalls)
	})

	t.Run("clean five day request is available", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.Check(ctx, leave.CheckAvailabilityRequest{
			PersonID:  uuid.NewString(),
			StartDate: "2025-06-01",
			EndDate:   "2025-06-05",
		})

		assert.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Equal(t, 0, resp.UsedDays)
		assert.Equal(t, 20, resp.RemainingDays)
		assert.Equal(t, 5, resp.RequestedDays)
		assert.Empty(t, resp.Conflicts)
	})

	t.Run("overlapping approved request blocks regardless of balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		personID := uuid.New()
		existing := leave.LeaveRequest{
			ID:        uuid.New(),
			PersonID:  personID,
			StartDate: date(2025, 6, 1),
			EndDate:   date(2025, 6, 10),
			Status:    leave.StatusApproved,
		}
		deps.repo.findOpenOverlappingFn = func(ctx context.Context, pid string, start, end time.Time) ([]leave.LeaveRequest, error) {
			return []leave.LeaveRequest{existing}, nil
		}
		deps.repo.findApprovedOverlappingFn = func(ctx context.Context, pid string, start, end time.Time) ([]leave.LeaveRequest, error) {
			return []leave.LeaveRequest{existing}, nil
		}

		resp, err := deps.service.Check(ctx, leave.CheckAvailabilityRequest{
			PersonID:  personID.String(),
			StartDate: "2025-06-05",
			EndDate:   "2025-06-07",
		})

		assert.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Len(t, resp.Conflicts, 1)
		assert.Equal(t, existing.ID.String(), resp.Conflicts[0].LeaveID)
	})

	t.Run("holiday in range attached without affecting availability", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findHolidaysInRangeFn = func(ctx context.Context, start, end time.Time) ([]leave.HolidayRow, error) {
			return []leave.HolidayRow{{Date: date(2025, 1, 1), Name: "New Year"}}, nil
		}

		resp, err := deps.service.Check(ctx, leave.CheckAvailabilityRequest{
			PersonID:  uuid.NewString(),
			StartDate: "2025-01-01",
			EndDate:   "2025-01-01",
		})

		assert.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Len(t, resp.Holidays, 1)
		assert.Equal(t, "New Year", resp.Holidays[0].Name)
	})

	t.Run("exhausted budget makes request unavailable without conflicts", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findApprovedOverlappingFn = func(ctx context.Context, pid string, start, end time.Time) ([]leave.LeaveRequest, error) {
			return []leave.LeaveRequest{
				{StartDate: date(2025, 2, 1), EndDate: date(2025, 2, 18)},
			}, nil
		}

		resp, err := deps.service.Check(ctx, leave.CheckAvailabilityRequest{
			PersonID:  uuid.NewString(),
			StartDate: "2025-02-01",
			EndDate:   "2025-02-05",
		})

		assert.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, 18, resp.UsedDays)
		assert.Equal(t, 2, resp.RemainingDays)
		assert.Empty(t, resp.Conflicts)
	})
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		personID := uuid.NewString()
		actorID := uuid.NewString()
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, personID, l.PersonID.String())
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.Equal(t, 5, l.TotalDays)
			assert.Equal(t, actorID, l.CreatedBy.String())
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			PersonID:  personID,
			LeaveType: "ANNUAL",
			StartDate: "2025-06-01",
			EndDate:   "2025-06-05",
			Reason:    "vacation",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 5, resp.TotalDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, uuid.NewString(), leave.CreateLeaveRequest{
			PersonID:  uuid.NewString(),
			LeaveType: "ANNUAL",
			StartDate: "2025-06-10",
			EndDate:   "2025-06-01",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("overlap inside transaction rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findOpenOverlappingFn = func(ctx context.Context, pid string, start, end time.Time) ([]leave.LeaveRequest, error) {
			return []leave.LeaveRequest{
				{ID: uuid.New(), StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 10), Status: leave.StatusPending},
			}, nil
		}

		_, err := deps.service.Create(ctx, uuid.NewString(), leave.CreateLeaveRequest{
			PersonID:  uuid.NewString(),
			LeaveType: "ANNUAL",
			StartDate: "2025-06-05",
			EndDate:   "2025-06-07",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("insufficient remaining days rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findApprovedOverlappingFn = func(ctx context.Context, pid string, start, end time.Time) ([]leave.LeaveRequest, error) {
			return []leave.LeaveRequest{
				{StartDate: date(2025, 3, 1), EndDate: date(2025, 3, 19)},
			}, nil
		}

		_, err := deps.service.Create(ctx, uuid.NewString(), leave.CreateLeaveRequest{
			PersonID:  uuid.NewString(),
			LeaveType: "ANNUAL",
			StartDate: "2025-03-01",
			EndDate:   "2025-03-05",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientDays)
	})

	t.Run("exclusion constraint race maps to overlap", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			return &pgconn.PgError{Code: "23P01", ConstraintName: "excl_leave_requests_person_period"}
		}

		_, err := deps.service.Create(ctx, uuid.NewString(), leave.CreateLeaveRequest{
			PersonID:  uuid.NewString(),
			LeaveType: "ANNUAL",
			StartDate: "2025-06-01",
			EndDate:   "2025-06-05",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()

	pendingRequest := func(personID uuid.UUID) *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:        uuid.New(),
			PersonID:  personID,
			LeaveType: "ANNUAL",
			StartDate: date(2025, 6, 1),
			EndDate:   date(2025, 6, 5),
			TotalDays: 5,
			Status:    leave.StatusPending,
			CreatedBy: personID,
		}
	}

	t.Run("approve stamps decider and queues event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		personID := uuid.New()
		req := pendingRequest(personID)
		actorID := uuid.NewString()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return req, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusApproved, l.Status)
			assert.NotNil(t, l.DecidedBy)
			assert.Equal(t, actorID, l.DecidedBy.String())
			assert.NotNil(t, l.DecidedAt)
			return nil
		}

		resp, err := deps.service.Approve(ctx, actorID, req.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "leave_request", deps.outbox.created[0].AggregateType)
		assert.Equal(t, req.ID.String(), deps.outbox.created[0].AggregateID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject stamps decider", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		req := pendingRequest(uuid.New())
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return req, nil
		}

		resp, err := deps.service.Reject(ctx, uuid.NewString(), req.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.DecidedBy)
	})

	t.Run("already decided request is terminal", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		req := pendingRequest(uuid.New())
		req.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return req, nil
		}

		_, err := deps.service.Reject(ctx, uuid.NewString(), req.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("unknown request maps not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, uuid.NewString(), uuid.NewString())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
