package notification_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leavedesk/internal/notification"
	notificationerrors "go-leavedesk/internal/notification/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeNotificationRepository struct {
	createFn       func(ctx context.Context, n *notification.Notification) error
	findByPersonFn func(ctx context.Context, personID string) ([]notification.Notification, error)
	findByIDFn     func(ctx context.Context, id string) (*notification.Notification, error)
	markReadFn     func(ctx context.Context, id string) error
	markReadCalls  int
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindByPerson(ctx context.Context, personID string) ([]notification.Notification, error) {
	if f.findByPersonFn != nil {
		return f.findByPersonFn(ctx, personID)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, id string) error {
	f.markReadCalls++
	if f.markReadFn != nil {
		return f.markReadFn(ctx, id)
	}
	return nil
}

type notificationServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service notification.Service
	repo    *fakeNotificationRepository
}

func setupNotificationServiceTest(t *testing.T) *notificationServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeNotificationRepository{}
	svc := notification.NewService(db, repo)

	return &notificationServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupNotificationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		personID := uuid.NewString()
		resp, err := deps.service.Create(ctx, notification.CreateNotificationRequest{
			PersonID: personID,
			Message:  "Your leave request for 2025-06-01 to 2025-06-05 was APPROVED.",
		})

		assert.NoError(t, err)
		assert.Equal(t, personID, resp.PersonID)
		assert.False(t, resp.IsRead)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("blank message rejected", func(t *testing.T) {
		deps := setupNotificationServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, notification.CreateNotificationRequest{
			PersonID: uuid.NewString(),
			Message:  "   ",
		})

		assert.ErrorIs(t, err, notificationerrors.ErrEmptyMessage)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("owner marks own notification", func(t *testing.T) {
		deps := setupNotificationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		personID := uuid.New()
		notifID := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*notification.Notification, error) {
			assert.Equal(t, notifID.String(), id)
			return &notification.Notification{ID: notifID, PersonID: personID}, nil
		}

		err := deps.service.MarkRead(ctx, personID.String(), notifID.String())

		assert.NoError(t, err)
		assert.Equal(t, 1, deps.repo.markReadCalls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("foreign notification reads as missing", func(t *testing.T) {
		deps := setupNotificationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		owner := uuid.New()
		notifID := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*notification.Notification, error) {
			return &notification.Notification{ID: notifID, PersonID: owner}, nil
		}

		err := deps.service.MarkRead(ctx, uuid.NewString(), notifID.String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
		assert.Equal(t, 0, deps.repo.markReadCalls)
	})

	t.Run("missing notification", func(t *testing.T) {
		deps := setupNotificationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		err := deps.service.MarkRead(ctx, uuid.NewString(), uuid.NewString())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("bad person id rejected before any query", func(t *testing.T) {
		deps := setupNotificationServiceTest(t)
		defer deps.db.Close()

		err := deps.service.MarkRead(ctx, "nope", uuid.NewString())

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidPersonID)
	})
}
