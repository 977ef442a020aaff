package user_test

import (
	"context"
	"database/sql"
	"testing"

	"go-leavedesk/internal/user"
	usererrors "go-leavedesk/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn         func(ctx context.Context, u *user.User) error
	findAllFn        func(ctx context.Context) ([]user.User, error)
	findByIDFn       func(ctx context.Context, id string) (*user.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*user.User, error)
	updateFn         func(ctx context.Context, u *user.User) error
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if f.findByUsernameFn != nil {
		return f.findByUsernameFn(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type userServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service user.Service
	repo    *fakeUserRepository
}

func setupUserServiceTest(t *testing.T) *userServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeUserRepository{}
	svc := user.NewService(db, repo)

	return &userServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes password and defaults active", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			assert.Equal(t, "jdoe", u.Username)
			assert.Equal(t, "staff", u.Role)
			assert.True(t, u.IsActive)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
			return nil
		}

		resp, err := deps.service.Create(ctx, user.CreateUserRequest{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: "s3cret",
			Role:     "staff",
		})

		assert.NoError(t, err)
		assert.Equal(t, "jdoe", resp.Username)
		assert.True(t, resp.IsActive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByUsernameFn = func(ctx context.Context, username string) (*user.User, error) {
			return &user.User{ID: uuid.New(), Username: username}, nil
		}

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: "s3cret",
			Role:     "staff",
		})

		assert.ErrorIs(t, err, usererrors.ErrUsernameAlreadyExists)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{ID: uuid.New(), Email: email}, nil
		}

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: "s3cret",
			Role:     "staff",
		})

		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyExists)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("duplicate checks skip the user itself", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		existing := &user.User{ID: id, Username: "jdoe", Email: "jdoe@example.com", Role: "staff", IsActive: true}
		deps.repo.findByIDFn = func(ctx context.Context, got string) (*user.User, error) {
			assert.Equal(t, id.String(), got)
			return existing, nil
		}
		deps.repo.findByUsernameFn = func(ctx context.Context, username string) (*user.User, error) {
			return existing, nil
		}
		deps.repo.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return existing, nil
		}

		resp, err := deps.service.Update(ctx, id.String(), user.UpdateUserRequest{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Role:     "manager",
		})

		assert.NoError(t, err)
		assert.Equal(t, "manager", resp.Role)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, "not-a-uuid", user.UpdateUserRequest{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Role:     "staff",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("admin account protected", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, got string) (*user.User, error) {
			return &user.User{ID: id, Username: "admin"}, nil
		}

		err := deps.service.Delete(ctx, actorID, id.String())
		assert.ErrorIs(t, err, usererrors.ErrAdminUndeletable)
	})

	t.Run("self deletion rejected", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, actorID, actorID)
		assert.ErrorIs(t, err, usererrors.ErrSelfDeletion)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		id := uuid.New()
		deleted := false
		deps.repo.findByIDFn = func(ctx context.Context, got string) (*user.User, error) {
			return &user.User{ID: id, Username: "jdoe"}, nil
		}
		deps.repo.deleteFn = func(ctx context.Context, got string) error {
			assert.Equal(t, id.String(), got)
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, actorID, id.String())
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
