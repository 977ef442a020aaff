package auth_test

import (
	"context"
	"testing"
	"time"

	"go-leavedesk/internal/auth"
	autherrors "go-leavedesk/internal/auth/errors"
	"go-leavedesk/internal/authz"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepository struct {
	getByUsernameFn   func(ctx context.Context, username string) (*auth.User, error)
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	updateLastLoginFn func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (f *fakeAuthRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeAuthRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.updateLastLoginFn != nil {
		return f.updateLastLoginFn(ctx, id, at)
	}
	return nil
}

func newTestUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	personID := uuid.New()
	return &auth.User{
		ID:           uuid.New(),
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: string(hash),
		Role:         authz.RoleStaff,
		PersonID:     &personID,
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("success issues tokens and stamps last login", func(t *testing.T) {
		user := newTestUser(t, "s3cret")
		stamped := false

		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				assert.Equal(t, "jdoe", username)
				return user, nil
			},
			updateLastLoginFn: func(ctx context.Context, id uuid.UUID, at time.Time) error {
				assert.Equal(t, user.ID, id)
				stamped = true
				return nil
			},
		}
		svc := auth.NewService(repo)

		access, refresh, resp, err := svc.Login(ctx, "jdoe", "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.True(t, stamped)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, authz.RoleStaff, resp.Role)
		assert.Equal(t, user.PersonID.String(), resp.PersonID)

		token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, authz.RoleStaff, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		user := newTestUser(t, "s3cret")
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "jdoe", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return nil, assert.AnError
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		user := newTestUser(t, "s3cret")
		user.IsActive = false
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "jdoe", "s3cret")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		user := newTestUser(t, "s3cret")
		repo := &fakeAuthRepository{
			getByUsernameFn: func(ctx context.Context, username string) (*auth.User, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, user.ID, id)
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		_, refresh, _, err := svc.Login(ctx, "jdoe", "s3cret")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.ID.String(), resp.ID)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})
		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{})
		_, err := svc.GetMe(ctx, "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("found", func(t *testing.T) {
		user := newTestUser(t, "s3cret")
		repo := &fakeAuthRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.GetMe(ctx, user.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, user.Username, resp.Username)
	})
}
