package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	usererrors "go-leavedesk/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// adminUsername is the bootstrap account; it can never be removed.
const adminUsername = "admin"

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("username", req.Username),
		zap.String("role", req.Role),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkDuplicates(ctx, qtx, req.Username, req.Email, nil); err != nil {
		return UserResponse{}, err
	}

	var personID *uuid.UUID
	if req.PersonID != nil && *req.PersonID != "" {
		pid, err := uuid.Parse(*req.PersonID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidPersonID
		}
		personID = &pid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		PersonID:     personID,
		IsActive:     true,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}
	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := s.checkDuplicates(ctx, qtx, req.Username, req.Email, &id); err != nil {
		return UserResponse{}, err
	}

	u.Username = req.Username
	u.Email = req.Email
	u.Role = req.Role
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if req.PersonID != nil {
		if *req.PersonID == "" {
			u.PersonID = nil
		} else {
			pid, err := uuid.Parse(*req.PersonID)
			if err != nil {
				return UserResponse{}, usererrors.ErrInvalidPersonID
			}
			u.PersonID = &pid
		}
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.PasswordHash = string(hash)
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed", zap.Error(err))
		return UserResponse{}, err
	}
	s.logger.Info("update user success", zap.String("user_id", id))

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if actorID == id {
		return usererrors.ErrSelfDeletion
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if u.Username == adminUsername {
		return usererrors.ErrAdminUndeletable
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete user success", zap.String("user_id", id))
	return nil
}

// checkDuplicates rejects a username or email already taken by a
// different account. The unique indexes remain the hard guarantee; this
// yields the friendlier error.
func (s *service) checkDuplicates(ctx context.Context, repo Repository, username, email string, excludeID *string) error {
	existing, err := repo.FindByUsername(ctx, username)
	if err == nil && (excludeID == nil || existing.ID.String() != *excludeID) {
		return usererrors.ErrUsernameAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing, err = repo.FindByEmail(ctx, email)
	if err == nil && (excludeID == nil || existing.ID.String() != *excludeID) {
		return usererrors.ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.PersonID != nil {
		v := u.PersonID.String()
		resp.PersonID = &v
	}
	if u.LastLogin != nil {
		v := u.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &v
	}
	return resp
}
