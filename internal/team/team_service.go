package team

import (
	"context"
	"database/sql"
	"errors"

	teamerrors "go-leavedesk/internal/team/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context) ([]TeamResponse, error)
	GetByID(ctx context.Context, id string) (TeamResponse, error)
	Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	maxConcurrent := req.MaxConcurrentLeaves
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	t := &Team{
		ID:                  uuid.New(),
		Name:                req.Name,
		MaxConcurrentLeaves: maxConcurrent,
	}

	if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
		s.logger.Error("create team persist failed", zap.Error(err))
		return TeamResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}
	s.logger.Info("create team success", zap.String("team_id", t.ID.String()))

	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TeamResponse, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]TeamResponse, len(teams))
	for i, t := range teams {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, teamerrors.ErrTeamNotFound
		}
		return TeamResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, teamerrors.ErrTeamNotFound
		}
		return TeamResponse{}, err
	}

	t.Name = req.Name
	if req.MaxConcurrentLeaves >= 1 {
		t.MaxConcurrentLeaves = req.MaxConcurrentLeaves
	}

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update team persist failed",
			zap.String("team_id", id),
			zap.Error(err),
		)
		return TeamResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return teamerrors.ErrInvalidTeamID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(t Team) TeamResponse {
	return TeamResponse{
		ID:                  t.ID.String(),
		Name:                t.Name,
		MaxConcurrentLeaves: t.MaxConcurrentLeaves,
	}
}
