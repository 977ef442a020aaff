package person

import (
	"context"
	"database/sql"
	"errors"
	"time"

	personerrors "go-leavedesk/internal/person/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=person_service.go -destination=mock/person_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePersonRequest) (PersonResponse, error)
	GetAll(ctx context.Context) ([]PersonResponse, error)
	GetByID(ctx context.Context, id string) (PersonResponse, error)
	Update(ctx context.Context, id string, req UpdatePersonRequest) (PersonResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("person.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("person.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePersonRequest) (PersonResponse, error) {
	s.logger.Debug("create person requested",
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create person begin tx failed", zap.Error(err))
		return PersonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return PersonResponse{}, personerrors.ErrInvalidHireDate
	}

	var teamID *uuid.UUID
	if req.TeamID != nil && *req.TeamID != "" {
		tid, err := uuid.Parse(*req.TeamID)
		if err != nil {
			return PersonResponse{}, personerrors.ErrInvalidTeamID
		}
		teamID = &tid
	}

	p := &Person{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		TeamID:   teamID,
		HireDate: hireDate,
		IsActive: true,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create person persist failed", zap.Error(err))
		return PersonResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create person commit failed", zap.Error(err))
		return PersonResponse{}, err
	}
	s.logger.Info("create person success",
		zap.String("person_id", p.ID.String()),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PersonResponse, error) {
	persons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PersonResponse, len(persons))
	for i, p := range persons {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PersonResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonResponse{}, personerrors.ErrInvalidPersonID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PersonResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePersonRequest) (PersonResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonResponse{}, personerrors.ErrInvalidPersonID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update person begin tx failed", zap.Error(err))
		return PersonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PersonResponse{}, mapRepositoryError(err)
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return PersonResponse{}, personerrors.ErrInvalidHireDate
	}

	p.FullName = req.FullName
	p.Email = req.Email
	p.Role = req.Role
	p.HireDate = hireDate
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if req.TeamID != nil {
		if *req.TeamID == "" {
			p.TeamID = nil
		} else {
			tid, err := uuid.Parse(*req.TeamID)
			if err != nil {
				return PersonResponse{}, personerrors.ErrInvalidTeamID
			}
			p.TeamID = &tid
		}
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update person persist failed",
			zap.String("person_id", id),
			zap.Error(err),
		)
		return PersonResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update person commit failed", zap.Error(err))
		return PersonResponse{}, err
	}
	s.logger.Info("update person success", zap.String("person_id", id))

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return personerrors.ErrInvalidPersonID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return personerrors.ErrPersonNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return personerrors.ErrEmailAlreadyExists
	}

	return err
}

func mapToResponse(p Person) PersonResponse {
	resp := PersonResponse{
		ID:          p.ID.String(),
		FullName:    p.FullName,
		Email:       p.Email,
		Role:        p.Role,
		HireDate:    p.HireDate.Format("2006-01-02"),
		IsActive:    p.IsActive,
		Entitlement: p.Entitlement(time.Now().UTC()),
	}
	if p.TeamID != nil {
		v := p.TeamID.String()
		resp.TeamID = &v
	}
	return resp
}
