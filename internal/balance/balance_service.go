package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "go-leavedesk/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertBalanceRequest) (BalanceResponse, error)
	GetByPerson(ctx context.Context, personID string) ([]BalanceResponse, error)
	GetByPersonAndYear(ctx context.Context, personID string, year int) (BalanceResponse, error)
	Delete(ctx context.Context, personID string, year int) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Upsert(ctx context.Context, req UpsertBalanceRequest) (BalanceResponse, error) {
	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidPersonID
	}
	if req.Year < 2000 || req.Year > 2100 {
		return BalanceResponse{}, balanceerrors.ErrInvalidYear
	}
	if req.Entitlement < 0 || req.Used < 0 || req.Pending < 0 || req.Carryover < 0 {
		return BalanceResponse{}, balanceerrors.ErrNegativeComponent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	b := &LeaveBalance{
		ID:          uuid.New(),
		PersonID:    personID,
		Year:        req.Year,
		Entitlement: req.Entitlement,
		Used:        req.Used,
		Pending:     req.Pending,
		Carryover:   req.Carryover,
	}

	if err := s.repo.WithTx(tx).Upsert(ctx, b); err != nil {
		s.logger.Error("upsert balance persist failed",
			zap.String("person_id", req.PersonID),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return BalanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("upsert balance success",
		zap.String("person_id", req.PersonID),
		zap.Int("year", req.Year),
		zap.Int("remaining", b.Remaining()),
	)

	return mapToResponse(*b), nil
}

func (s *service) GetByPerson(ctx context.Context, personID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, balanceerrors.ErrInvalidPersonID
	}

	balances, err := s.repo.FindByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) GetByPersonAndYear(ctx context.Context, personID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidPersonID
	}

	b, err := s.repo.FindByPersonAndYear(ctx, personID, year)
	if err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) Delete(ctx context.Context, personID string, year int) error {
	if _, err := uuid.Parse(personID); err != nil {
		return balanceerrors.ErrInvalidPersonID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, personID, year); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return balanceerrors.ErrBalanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return balanceerrors.ErrPersonNotFound
	}

	return err
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:          b.ID.String(),
		PersonID:    b.PersonID.String(),
		Year:        b.Year,
		Entitlement: b.Entitlement,
		Used:        b.Used,
		Pending:     b.Pending,
		Carryover:   b.Carryover,
		Remaining:   b.Remaining(),
	}
}
