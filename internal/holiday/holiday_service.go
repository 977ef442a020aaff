package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	holidayerrors "go-leavedesk/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// CalendarCacheKey holds the full calendar list; the calendar changes a
// few times a year, so an hour of staleness after a missed invalidation
// is acceptable.
const CalendarCacheKey = "holidays:calendar"

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	GetInRange(ctx context.Context, from, to string) ([]HolidayResponse, error)
	GetByID(ctx context.Context, id string) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:       uuid.New(),
		Date:     date,
		Name:     req.Name,
		IsPublic: true,
		Country:  req.Country,
	}
	if req.IsPublic != nil {
		h.IsPublic = *req.IsPublic
	}
	if h.Country == "" {
		h.Country = "TR"
	}

	if err := s.repo.WithTx(tx).Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}
	s.invalidateCache(ctx)
	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)

	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CalendarCacheKey).Result(); err == nil {
			var resp []HolidayResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Collapse concurrent cache misses into one database read.
	v, err, _ := s.sf.Do(CalendarCacheKey, func() (interface{}, error) {
		holidays, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(holidays)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, CalendarCacheKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]HolidayResponse), nil
}

func (s *service) GetInRange(ctx context.Context, from, to string) ([]HolidayResponse, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, holidayerrors.ErrInvalidDateRange
	}

	holidays, err := s.repo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(holidays), nil
}

func (s *service) GetByID(ctx context.Context, id string) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*h), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, id)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h.Date = date
	h.Name = req.Name
	if req.IsPublic != nil {
		h.IsPublic = *req.IsPublic
	}
	if req.Country != "" {
		h.Country = req.Country
	}

	if err := qtx.Update(ctx, h); err != nil {
		s.logger.Error("update holiday persist failed",
			zap.String("holiday_id", id),
			zap.Error(err),
		)
		return HolidayResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}
	s.invalidateCache(ctx)

	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CalendarCacheKey).Err(); err != nil {
		s.logger.Warn("holiday cache invalidation failed", zap.Error(err))
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return holidayerrors.ErrHolidayNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return holidayerrors.ErrHolidayDateTaken
	}

	return err
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID.String(),
		Date:     h.Date.Format("2006-01-02"),
		Name:     h.Name,
		IsPublic: h.IsPublic,
		Country:  h.Country,
	}
}

func mapToListResponse(holidays []Holiday) []HolidayResponse {
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp
}
