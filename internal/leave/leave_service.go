package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-leavedesk/internal/events"
	leaveerrors "go-leavedesk/internal/leave/errors"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Check(ctx context.Context, req CheckAvailabilityRequest) (CheckAvailabilityResponse, error)
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetAllByPerson(ctx context.Context, personID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Check(ctx context.Context, req CheckAvailabilityRequest) (CheckAvailabilityResponse, error) {
	if _, err := uuid.Parse(req.PersonID); err != nil {
		return CheckAvailabilityResponse{}, leaveerrors.ErrInvalidPersonID
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return CheckAvailabilityResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return CheckAvailabilityResponse{}, err
	}

	return s.checkAvailability(ctx, s.repo, req.PersonID, start, end)
}

// checkAvailability runs against whichever repository it is handed so
// that request creation can reuse it inside an open transaction.
func (s *service) checkAvailability(
	ctx context.Context,
	repo Repository,
	personID string,
	start, end time.Time,
) (CheckAvailabilityResponse, error) {
	resp := CheckAvailabilityResponse{
		Conflicts: []ConflictRange{},
		Holidays:  []HolidayInfo{},
	}

	// Inverted ranges short-circuit before any store access.
	if start.After(end) {
		return resp, nil
	}

	conflicts, err := repo.FindOpenOverlapping(ctx, personID, start, end)
	if err != nil {
		s.logger.Error("availability conflict query failed",
			zap.String("person_id", personID),
			zap.Error(err),
		)
		return CheckAvailabilityResponse{}, err
	}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictRange{
			LeaveID:   c.ID.String(),
			StartDate: c.StartDate.Format("2006-01-02"),
			EndDate:   c.EndDate.Format("2006-01-02"),
			Status:    c.Status,
		})
	}

	approved, err := repo.FindApprovedOverlapping(ctx, personID, start, end)
	if err != nil {
		return CheckAvailabilityResponse{}, err
	}

	resp.UsedDays = usedDaysInYear(approved, start.Year())
	resp.RequestedDays = daysInclusive(start, end)
	resp.RemainingDays = annualLeaveLimit - resp.UsedDays
	resp.Available = len(resp.Conflicts) == 0 && resp.RemainingDays >= resp.RequestedDays

	holidays, err := repo.FindHolidaysInRange(ctx, start, end)
	if err != nil {
		return CheckAvailabilityResponse{}, err
	}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, HolidayInfo{
			Date: h.Date.Format("2006-01-02"),
			Name: h.Name,
		})
	}

	return resp, nil
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("person_id", req.PersonID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	personUUID, createdByUUID, start, end, err := validateCreateRequest(actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The pre-insert check is a best-effort gate for readable errors.
	// The exclusion constraint on (person_id, daterange) is what closes
	// the race between concurrent submissions; see mapRepositoryError.
	check, err := s.checkAvailability(ctx, qtx, req.PersonID, start, end)
	if err != nil {
		return LeaveResponse{}, err
	}
	if len(check.Conflicts) > 0 {
		s.logger.Warn("create leave overlap detected",
			zap.String("person_id", req.PersonID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}
	if check.RemainingDays < check.RequestedDays {
		return LeaveResponse{}, leaveerrors.ErrInsufficientDays
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		PersonID:  personUUID,
		LeaveType: req.LeaveType,
		StartDate: start,
		EndDate:   end,
		TotalDays: daysInclusive(start, end),
		Reason:    req.Reason,
		Status:    StatusPending,
		CreatedBy: createdByUUID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("person_id", req.PersonID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAllByPerson(ctx context.Context, personID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, leaveerrors.ErrInvalidPersonID
	}

	leaves, err := s.repo.FindAllByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusRejected)
}

func (s *service) decide(ctx context.Context, actorID, id, targetStatus string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	// Decisions are recorded exactly once.
	if l.Status != StatusPending {
		s.logger.Warn("decide leave already decided",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveDecidedEvent{
			EventType:  "leave.decided",
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			PersonID:   l.PersonID.String(),
			Status:     targetStatus,
			DecidedBy:  actorUUID.String(),
			StartDate:  l.StartDate.Format("2006-01-02"),
			EndDate:    l.EndDate.Format("2006-01-02"),
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   l.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveDecidedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*l), nil
}

func validateCreateRequest(actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	personUUID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidPersonID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return personUUID, createdByUUID, start, end, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23P01":
			return leaveerrors.ErrLeaveOverlap
		case "23503":
			return leaveerrors.ErrPersonNotFound
		}
	}
	return err
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		PersonID:  l.PersonID.String(),
		LeaveType: l.LeaveType,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		TotalDays: l.TotalDays,
		Reason:    l.Reason,
		Status:    l.Status,
		CreatedBy: l.CreatedBy.String(),
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
