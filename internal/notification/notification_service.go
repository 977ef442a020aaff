package notification

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	notificationerrors "go-leavedesk/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	GetByPerson(ctx context.Context, personID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, personID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidPersonID
	}
	if strings.TrimSpace(req.Message) == "" {
		return NotificationResponse{}, notificationerrors.ErrEmptyMessage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NotificationResponse{}, err
	}
	defer tx.Rollback()

	n := &Notification{
		ID:       uuid.New(),
		PersonID: personID,
		Message:  req.Message,
	}

	if err := s.repo.WithTx(tx).Create(ctx, n); err != nil {
		s.logger.Error("create notification persist failed",
			zap.String("person_id", req.PersonID),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return NotificationResponse{}, err
	}

	return mapToResponse(*n), nil
}

func (s *service) GetByPerson(ctx context.Context, personID string) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(personID); err != nil {
		return nil, notificationerrors.ErrInvalidPersonID
	}

	notifications, err := s.repo.FindByPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, personID, id string) error {
	if _, err := uuid.Parse(personID); err != nil {
		return notificationerrors.ErrInvalidPersonID
	}
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	// Someone else's notification looks the same as a missing one.
	if n.PersonID.String() != personID {
		s.logger.Warn("mark read denied for foreign notification",
			zap.String("person_id", personID),
			zap.String("notification_id", id),
		)
		return notificationerrors.ErrNotificationNotFound
	}

	if err := qtx.MarkRead(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		PersonID:  n.PersonID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
