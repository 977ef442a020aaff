package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-leavedesk/internal/events"
	"go-leavedesk/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecided turns leave decision events into in-app
// notifications for the requester.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			PersonID: event.PersonID,
			Message:  decisionMessage(event),
		})
		if err != nil {
			log.Error("create decision notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("person_id", event.PersonID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("decision notification created",
			zap.String("leave_id", event.LeaveID),
			zap.String("person_id", event.PersonID),
			zap.String("status", event.Status),
		)
	}
}

func decisionMessage(event events.LeaveDecidedEvent) string {
	return fmt.Sprintf(
		"Your leave request for %s to %s was %s.",
		event.StartDate, event.EndDate, strings.ToLower(event.Status),
	)
}
