package events

import "time"

const LeaveDecidedTopic = "leave.request.decided.v1"

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	LeaveID    string    `json:"leave_id"`
	PersonID   string    `json:"person_id"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decided_by"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
