package notification

import "time"

type CreateNotificationRequest struct {
	PersonID string `json:"person_id" binding:"required,uuid"`
	Message  string `json:"message" binding:"required"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	PersonID  string    `json:"person_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
