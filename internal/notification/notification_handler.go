package notification

import (
	"net/http"

	notificationerrors "go-leavedesk/internal/notification/errors"
	"go-leavedesk/internal/shared/apperror"
	"go-leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetMine lists the authenticated user's notifications. The person
// link comes from the token, not from the request.
func (h *Handler) GetMine(c *gin.Context) {
	personID := c.GetString("person_id")
	if personID == "" {
		h.writeServiceError(c, notificationerrors.ErrInvalidPersonID)
		return
	}

	resp, err := h.service.GetByPerson(c.Request.Context(), personID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// MarkRead only touches notifications belonging to the token's person.
func (h *Handler) MarkRead(c *gin.Context) {
	personID := c.GetString("person_id")
	if personID == "" {
		h.writeServiceError(c, notificationerrors.ErrInvalidPersonID)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), personID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}
