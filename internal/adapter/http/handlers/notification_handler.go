package handlers

import (
	"context"
	"net/http"

	response "cremacao_pet/internal/adapter/http/dto/response"
	"cremacao_pet/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// INotificationInbox is the read side of the notification dispatcher.

type INotificationInbox interface {
	List(ctx context.Context, actor entities.Actor, unreadOnly bool) []entities.Notification
	MarkRead(ctx context.Context, actor entities.Actor, id string) (entities.Notification, error)
}

type NotificationHandler struct {
	inbox  INotificationInbox
	logger *zap.Logger
}

func NewNotificationHandler(inbox INotificationInbox, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{inbox: inbox, logger: logger.Named("notification_handler")}
}

func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	c.JSON(http.StatusOK, response.FromNotifications(h.inbox.List(c.Request.Context(), actorFrom(c), unreadOnly)))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.inbox.MarkRead(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
