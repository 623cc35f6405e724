package handlers

import (
	"errors"
	"net/http"

	"cremacao_pet/internal/infrastructure/notification"
	"cremacao_pet/internal/usecase"
	"cremacao_pet/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid request payload", http.StatusBadRequest)

// mapError translates use-case errors into API errors. Rejections keep their detail line.
func mapError(err error) *pkg.AppError {
	var appErr *pkg.AppError
	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrInvalidRemovalID):
		appErr = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrZeroDelta):
		appErr = pkg.NewDomainErrorSimple("ZERO_DELTA", "The change does not alter the value", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBatchCapacity):
		appErr = pkg.NewDomainErrorSimple("BATCH_FULL", "A cremation batch holds at most 4 removals", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbiddenRole):
		appErr = pkg.NewDomainErrorSimple("FORBIDDEN_ROLE", "Role not allowed for this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrTerminalStatus):
		appErr = pkg.NewDomainErrorSimple("TERMINAL_STATUS", "Removal is closed", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		appErr = pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Operation not allowed in current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrVersionConflict):
		appErr = pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Record was modified by another request, reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrDuplicateCode):
		appErr = pkg.NewDomainErrorSimple("DUPLICATE_CODE", "Removal code already in use", http.StatusConflict)
	case errors.Is(err, usecase.ErrDeliveryCapacity):
		appErr = pkg.NewDomainErrorSimple("DELIVERY_CAPACITY", "Daily delivery capacity reached", http.StatusConflict)
	case errors.Is(err, usecase.ErrBatchNotStarted), errors.Is(err, usecase.ErrBatchAlreadyFinished):
		appErr = pkg.NewDomainErrorSimple("BATCH_STATE", "Cremation batch is not in the required state", http.StatusConflict)
	case errors.Is(err, usecase.ErrStockItemExists):
		appErr = pkg.NewDomainErrorSimple("STOCK_ITEM_EXISTS", "Stock item already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrRemovalNotFound):
		appErr = pkg.NewDomainErrorSimple("REMOVAL_NOT_FOUND", "Removal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBatchNotFound):
		appErr = pkg.NewDomainErrorSimple("BATCH_NOT_FOUND", "Cremation batch not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrStockItemNotFound):
		appErr = pkg.NewDomainErrorSimple("STOCK_ITEM_NOT_FOUND", "Stock item not found", http.StatusNotFound)
	case errors.Is(err, notification.ErrNotificationNotFound):
		appErr = pkg.NewDomainErrorSimple("NOTIFICATION_NOT_FOUND", "Notification not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
	var rej *usecase.RejectionError
	if errors.As(err, &rej) && rej.Detail != "" {
		return appErr.WithDetail(rej.Detail)
	}
	return appErr
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	appErr := mapError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func respondInvalidPayload(c *gin.Context, err error) {
	c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.WithDetail(err.Error()).ToHTTPError())
}

// bindOptionalJSON binds the body when there is one. Version-only operations may be posted empty.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondInvalidPayload(c, err)
		return false
	}
	return true
}
