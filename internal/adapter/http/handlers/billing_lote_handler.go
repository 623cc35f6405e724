package handlers

import (
	"context"
	"net/http"
	"strings"

	request "cremacao_pet/internal/adapter/http/dto/request"
	response "cremacao_pet/internal/adapter/http/dto/response"
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase"
	"cremacao_pet/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errMissingClinic = pkg.NewDomainErrorSimple("INVALID_REQUEST", "clinic_id is required", http.StatusBadRequest)

// BillingLoteHandler settles groups of faturado removals of one clinic.
type BillingLoteHandler struct {
	usecase usecase.IBillingLoteUseCase
	logger  *zap.Logger
}

func NewBillingLoteHandler(uc usecase.IBillingLoteUseCase, logger *zap.Logger) *BillingLoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingLoteHandler{usecase: uc, logger: logger.Named("lote_handler")}
}

func (h *BillingLoteHandler) ListByClinic(c *gin.Context) {
	clinicID := strings.TrimSpace(c.Query("clinic_id"))
	if clinicID == "" {
		c.JSON(errMissingClinic.HTTPStatus, errMissingClinic.ToHTTPError())
		return
	}
	status := entities.RemovalStatus(strings.TrimSpace(c.Query("status")))
	removals, err := h.usecase.ListByClinic(c.Request.Context(), clinicID, status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRemovals(removals))
}

func (h *BillingLoteHandler) IssueBoleto(c *gin.Context) {
	h.apply(c, func(ctx context.Context, actor entities.Actor, p request.LoteRequest) ([]entities.Removal, error) {
		return h.usecase.IssueBoleto(ctx, actor, p.TrimmedCodes(), strings.TrimSpace(p.BoletoURL))
	})
}

func (h *BillingLoteHandler) ConfirmPayment(c *gin.Context) {
	h.apply(c, func(ctx context.Context, actor entities.Actor, p request.LoteRequest) ([]entities.Removal, error) {
		return h.usecase.ConfirmPayment(ctx, actor, p.TrimmedCodes(), strings.TrimSpace(p.ProofURL))
	})
}

func (h *BillingLoteHandler) Close(c *gin.Context) {
	h.apply(c, func(ctx context.Context, actor entities.Actor, p request.LoteRequest) ([]entities.Removal, error) {
		return h.usecase.CloseLote(ctx, actor, p.TrimmedCodes())
	})
}

func (h *BillingLoteHandler) apply(c *gin.Context, call func(ctx context.Context, actor entities.Actor, p request.LoteRequest) ([]entities.Removal, error)) {
	var payload request.LoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	removals, err := call(c.Request.Context(), actorFrom(c), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRemovals(removals))
}
