package handlers

import (
	"errors"
	"net/http"

	request "cremacao_pet/internal/adapter/http/dto/request"
	response "cremacao_pet/internal/adapter/http/dto/response"
	"cremacao_pet/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CremationBatchHandler struct {
	usecase usecase.ICremationBatchUseCase
	logger  *zap.Logger
}

func NewCremationBatchHandler(uc usecase.ICremationBatchUseCase, logger *zap.Logger) *CremationBatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CremationBatchHandler{usecase: uc, logger: logger.Named("batch_handler")}
}

func (h *CremationBatchHandler) Create(c *gin.Context) {
	var payload request.CreateBatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	items := payload.ToItems()
	batch, err := h.usecase.CreateBatch(c.Request.Context(), actorFrom(c), items, payload.OperatorName)
	if err != nil && batch.ID != "" && errors.Is(err, usecase.ErrBatchCapacity) {
		c.JSON(http.StatusCreated, response.FromPartialBatch(batch, items[len(batch.Items):], mapError(err)))
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromBatch(batch))
}

func (h *CremationBatchHandler) AddItem(c *gin.Context) {
	var payload request.BatchItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	batch, err := h.usecase.AddBatchItem(c.Request.Context(), actorFrom(c), c.Param("id"), payload.ToItem())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBatch(batch))
}

func (h *CremationBatchHandler) List(c *gin.Context) {
	batches, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBatches(batches))
}

func (h *CremationBatchHandler) Get(c *gin.Context) {
	batch, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBatch(batch))
}

func (h *CremationBatchHandler) Start(c *gin.Context) {
	var payload request.BatchOperatorRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	batch, err := h.usecase.StartBatch(c.Request.Context(), actorFrom(c), c.Param("id"), payload.OperatorName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBatch(batch))
}

func (h *CremationBatchHandler) Finish(c *gin.Context) {
	var payload request.BatchOperatorRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	batch, err := h.usecase.FinishBatch(c.Request.Context(), actorFrom(c), c.Param("id"), payload.OperatorName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBatch(batch))
}
