package handlers

import (
	"net/http"

	request "cremacao_pet/internal/adapter/http/dto/request"
	response "cremacao_pet/internal/adapter/http/dto/response"
	"cremacao_pet/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StockHandler struct {
	usecase usecase.IStockUseCase
	logger  *zap.Logger
}

func NewStockHandler(uc usecase.IStockUseCase, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{usecase: uc, logger: logger.Named("stock_handler")}
}

func (h *StockHandler) Create(c *gin.Context) {
	var payload request.CreateStockItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	item, err := h.usecase.Create(c.Request.Context(), actorFrom(c), payload.ToEntity())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromStockItem(item))
}

func (h *StockHandler) List(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStockItems(items))
}

func (h *StockHandler) Restock(c *gin.Context) {
	var payload request.RestockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	item, err := h.usecase.Restock(c.Request.Context(), actorFrom(c), c.Param("name"), payload.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStockItem(item))
}
