package handlers

import (
	"net/http"
	"strings"

	request "cremacao_pet/internal/adapter/http/dto/request"
	response "cremacao_pet/internal/adapter/http/dto/response"
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PriceTableHandler struct {
	usecase usecase.IPriceTableUseCase
	logger  *zap.Logger
}

func NewPriceTableHandler(uc usecase.IPriceTableUseCase, logger *zap.Logger) *PriceTableHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceTableHandler{usecase: uc, logger: logger.Named("price_handler")}
}

func (h *PriceTableHandler) Get(c *gin.Context) {
	t, err := h.usecase.GetTable(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPriceTable(t))
}

func (h *PriceTableHandler) Gaps(c *gin.Context) {
	gaps, err := h.usecase.Gaps(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if gaps == nil {
		gaps = []entities.PriceCell{}
	}
	c.JSON(http.StatusOK, gaps)
}

// Lookup answers one price query from the address, species and payment method of a removal form.
func (h *PriceTableHandler) Lookup(c *gin.Context) {
	address := entities.Address{City: c.Query("city"), State: c.Query("state")}
	lookup, err := h.usecase.Resolve(
		c.Request.Context(),
		address,
		c.Query("species"),
		c.Query("payment_method"),
		strings.TrimSpace(c.Query("weight_bracket")),
		entities.Modality(strings.TrimSpace(c.Query("modality"))),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, lookup)
}

func (h *PriceTableHandler) SetPrice(c *gin.Context) {
	var payload request.PriceCellRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.respondTable(c)(h.usecase.SetPrice(c.Request.Context(), actorFrom(c), payload.ToCell()))
}

func (h *PriceTableHandler) AddBracket(c *gin.Context) {
	var payload request.PriceCellRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.respondTable(c)(h.usecase.AddBracket(c.Request.Context(), actorFrom(c), payload.ToCell()))
}

func (h *PriceTableHandler) RemoveBracket(c *gin.Context) {
	var payload request.PriceCellRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.respondTable(c)(h.usecase.RemoveBracket(c.Request.Context(), actorFrom(c), payload.ToCell()))
}

func (h *PriceTableHandler) SetModalityActive(c *gin.Context) {
	var payload request.ModalityActiveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	modality := entities.Modality(strings.TrimSpace(payload.Modality))
	h.respondTable(c)(h.usecase.SetModalityActive(c.Request.Context(), actorFrom(c), modality, payload.Active))
}

func (h *PriceTableHandler) respondTable(c *gin.Context) func(entities.PriceTable, error) {
	return func(t entities.PriceTable, err error) {
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, response.FromPriceTable(t))
	}
}
