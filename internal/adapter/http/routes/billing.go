package routes

import (
	"cremacao_pet/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathLotes  = "/lotes"
	PathPrices = "/prices"
)

func addBillingRoutes(rg *gin.RouterGroup, lotes *handlers.BillingLoteHandler) {
	group := rg.Group(PathLotes)
	{
		group.GET("", lotes.ListByClinic)
		group.POST("/boleto", lotes.IssueBoleto)
		group.POST("/payment", lotes.ConfirmPayment)
		group.POST("/close", lotes.Close)
	}
}

func addPriceRoutes(rg *gin.RouterGroup, prices *handlers.PriceTableHandler) {
	group := rg.Group(PathPrices)
	{
		group.GET("", prices.Get)
		group.GET("/gaps", prices.Gaps)
		group.GET("/lookup", prices.Lookup)
		group.PUT("/cells", prices.SetPrice)
		group.POST("/brackets", prices.AddBracket)
		group.POST("/brackets/remove", prices.RemoveBracket)
		group.PUT("/modalities", prices.SetModalityActive)
	}
}
