package routes

import (
	"cremacao_pet/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRemovals      = "/removals"
	PathBatches       = "/batches"
	PathStock         = "/stock"
	PathNotifications = "/notifications"
)

func addRemovalRoutes(rg *gin.RouterGroup, h *handlers.RemovalHandler) {
	removals := rg.Group(PathRemovals)
	{
		removals.POST("", h.Create)
		removals.GET("", h.List)
		removals.GET("/:id", h.Get)
		removals.PUT("/:id/code", h.AssignCode)
		removals.GET("/:id/actions", h.AvailableActions)
		removals.GET("/:id/preview/weight-divergence", h.PreviewWeightDivergence)
		removals.GET("/:id/preview/modality-change", h.PreviewModalityChange)

		removals.POST("/:id/direct-to-driver", h.DirectToDriver)
		removals.POST("/:id/schedule-pickup", h.SchedulePickup)
		removals.POST("/:id/cancel", h.Cancel)
		removals.POST("/:id/start-route", h.StartRoute)
		removals.POST("/:id/confirm-pickup", h.ConfirmPickup)
		removals.POST("/:id/finalize-pickup", h.FinalizePickup)
		removals.POST("/:id/send-to-finance", h.SendToFinance)

		removals.POST("/:id/cremation-company", h.SetCremationCompany)
		removals.POST("/:id/weight-adjustment", h.ApplyWeightAdjustment)
		removals.POST("/:id/custom-additionals", h.AddCustomAdditionals)
		removals.POST("/:id/change-modality", h.ChangeModality)
		removals.POST("/:id/devolution", h.RegisterDevolution)
		removals.POST("/:id/finalize-for-master", h.FinalizeForMaster)

		removals.POST("/:id/release-for-cremation", h.ReleaseForCremation)
		removals.POST("/:id/mark-cremated", h.MarkCremated)
		removals.POST("/:id/assemble-bag", h.AssembleBag)
		removals.POST("/:id/schedule-delivery", h.ScheduleDelivery)
		removals.POST("/:id/await-pickup", h.AwaitPickup)
		removals.POST("/:id/confirm-delivery", h.ConfirmDelivery)
	}
}

func addCremationRoutes(rg *gin.RouterGroup, batches *handlers.CremationBatchHandler, stock *handlers.StockHandler) {
	b := rg.Group(PathBatches)
	{
		b.POST("", batches.Create)
		b.GET("", batches.List)
		b.GET("/:id", batches.Get)
		b.POST("/:id/items", batches.AddItem)
		b.POST("/:id/start", batches.Start)
		b.POST("/:id/finish", batches.Finish)
	}

	s := rg.Group(PathStock)
	{
		s.POST("", stock.Create)
		s.GET("", stock.List)
		s.POST("/:name/restock", stock.Restock)
	}
}

func addNotificationRoutes(rg *gin.RouterGroup, h *handlers.NotificationHandler) {
	n := rg.Group(PathNotifications)
	{
		n.GET("", h.List)
		n.POST("/:id/read", h.MarkRead)
	}
}
