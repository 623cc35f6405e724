package handlers

import (
	"context"
	"net/http"
	"strings"

	request "cremacao_pet/internal/adapter/http/dto/request"
	response "cremacao_pet/internal/adapter/http/dto/response"
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/usecase"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RemovalHandler exposes the removal store and the transition engine.
//
// Every lifecycle operation has its own POST route under /removals/:id; the body carries the
// version the client last read.
type RemovalHandler struct {
	store       usecase.IRemovalStore
	transitions usecase.ITransitionUseCase
	logger      *zap.Logger
}

func NewRemovalHandler(store usecase.IRemovalStore, transitions usecase.ITransitionUseCase, logger *zap.Logger) *RemovalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemovalHandler{store: store, transitions: transitions, logger: logger.Named("removal_handler")}
}

func (h *RemovalHandler) Create(c *gin.Context) {
	var payload request.CreateRemovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	cmd, err := payload.ToCommand()
	if err != nil {
		respondInvalidPayload(c, err)
		return
	}
	created, err := h.store.Create(c.Request.Context(), actorFrom(c), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromRemoval(created))
}

// List filters by status, delivery date and creator. Clients only ever see their own removals;
// ?code= looks a single removal up by business code.
func (h *RemovalHandler) List(c *gin.Context) {
	actor := actorFrom(c)
	if code := strings.TrimSpace(c.Query("code")); code != "" {
		r, err := h.store.GetByCode(c.Request.Context(), code)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		if !visibleTo(actor, r) {
			respondError(c, h.logger, usecase.ErrRemovalNotFound)
			return
		}
		c.JSON(http.StatusOK, response.FromRemovals([]entities.Removal{r}))
		return
	}

	filter := interfaces.RemovalFilter{
		Status:                entities.RemovalStatus(strings.TrimSpace(c.Query("status"))),
		CreatedByID:           strings.TrimSpace(c.Query("created_by_id")),
		ScheduledDeliveryDate: strings.TrimSpace(c.Query("delivery_date")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		respondError(c, h.logger, usecase.ErrValidation)
		return
	}
	if actor.Role == entities.RoleCliente {
		filter.CreatedByID = actor.ID
	}
	removals, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRemovals(removals))
}

// Get answers 404 to a client asking for a removal someone else created.
func (h *RemovalHandler) Get(c *gin.Context) {
	r, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !visibleTo(actorFrom(c), r) {
		respondError(c, h.logger, usecase.ErrRemovalNotFound)
		return
	}
	c.JSON(http.StatusOK, response.FromRemoval(r))
}

// ownedByCaller guards the read-only routes that take a removal id. Only clients are restricted.
func (h *RemovalHandler) ownedByCaller(c *gin.Context, id string) bool {
	actor := actorFrom(c)
	if actor.Role != entities.RoleCliente {
		return true
	}
	r, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return false
	}
	if !visibleTo(actor, r) {
		respondError(c, h.logger, usecase.ErrRemovalNotFound)
		return false
	}
	return true
}

func visibleTo(actor entities.Actor, r entities.Removal) bool {
	return actor.Role != entities.RoleCliente || r.CreatedByID == actor.ID
}

func (h *RemovalHandler) AssignCode(c *gin.Context) {
	var payload request.AssignCodeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	updated, err := h.store.AssignCode(c.Request.Context(), actorFrom(c), c.Param("id"), strings.TrimSpace(payload.Code), payload.Version)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRemoval(updated))
}

func (h *RemovalHandler) AvailableActions(c *gin.Context) {
	id := c.Param("id")
	if !h.ownedByCaller(c, id) {
		return
	}
	ops, err := h.transitions.AvailableActions(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromActions(id, ops))
}

func (h *RemovalHandler) PreviewWeightDivergence(c *gin.Context) {
	if !h.ownedByCaller(c, c.Param("id")) {
		return
	}
	preview, err := h.transitions.PreviewWeightDivergence(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *RemovalHandler) PreviewModalityChange(c *gin.Context) {
	if !h.ownedByCaller(c, c.Param("id")) {
		return
	}
	to := entities.Modality(strings.TrimSpace(c.Query("modality")))
	preview, err := h.transitions.PreviewModalityChange(c.Request.Context(), c.Param("id"), to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

type transitionCall func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error)

type transitionWithWarningsCall func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, []usecase.StockWarning, error)

func (h *RemovalHandler) runTransition(c *gin.Context, call transitionCall) {
	updated, err := call(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRemoval(updated))
}

func (h *RemovalHandler) runTransitionWithWarnings(c *gin.Context, call transitionWithWarningsCall) {
	updated, warnings, err := call(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTransition(updated, warnings))
}

// versionOnly serves the operations whose body is just the version.
func (h *RemovalHandler) versionOnly(apply func(ctx context.Context, actor entities.Actor, id string, version int) (entities.Removal, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload request.VersionRequest
		if !bindOptionalJSON(c, &payload) {
			return
		}
		h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
			return apply(ctx, actor, id, payload.Version)
		})
	}
}

func (h *RemovalHandler) StartRoute(c *gin.Context) {
	h.versionOnly(h.transitions.StartRoute)(c)
}

func (h *RemovalHandler) SendToFinance(c *gin.Context) {
	h.versionOnly(h.transitions.SendToFinance)(c)
}

func (h *RemovalHandler) ApplyWeightAdjustment(c *gin.Context) {
	h.versionOnly(h.transitions.ApplyWeightAdjustment)(c)
}

func (h *RemovalHandler) AwaitPickup(c *gin.Context) {
	h.versionOnly(h.transitions.AwaitPickup)(c)
}

func (h *RemovalHandler) ConfirmDelivery(c *gin.Context) {
	h.versionOnly(h.transitions.ConfirmDelivery)(c)
}

func (h *RemovalHandler) DirectToDriver(c *gin.Context) {
	var payload request.DirectToDriverRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.DirectToDriver(ctx, actor, id, payload.Version, payload.ToCommand())
	})
}

func (h *RemovalHandler) Cancel(c *gin.Context) {
	var payload request.CancelRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.Cancel(ctx, actor, id, payload.Version, strings.TrimSpace(payload.Reason))
	})
}

func (h *RemovalHandler) ConfirmPickup(c *gin.Context) {
	var payload request.ConfirmPickupRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.ConfirmPickup(ctx, actor, id, payload.Version, strings.TrimSpace(payload.PetCondition))
	})
}

func (h *RemovalHandler) FinalizePickup(c *gin.Context) {
	var payload request.FinalizePickupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.FinalizePickup(ctx, actor, id, payload.Version, payload.ToCommand())
	})
}

func (h *RemovalHandler) SetCremationCompany(c *gin.Context) {
	var payload request.CremationCompanyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.SetCremationCompany(ctx, actor, id, payload.Version, payload.Company)
	})
}

func (h *RemovalHandler) AddCustomAdditionals(c *gin.Context) {
	var payload request.CustomAdditionalsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransitionWithWarnings(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, []usecase.StockWarning, error) {
		return h.transitions.AddCustomAdditionals(ctx, actor, id, payload.Version, payload.ToInputs())
	})
}

func (h *RemovalHandler) ChangeModality(c *gin.Context) {
	var payload request.ChangeModalityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.ChangeModality(ctx, actor, id, payload.Version, entities.Modality(strings.TrimSpace(payload.Modality)))
	})
}

func (h *RemovalHandler) RegisterDevolution(c *gin.Context) {
	var payload request.DevolutionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.RegisterDevolution(ctx, actor, id, payload.Version, payload.ToCommand())
	})
}

func (h *RemovalHandler) FinalizeForMaster(c *gin.Context) {
	var payload request.FinalizeForMasterRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.FinalizeForMaster(ctx, actor, id, payload.Version, usecase.FinalizeForMasterCommand{
			ApplyWeightDivergence: payload.ApplyWeightDivergence,
		})
	})
}

func (h *RemovalHandler) ReleaseForCremation(c *gin.Context) {
	var payload request.ReleaseForCremationRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.ReleaseForCremation(ctx, actor, id, payload.Version, payload.Confirmations)
	})
}

func (h *RemovalHandler) MarkCremated(c *gin.Context) {
	var payload request.MarkCrematedRequest
	if !bindOptionalJSON(c, &payload) {
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.MarkCremated(ctx, actor, id, payload.Version, payload.CremationDate)
	})
}

func (h *RemovalHandler) AssembleBag(c *gin.Context) {
	var payload request.AssembleBagRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransitionWithWarnings(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, []usecase.StockWarning, error) {
		return h.transitions.AssembleBag(ctx, actor, id, payload.Version, payload.ToBag())
	})
}

func (h *RemovalHandler) SchedulePickup(c *gin.Context) {
	var payload request.SchedulePickupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.SchedulePickup(ctx, actor, id, payload.Version, payload.ToCommand())
	})
}

func (h *RemovalHandler) ScheduleDelivery(c *gin.Context) {
	var payload request.ScheduleDeliveryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}
	h.runTransition(c, func(ctx context.Context, actor entities.Actor, id string) (entities.Removal, error) {
		return h.transitions.ScheduleDelivery(ctx, actor, id, payload.Version, payload.ToCommand())
	})
}
