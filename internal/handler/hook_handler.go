package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/service"
	"rapid-pay-api/internal/utils"
)

// HookHandler receives order change notifications from the host platform.
type HookHandler struct {
	reconcile *service.ReconcileService
}

func NewHookHandler(reconcile *service.ReconcileService) *HookHandler {
	return &HookHandler{reconcile: reconcile}
}

func (h *HookHandler) OrderUpdated(c *gin.Context) {
	var req dto.OrderUpdatedHook
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.BindingError(err))
		return
	}
	err := h.reconcile.SyncRecord(c.Request.Context(), req.OrderID)
	if constant.IsCode(err, constant.CodeOrderNotGateway) {
		log.Printf("[Hook] order %d skipped: not a gateway order", req.OrderID)
		ok(c, gin.H{"orderId": req.OrderID, "synced": false})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"orderId": req.OrderID, "synced": true})
}
