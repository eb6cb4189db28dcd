package handler

import (
	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/middleware"
	"rapid-pay-api/internal/system"
	"rapid-pay-api/internal/utils"
)

type SettingsHandler struct {
	store *system.SettingsStore
}

func NewSettingsHandler(store *system.SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	st, err := h.store.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, st)
}

// Save replaces the whole settings blob.
func (h *SettingsHandler) Save(c *gin.Context) {
	var req dto.SaveSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.BindingError(err))
		return
	}
	middleware.MarkAudit(c, "save_settings", 0, "")

	saved, err := h.store.Save(c.Request.Context(), system.FromRequest(req), middleware.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, saved)
}
