package handler

import (
	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/service"
	"rapid-pay-api/internal/utils"
)

// CheckoutHandler serves the customer-facing gateway form.
type CheckoutHandler struct {
	settings service.SettingsLoader
	svc      *service.CheckoutService
}

func NewCheckoutHandler(settings service.SettingsLoader, svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{settings: settings, svc: svc}
}

// Fields lists the enabled methods with their receiving numbers.
func (h *CheckoutHandler) Fields(c *gin.Context) {
	st, err := h.settings.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, h.svc.PaymentFields(st))
}

// Submit places the order on hold once the payment details pass validation.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req dto.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.BindingError(err))
		return
	}
	st, err := h.settings.Load(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), st, req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}
