package handler

import (
	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/service"
	"rapid-pay-api/internal/utils"
)

type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Get returns custom range totals for period=custom with both dates, and the
// dashboard payload otherwise.
func (h *AnalyticsHandler) Get(c *gin.Context) {
	var req dto.AnalyticsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		fail(c, utils.BindingError(err))
		return
	}

	if req.Period == "custom" && req.DateFrom != "" && req.DateTo != "" {
		totals, err := h.svc.CustomRangeTotals(c.Request.Context(), req.DateFrom, req.DateTo)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, totals)
		return
	}

	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, d)
}
