package handler

import (
	"github.com/gin-gonic/gin"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/middleware"
)

// Routes bundles the handlers and guards mounted by RegisterRoutes.
type Routes struct {
	Checkout   *CheckoutHandler
	Orders     *AdminOrderHandler
	Analytics  *AnalyticsHandler
	Settings   *SettingsHandler
	Hooks      *HookHandler
	Health     *HealthHandler
	Authorizer middleware.CapabilityChecker
	HookSecret string
}

func RegisterRoutes(r *gin.Engine, rt Routes) {
	if rt.Health != nil {
		r.GET("/healthz", rt.Health.Check)
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/checkout/fields", rt.Checkout.Fields)
		v1.POST("/checkout", middleware.AuthHMAC(rt.HookSecret), rt.Checkout.Submit)

		v1.POST("/hooks/order-updated", middleware.AuthHMAC(rt.HookSecret), rt.Hooks.OrderUpdated)
	}

	admin := v1.Group("/admin", middleware.AdminAuth(rt.Authorizer, constant.CapabilityManagePayments))
	{
		admin.GET("/orders", rt.Orders.List)
		admin.POST("/orders/:id/status", rt.Orders.ChangeStatus)
		admin.GET("/analytics", rt.Analytics.Get)
		admin.GET("/settings", rt.Settings.Get)
		admin.PUT("/settings", rt.Settings.Save)
	}
}
