package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/middleware"
	"rapid-pay-api/internal/service"
	"rapid-pay-api/internal/utils"
	"rapid-pay-api/internal/utils/timeutil"
)

type AdminOrderHandler struct {
	records   service.RecordStore
	reconcile *service.ReconcileService
}

func NewAdminOrderHandler(records service.RecordStore, reconcile *service.ReconcileService) *AdminOrderHandler {
	return &AdminOrderHandler{records: records, reconcile: reconcile}
}

// List returns record rows newest first.
func (h *AdminOrderHandler) List(c *gin.Context) {
	var req dto.ListOrderRecordsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		fail(c, utils.BindingError(err))
		return
	}
	f, err := toRecordFilter(req)
	if err != nil {
		fail(c, err)
		return
	}

	rows, total, err := h.records.List(c.Request.Context(), f)
	if err != nil {
		fail(c, constant.Wrap(constant.CodeDatabaseError, err))
		return
	}
	items := make([]dto.OrderRecordVo, 0, len(rows))
	if err := copier.Copy(&items, &rows); err != nil {
		fail(c, constant.Wrap(constant.CodeInternalError, err))
		return
	}
	for i := range items {
		items[i].MethodLabel = constant.MethodLabels[constant.PaymentMethod(items[i].PaymentMethod)]
	}
	ok(c, dto.OrderRecordListResp{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset})
}

// ChangeStatus is the dashboard's status dropdown.
func (h *AdminOrderHandler) ChangeStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		fail(c, constant.NewFieldError(constant.CodeParamsFormatError, "id"))
		return
	}
	var req dto.ChangeStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, utils.BindingError(err))
		return
	}
	middleware.MarkAudit(c, "change_status", orderID, req.Status)

	if err := h.reconcile.ChangeStatus(c.Request.Context(), orderID, req.Status, service.DashboardStatusNote); err != nil {
		fail(c, err)
		return
	}
	ok(c, dto.ChangeStatusResp{OrderID: orderID, Status: req.Status})
}

func toRecordFilter(req dto.ListOrderRecordsReq) (dto.OrderRecordFilter, error) {
	f := dto.OrderRecordFilter{Status: req.Status, Limit: req.Limit, Offset: req.Offset}
	if f.Limit <= 0 {
		f.Limit = dto.DefaultListLimit
	}
	if f.Limit > dto.MaxListLimit {
		f.Limit = dto.MaxListLimit
	}
	if req.DateFrom != "" {
		d, err := timeutil.ParseDate(req.DateFrom)
		if err != nil {
			return f, constant.NewFieldError(constant.CodeParamsFormatError, "date_from")
		}
		start := timeutil.DayStart(d)
		f.From = &start
	}
	if req.DateTo != "" {
		d, err := timeutil.ParseDate(req.DateTo)
		if err != nil {
			return f, constant.NewFieldError(constant.CodeParamsFormatError, "date_to")
		}
		end := timeutil.DayRange(d).End
		f.To = &end
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, constant.NewFieldError(constant.CodeParamsRangeError, "date_from")
	}
	return f, nil
}
