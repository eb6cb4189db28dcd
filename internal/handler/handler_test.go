package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rapid-pay-api/internal/cart"
	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dal/daltest"
	"rapid-pay-api/internal/dao"
	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/logger"
	"rapid-pay-api/internal/middleware"
	ordermodel "rapid-pay-api/internal/model/order"
	"rapid-pay-api/internal/service"
	"rapid-pay-api/internal/system"
	"rapid-pay-api/internal/utils"
)

const (
	adminToken = "dashboard-token-1234"
	hookSecret = "hook-secret"
)

type envelope struct {
	Code    int             `json:"code"`
	MsgEN   string          `json:"msg_en"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
	TraceID string          `json:"trace_id"`
}

type testServer struct {
	db     *gorm.DB
	engine *gin.Engine
	orders *dao.HostOrderDao
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.UseWireFieldNames()

	db := daltest.OpenDB(t)
	_, rdb := daltest.OpenRedis(t)

	orders := dao.NewHostOrderDao(db)
	records := dao.NewOrderRecordDaoWithDB(db)
	settings := system.NewSettingsStore(dao.NewSysConfigDao(db), rdb, "BDT", time.Minute)
	reconcile := service.NewReconcileService(orders, records, nil)
	checkout := service.NewCheckoutService(orders, cart.NewRedisCart(rdb, orders), reconcile, nil)

	r := gin.New()
	r.Use(middleware.Recover(), middleware.TraceAudit(logger.NewSyncAuditWriter(dao.NewAuditLogDao(db))))
	RegisterRoutes(r, Routes{
		Checkout:   NewCheckoutHandler(settings, checkout),
		Orders:     NewAdminOrderHandler(records, reconcile),
		Analytics:  NewAnalyticsHandler(service.NewAnalyticsService(dao.NewAnalyticsDao(db))),
		Settings:   NewSettingsHandler(settings),
		Hooks:      NewHookHandler(reconcile),
		Health:     NewHealthHandler(db, rdb),
		Authorizer: service.NewTokenAuthorizer(map[string][]string{adminToken: {constant.CapabilityManagePayments}, "viewer": {"view_reports"}}),
		HookSecret: hookSecret,
	})
	return &testServer{db: db, engine: r, orders: orders}
}

func (s *testServer) createOrder(t *testing.T, total string) uint64 {
	t.Helper()
	o := ordermodel.HostOrder{
		BillingFirstName: "Rahim",
		BillingLastName:  "Uddin",
		BillingPhone:     "01911111111",
		Total:            decimal.RequireFromString(total),
		Currency:         "BDT",
		Status:           constant.StatusPending,
	}
	if err := s.db.Create(&o).Error; err != nil {
		t.Fatalf("create host order: %v", err)
	}
	return o.ID
}

func (s *testServer) do(t *testing.T, method, path string, body any, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

// checkout posts a submission signed the way the host storefront signs it.
func (s *testServer) checkout(t *testing.T, body gin.H) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return s.do(t, http.MethodPost, "/api/v1/checkout", body,
		map[string]string{middleware.SignatureHeader: utils.SignBody(raw, hookSecret)})
}

func admin() map[string]string {
	return map[string]string{"Authorization": "Bearer " + adminToken}
}

func TestCheckoutThenCompleteFromDashboard(t *testing.T) {
	s := newTestServer(t)
	id := s.createOrder(t, "500")

	w, env := s.checkout(t, gin.H{
		"order_id":                 id,
		"rapid_pay_method":         "bkash",
		"rapid_pay_sender_phone":   " 01712345678 ",
		"rapid_pay_transaction_id": "TRX12345",
	})
	if w.Code != http.StatusOK || env.Code != constant.CodeSuccess {
		t.Fatalf("checkout failed: %d %s", w.Code, w.Body.String())
	}
	if env.TraceID == "" || w.Header().Get(middleware.TraceHeader) != env.TraceID {
		t.Fatalf("trace id not propagated: body=%q header=%q", env.TraceID, w.Header().Get(middleware.TraceHeader))
	}
	var co dto.CheckoutResp
	_ = json.Unmarshal(env.Data, &co)
	if co.Status != constant.StatusOnHold || co.SenderPhone != "01712345678" || co.MethodLabel != "bKash" {
		t.Fatalf("unexpected checkout response: %+v", co)
	}

	_, env = s.do(t, http.MethodGet, "/api/v1/admin/orders?status=on-hold", nil, admin())
	var list dto.OrderRecordListResp
	_ = json.Unmarshal(env.Data, &list)
	if list.Total != 1 || len(list.Items) != 1 || list.Items[0].OrderID != id || list.Items[0].MethodLabel != "bKash" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list.Limit != dto.DefaultListLimit {
		t.Fatalf("expected default limit, got %d", list.Limit)
	}

	w, env = s.do(t, http.MethodPost, "/api/v1/admin/orders/"+itoa(id)+"/status",
		gin.H{"status": constant.StatusCompleted}, admin())
	if w.Code != http.StatusOK {
		t.Fatalf("change status failed: %d %s", w.Code, w.Body.String())
	}

	_, env = s.do(t, http.MethodGet, "/api/v1/admin/analytics", nil, admin())
	var d dto.Dashboard
	_ = json.Unmarshal(env.Data, &d)
	if !d.Totals.AllTime.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected all-time 500, got %s", d.Totals.AllTime)
	}
	if len(d.Series) != service.DashboardSeriesDays {
		t.Fatalf("expected %d series points, got %d", service.DashboardSeriesDays, len(d.Series))
	}

	notes, _ := s.orders.Notes(context.Background(), id)
	found := false
	for _, n := range notes {
		if n.Note == service.DashboardStatusNote {
			found = true
		}
	}
	if !found {
		t.Fatalf("dashboard note missing: %+v", notes)
	}

	audits, err := dao.NewAuditLogDao(s.db).ListByOrder(context.Background(), id)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(audits) != 1 || audits[0].Action != "change_status" || audits[0].OrderID != id || audits[0].Status != constant.StatusCompleted {
		t.Fatalf("expected one change_status audit row, got %+v", audits)
	}
	if audits[0].Actor != "***1234" {
		t.Fatalf("actor should be a token hint, got %q", audits[0].Actor)
	}
}

func TestCheckoutRequiresSignature(t *testing.T) {
	s := newTestServer(t)
	id := s.createOrder(t, "500")
	body := gin.H{
		"order_id":                 id,
		"rapid_pay_method":         "bkash",
		"rapid_pay_sender_phone":   "01712345678",
		"rapid_pay_transaction_id": "TRX12345",
	}

	w, _ := s.do(t, http.MethodPost, "/api/v1/checkout", body, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unsigned checkout accepted: %d %s", w.Code, w.Body.String())
	}
	w, _ = s.do(t, http.MethodPost, "/api/v1/checkout", body, map[string]string{middleware.SignatureHeader: utils.SignBody([]byte("{}"), hookSecret)})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("mismatched signature accepted: %d %s", w.Code, w.Body.String())
	}
	o, _ := s.orders.Get(context.Background(), id)
	if o.Status != constant.StatusPending {
		t.Fatalf("rejected checkout changed order status to %s", o.Status)
	}
}

func TestCompletedOrderCannotBeResubmitted(t *testing.T) {
	s := newTestServer(t)
	id := s.createOrder(t, "500")
	submit := func(trx string) (*httptest.ResponseRecorder, envelope) {
		return s.checkout(t, gin.H{
			"order_id":                 id,
			"rapid_pay_method":         "bkash",
			"rapid_pay_sender_phone":   "01712345678",
			"rapid_pay_transaction_id": trx,
		})
	}

	if w, _ := submit("TRX12345"); w.Code != http.StatusOK {
		t.Fatalf("first submit failed: %d %s", w.Code, w.Body.String())
	}
	if w, _ := s.do(t, http.MethodPost, "/api/v1/admin/orders/"+itoa(id)+"/status",
		gin.H{"status": constant.StatusCompleted}, admin()); w.Code != http.StatusOK {
		t.Fatalf("complete failed: %d %s", w.Code, w.Body.String())
	}

	w, env := submit("FORGED99")
	if w.Code != http.StatusBadRequest || env.Code != constant.CodeOrderNotPayable {
		t.Fatalf("resubmission not rejected: %d %s", w.Code, w.Body.String())
	}

	var rec ordermodel.OrderRecord
	if err := s.db.Where("order_id = ?", id).First(&rec).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if rec.Status != constant.StatusCompleted || rec.TransactionID != "TRX12345" {
		t.Fatalf("record rewritten by resubmission: %+v", rec)
	}
	_, env = s.do(t, http.MethodGet, "/api/v1/admin/analytics", nil, admin())
	var d dto.Dashboard
	_ = json.Unmarshal(env.Data, &d)
	if !d.Totals.AllTime.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("completed earnings lost: %s", d.Totals.AllTime)
	}
}

func TestCheckoutReportsFirstFailingField(t *testing.T) {
	s := newTestServer(t)
	id := s.createOrder(t, "500")

	w, env := s.checkout(t, gin.H{
		"order_id":                 id,
		"rapid_pay_method":         "bkash",
		"rapid_pay_sender_phone":   "0171234",
		"rapid_pay_transaction_id": "TRX",
	})
	if w.Code != http.StatusBadRequest || env.Code != constant.CodeSenderPhoneInvalid || env.Field != "sender_phone" {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}

	var n int64
	s.db.Model(&ordermodel.OrderRecord{}).Count(&n)
	if n != 0 {
		t.Fatalf("invalid submission wrote %d records", n)
	}
}

func TestCheckoutBindingError(t *testing.T) {
	s := newTestServer(t)
	w, env := s.checkout(t, gin.H{"rapid_pay_method": "bkash"})
	if w.Code != http.StatusBadRequest || env.Code != constant.CodeMissingParams || env.Field != "order_id" {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}

func TestCheckoutUnknownOrder(t *testing.T) {
	s := newTestServer(t)
	w, env := s.checkout(t, gin.H{
		"order_id":                 9999,
		"rapid_pay_method":         "bkash",
		"rapid_pay_sender_phone":   "01712345678",
		"rapid_pay_transaction_id": "TRX12345",
	})
	if w.Code != http.StatusNotFound || env.Code != constant.CodeOrderNotFound {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}

func TestPaymentFieldsFollowSettings(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPut, "/api/v1/admin/settings", gin.H{
		"enabledMethods":  []string{"nagad"},
		"adminPhones":     gin.H{"nagad": "01999999999"},
		"autoExpireHours": 500,
	}, admin())
	if w.Code != http.StatusOK {
		t.Fatalf("save settings failed: %d %s", w.Code, w.Body.String())
	}

	_, env := s.do(t, http.MethodGet, "/api/v1/admin/settings", nil, admin())
	var st dto.Settings
	_ = json.Unmarshal(env.Data, &st)
	if st.AutoExpireHours != dto.MaxAutoExpireHours {
		t.Fatalf("expected hours clamped to %d, got %d", dto.MaxAutoExpireHours, st.AutoExpireHours)
	}

	_, env = s.do(t, http.MethodGet, "/api/v1/checkout/fields", nil, nil)
	var fields dto.PaymentFieldsResp
	_ = json.Unmarshal(env.Data, &fields)
	if len(fields.Methods) != 1 || fields.Methods[0].Method != "nagad" || fields.Methods[0].AdminPhone != "01999999999" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestSaveSettingsRejectsUnknownMethod(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodPut, "/api/v1/admin/settings", gin.H{"enabledMethods": []string{"paypal"}}, admin())
	if w.Code != http.StatusBadRequest || env.Code != constant.CodeParamsFormatError {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutesRequireCapability(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		name   string
		header map[string]string
	}{
		{"missing token", nil},
		{"unknown token", map[string]string{"Authorization": "Bearer nope"}},
		{"wrong capability", map[string]string{"Authorization": "Bearer viewer"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodGet, "/api/v1/admin/orders", nil, tc.header)
			if w.Code != http.StatusForbidden || env.Code != constant.CodeAccessDenied {
				t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
			}
		})
	}

	var n int64
	s.db.Model(&ordermodel.AuditLog{}).Where("action = ?", "access_denied").Count(&n)
	if n != int64(len(cases)) {
		t.Fatalf("expected %d denied audit rows, got %d", len(cases), n)
	}
}

func TestChangeStatusErrors(t *testing.T) {
	s := newTestServer(t)
	id := s.createOrder(t, "100")

	w, env := s.do(t, http.MethodPost, "/api/v1/admin/orders/424242/status", gin.H{"status": "cancelled"}, admin())
	if w.Code != http.StatusNotFound || env.Code != constant.CodeOrderNotFound {
		t.Fatalf("unknown order: %d %s", w.Code, w.Body.String())
	}

	w, env = s.do(t, http.MethodPost, "/api/v1/admin/orders/"+itoa(id)+"/status", gin.H{"status": "shipped"}, admin())
	if w.Code != http.StatusBadRequest || env.Code != constant.CodeOrderStatusInvalid {
		t.Fatalf("invalid status: %d %s", w.Code, w.Body.String())
	}

	w, env = s.do(t, http.MethodPost, "/api/v1/admin/orders/abc/status", gin.H{"status": "cancelled"}, admin())
	if w.Code != http.StatusBadRequest || env.Field != "id" {
		t.Fatalf("bad id: %d %s", w.Code, w.Body.String())
	}
}

func TestListRejectsBadDates(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/api/v1/admin/orders?date_from=2024-02-01&date_to=2024-01-01", nil, admin())
	if w.Code != http.StatusBadRequest || env.Code != constant.CodeParamsRangeError {
		t.Fatalf("inverted range: %d %s", w.Code, w.Body.String())
	}
	w, _ = s.do(t, http.MethodGet, "/api/v1/admin/orders?date_from=01/02/2024", nil, admin())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed date: %d %s", w.Code, w.Body.String())
	}
}

func TestCustomRangeAnalytics(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/api/v1/admin/analytics?period=custom&date_from=2024-01-01&date_to=2024-01-31", nil, admin())
	if w.Code != http.StatusOK {
		t.Fatalf("custom range failed: %d %s", w.Code, w.Body.String())
	}
	var rt dto.RangeTotals
	_ = json.Unmarshal(env.Data, &rt)
	if rt.DateFrom != "2024-01-01" || rt.DateTo != "2024-01-31" || !rt.Earnings.IsZero() || rt.Orders != 0 {
		t.Fatalf("unexpected totals: %+v", rt)
	}
}

func TestOrderUpdatedHook(t *testing.T) {
	s := newTestServer(t)
	id := s.createOrder(t, "750")

	body, _ := json.Marshal(gin.H{"order_id": id})
	sign := func(b []byte) map[string]string {
		return map[string]string{middleware.SignatureHeader: utils.SignBody(b, hookSecret)}
	}

	w, _ := s.do(t, http.MethodPost, "/api/v1/hooks/order-updated", gin.H{"order_id": id}, map[string]string{middleware.SignatureHeader: "deadbeef"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad signature accepted: %d", w.Code)
	}

	w, env := s.do(t, http.MethodPost, "/api/v1/hooks/order-updated", gin.H{"order_id": id}, sign(body))
	if w.Code != http.StatusOK || !bytes.Contains(env.Data, []byte(`"synced":false`)) {
		t.Fatalf("non-gateway order should be skipped: %d %s", w.Code, w.Body.String())
	}

	if err := s.orders.AttachMetadata(context.Background(), id, map[string]string{
		constant.MetaMethod:        "rocket",
		constant.MetaSenderPhone:   "01712345678",
		constant.MetaTransactionID: "RKT99999",
	}); err != nil {
		t.Fatalf("attach meta: %v", err)
	}
	w, env = s.do(t, http.MethodPost, "/api/v1/hooks/order-updated", gin.H{"order_id": id}, sign(body))
	if w.Code != http.StatusOK || !bytes.Contains(env.Data, []byte(`"synced":true`)) {
		t.Fatalf("hook sync failed: %d %s", w.Code, w.Body.String())
	}
	var rec ordermodel.OrderRecord
	if err := s.db.Where("order_id = ?", id).First(&rec).Error; err != nil {
		t.Fatalf("record not written: %v", err)
	}
	if rec.PaymentMethod != "rocket" || !rec.Amount.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/healthz", nil, nil)
	if w.Code != http.StatusOK || env.Code != constant.CodeSuccess {
		t.Fatalf("unexpected health: %d %s", w.Code, w.Body.String())
	}
}

func itoa(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
