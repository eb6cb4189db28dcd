package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/notify"
	"rapid-pay-api/internal/utils"
)

const (
	AwaitingVerificationNote = "Awaiting payment verification."
	ThankYouInstructions     = "Thank you for your order. Your payment is being verified."
)

// CheckoutService handles the gateway form: field metadata for rendering and
// the authoritative submission check.
type CheckoutService struct {
	orders    OrderSystem
	cart      CartSystem
	reconcile *ReconcileService
	notifier  Notifier
}

func NewCheckoutService(orders OrderSystem, cart CartSystem, reconcile *ReconcileService, notifier Notifier) *CheckoutService {
	return &CheckoutService{orders: orders, cart: cart, reconcile: reconcile, notifier: notifier}
}

// ValidateSubmission checks the form in field order and reports the first
// failure. Nothing is written.
func ValidateSubmission(st dto.Settings, method, senderPhone, trxID string, total decimal.Decimal) error {
	method = utils.NormalizeField(method)
	if method == "" || !constant.IsValidMethod(method) || !st.MethodEnabled(method) {
		return constant.NewFieldError(constant.CodePaymentMethodError, "payment_method")
	}
	if !utils.IsValidSenderPhone(senderPhone) {
		return constant.NewFieldError(constant.CodeSenderPhoneInvalid, "sender_phone")
	}
	if !utils.IsValidTransactionID(trxID) {
		return constant.NewFieldError(constant.CodeTransactionIDInvalid, "transaction_id")
	}
	if !utils.WithinBounds(total, st.MinAmount, st.MaxAmount) {
		return constant.NewFieldErrorMsg(constant.CodeOrderAmountInvalid, "amount", amountBoundsMessage(st))
	}
	return nil
}

func amountBoundsMessage(st dto.Settings) string {
	switch {
	case st.MinAmount.IsPositive() && st.MaxAmount.IsPositive():
		return fmt.Sprintf("Order amount must be between %s and %s.", st.MinAmount.StringFixed(2), st.MaxAmount.StringFixed(2))
	case st.MinAmount.IsPositive():
		return fmt.Sprintf("Minimum order amount is %s.", st.MinAmount.StringFixed(2))
	default:
		return fmt.Sprintf("Maximum order amount is %s.", st.MaxAmount.StringFixed(2))
	}
}

// PaymentFields lists the enabled methods in display order.
func (s *CheckoutService) PaymentFields(st dto.Settings) dto.PaymentFieldsResp {
	out := dto.PaymentFieldsResp{
		Methods:         make([]dto.PaymentMethodVo, 0, len(st.EnabledMethods)),
		InstructionText: st.InstructionText,
		Currency:        st.Currency,
		MinAmount:       st.MinAmount,
		MaxAmount:       st.MaxAmount,
	}
	for _, m := range constant.AllMethods {
		if !st.MethodEnabled(string(m)) {
			continue
		}
		out.Methods = append(out.Methods, dto.PaymentMethodVo{
			Method:     string(m),
			Label:      constant.MethodLabels[m],
			AdminPhone: st.AdminPhones[m],
		})
	}
	return out
}

// Submit validates the form, records the payment details on the host order,
// parks it on-hold and mirrors it into the record table.
func (s *CheckoutService) Submit(ctx context.Context, st dto.Settings, req dto.CheckoutReq) (dto.CheckoutResp, error) {
	var resp dto.CheckoutResp

	o, err := s.orders.Get(ctx, req.OrderID)
	if err != nil {
		return resp, constant.Wrap(constant.CodeDatabaseError, err)
	}
	if o == nil {
		return resp, constant.NewError(constant.CodeOrderNotFound)
	}
	if !constant.IsPayableStatus(o.Status) {
		log.Printf("[Checkout] order %d rejected: status %s is not payable", req.OrderID, o.Status)
		return resp, constant.NewFieldError(constant.CodeOrderNotPayable, "order_id")
	}

	if err := ValidateSubmission(st, req.PaymentMethod, req.SenderPhone, req.TransactionID, o.Total); err != nil {
		return resp, err
	}
	method := utils.NormalizeField(req.PaymentMethod)
	phone := utils.NormalizeField(req.SenderPhone)
	trxID := utils.NormalizeField(req.TransactionID)

	if err := s.orders.AttachMetadata(ctx, req.OrderID, map[string]string{
		constant.MetaMethod:        method,
		constant.MetaSenderPhone:   phone,
		constant.MetaTransactionID: trxID,
	}); err != nil {
		return resp, constant.Wrap(constant.CodeDatabaseError, err)
	}
	if err := s.orders.UpdateStatus(ctx, req.OrderID, constant.StatusOnHold, AwaitingVerificationNote); err != nil {
		return resp, constant.Wrap(constant.CodeDatabaseError, err)
	}
	note := fmt.Sprintf("Payment via %s. Sender: %s, TrxID: %s. Awaiting verification.", ucfirst(method), phone, trxID)
	if err := s.orders.AddNote(ctx, req.OrderID, note); err != nil {
		log.Printf("[Checkout] add note for order %d failed: %v", req.OrderID, err)
	}

	if _, err := s.reconcile.syncOrQueue(ctx, req.OrderID); err != nil {
		return resp, err
	}

	if s.cart != nil {
		if err := s.cart.ReduceStock(ctx, req.OrderID); err != nil {
			log.Printf("[Checkout] reduce stock for order %d failed: %v", req.OrderID, err)
		}
		if req.CartID != "" {
			if err := s.cart.EmptyCart(ctx, req.CartID); err != nil {
				log.Printf("[Checkout] empty cart %s failed: %v", req.CartID, err)
			}
		}
	}

	label := constant.MethodLabels[constant.PaymentMethod(method)]
	currency := o.Currency
	if currency == "" {
		currency = st.Currency
	}
	if s.notifier != nil {
		s.notifier.SendAsync(notify.SubmissionAlert(req.OrderID, label, phone, trxID, o.Total, currency))
	}

	resp = dto.CheckoutResp{
		OrderID:       req.OrderID,
		Status:        constant.StatusOnHold,
		PaymentMethod: method,
		MethodLabel:   label,
		SenderPhone:   phone,
		TransactionID: trxID,
		Amount:        o.Total,
		Currency:      currency,
		Instructions:  ThankYouInstructions,
	}
	return resp, nil
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
