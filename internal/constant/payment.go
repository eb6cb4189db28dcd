package constant

// PaymentMethod is one of the mobile financial services the gateway records.
type PaymentMethod string

const (
	MethodBkash  PaymentMethod = "bkash"
	MethodNagad  PaymentMethod = "nagad"
	MethodRocket PaymentMethod = "rocket"
	MethodUpay   PaymentMethod = "upay"
)

// AllMethods is the fixed enumeration in display order.
var AllMethods = []PaymentMethod{MethodBkash, MethodNagad, MethodRocket, MethodUpay}

var MethodLabels = map[PaymentMethod]string{
	MethodBkash:  "bKash",
	MethodNagad:  "Nagad",
	MethodRocket: "Rocket",
	MethodUpay:   "Upay",
}

func IsValidMethod(m string) bool {
	_, ok := MethodLabels[PaymentMethod(m)]
	return ok
}

// Order statuses share the host platform's vocabulary.
const (
	StatusPending   = "pending"
	StatusOnHold    = "on-hold"
	StatusCompleted = "completed"
	StatusRefunded  = "refunded"
	StatusCancelled = "cancelled"
)

// StatusFailed is a host-only status; the gateway never sets it but accepts
// payment for failed orders.
const StatusFailed = "failed"

var AllStatuses = []string{StatusPending, StatusOnHold, StatusCompleted, StatusRefunded, StatusCancelled}

func IsValidStatus(s string) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsPayableStatus reports whether a host order may still take a submission.
func IsPayableStatus(s string) bool {
	return s == StatusPending || s == StatusFailed
}

// Order meta keys written on the authoritative order at checkout.
const (
	MetaMethod        = "_rapid_pay_method"
	MetaSenderPhone   = "_rapid_pay_sender_phone"
	MetaTransactionID = "_rapid_pay_transaction_id"
)

// CapabilityManagePayments gates every admin operation.
const CapabilityManagePayments = "manage_payments"
