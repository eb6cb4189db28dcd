package constant

// business errors (2xxx)

// order errors
const (
	CodeOrderNotFound      = 2100 // unknown order id
	CodeOrderStatusInvalid = 2102 // status outside the fixed enumeration
	CodeOrderAmountInvalid = 2103 // order total outside the configured bounds
	CodeOrderNotPayable    = 2104 // order is past the payment step
	CodeOrderNotGateway    = 2108 // order was not paid through this gateway
)

// checkout field errors
const (
	CodePaymentMethodError   = 2305 // method missing or not enabled
	CodeSenderPhoneInvalid   = 2310 // sender phone is not an 11 digit 01XXXXXXXXX number
	CodeTransactionIDInvalid = 2311 // transaction id shorter than 5 characters
)

// settings errors
const (
	CodeConfigInvalid    = 2901 // settings blob failed validation
	CodeConfigUpdateFail = 2902 // settings could not be saved
)
