package constant

// ErrorInfo holds the bilingual message for a code.
type ErrorInfo struct {
	BN string `json:"bn"` // Bangla message shown to customers and merchants
	EN string `json:"en"`
}

var ErrorMessages = map[int]ErrorInfo{
	CodeSuccess:            {"সফল হয়েছে", "Success"},
	CodeSystemError:        {"সিস্টেম ত্রুটি", "System error"},
	CodeDatabaseError:      {"ডাটাবেস ত্রুটি", "Database error"},
	CodeRedisError:         {"ক্যাশ ত্রুটি", "Cache error"},
	CodeInternalError:      {"অভ্যন্তরীণ ত্রুটি", "Internal error"},
	CodeServiceUnavailable: {"সেবা সাময়িকভাবে বন্ধ", "Service unavailable"},

	CodeInvalidParams:     {"অবৈধ অনুরোধ", "Invalid parameters"},
	CodeMissingParams:     {"প্রয়োজনীয় তথ্য নেই", "Missing parameters"},
	CodeParamsFormatError: {"তথ্যের বিন্যাস ভুল", "Invalid parameter format"},
	CodeParamsTypeError:   {"তথ্যের ধরন ভুল", "Invalid parameter type"},
	CodeParamsRangeError:  {"তথ্য সীমার বাইরে", "Parameter out of range"},

	CodeUnauthorized:   {"অনুমোদন প্রয়োজন", "Unauthorized"},
	CodeSignatureError: {"স্বাক্ষর যাচাই ব্যর্থ", "Signature verification failed"},
	CodeAccessDenied:   {"অনুমতি নেই", "Permission denied"},

	CodeOrderNotFound:      {"অর্ডার পাওয়া যায়নি", "Order not found"},
	CodeOrderStatusInvalid: {"অর্ডারের স্ট্যাটাস অবৈধ", "Invalid order status"},
	CodeOrderAmountInvalid: {"অর্ডারের পরিমাণ সীমার বাইরে", "Order amount out of bounds"},
	CodeOrderNotPayable:    {"এই অর্ডারের পেমেন্ট আর জমা দেওয়া যাবে না", "Order is not awaiting payment"},
	CodeOrderNotGateway:    {"এই অর্ডারটি Rapid Pay এর নয়", "Order not paid through Rapid Pay"},

	CodePaymentMethodError:   {"অনুগ্রহ করে একটি পেমেন্ট পদ্ধতি নির্বাচন করুন", "Please select a valid payment method."},
	CodeSenderPhoneInvalid:   {"সঠিক মোবাইল নম্বর দিন (যেমন 01712345678)", "Please enter a valid mobile number (e.g., 01712345678)."},
	CodeTransactionIDInvalid: {"ট্রানজেকশন আইডি কমপক্ষে ৫ অক্ষরের হতে হবে", "Transaction ID must be at least 5 characters long."},

	CodeConfigInvalid:    {"সেটিংস অবৈধ", "Invalid settings"},
	CodeConfigUpdateFail: {"সেটিংস সংরক্ষণ ব্যর্থ", "Failed to save settings"},
}
