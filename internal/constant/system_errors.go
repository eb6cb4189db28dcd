package constant

// system errors (1xxx)
const (
	CodeSuccess            = 0    // request handled
	CodeSystemError        = 1000 // unexpected server-side failure
	CodeDatabaseError      = 1001 // storage read/write failed
	CodeRedisError         = 1002 // cache unavailable
	CodeInternalError      = 1003 // unexpected business-logic failure
	CodeServiceUnavailable = 1004 // dependency down or maintenance
)

// request parameter errors
const (
	CodeInvalidParams     = 1100 // request body or query malformed
	CodeMissingParams     = 1101 // required field absent
	CodeParamsFormatError = 1102 // value has the wrong format (dates, numbers)
	CodeParamsTypeError   = 1103 // value has the wrong type
	CodeParamsRangeError  = 1104 // value outside the allowed range
)

// authentication / authorization errors
const (
	CodeUnauthorized   = 1200 // no credentials supplied
	CodeSignatureError = 1203 // hook signature mismatch
	CodeAccessDenied   = 1204 // caller lacks the required capability
)
