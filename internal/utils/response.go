package utils

import (
	"errors"
	"net/http"

	"rapid-pay-api/internal/constant"
)

// Response is the JSON envelope; Msg is Bangla, MsgEN English.
type Response struct {
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	MsgEN   string      `json:"msg_en,omitempty"`
	Field   string      `json:"field,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

func Success(data interface{}) Response {
	r := Error(constant.CodeSuccess)
	r.Data = data
	return r
}

// Error fills both messages from the constant table.
func Error(code int) Response {
	if info, exists := constant.GetErrorInfo(code); exists {
		return Response{
			Code:  code,
			Msg:   info.BN,
			MsgEN: info.EN,
		}
	}
	return Response{
		Code:  code,
		Msg:   "অজানা ত্রুটি",
		MsgEN: "Unknown error",
	}
}

func ErrorWithData(code int, data interface{}) Response {
	r := Error(code)
	r.Data = data
	return r
}

func ErrorWithTrace(code int, traceID string) Response {
	r := Error(code)
	r.TraceID = traceID
	return r
}

// FromError maps a service error onto an HTTP status and envelope. Storage
// causes are not exposed to the caller.
func FromError(err error, traceID string) (int, Response) {
	var ce constant.Error
	if !errors.As(err, &ce) {
		return http.StatusInternalServerError, ErrorWithTrace(constant.CodeSystemError, traceID)
	}
	r := ErrorWithTrace(ce.Code(), traceID)
	r.Field = ce.Field()
	if ce.Field() != "" && ce.Message() != "" {
		r.MsgEN = ce.Message()
	}
	return HTTPStatus(ce.Code()), r
}

// HTTPStatus groups codes by failure class.
func HTTPStatus(code int) int {
	switch code {
	case constant.CodeSuccess, constant.CodeOrderNotGateway:
		return http.StatusOK
	case constant.CodeOrderNotFound:
		return http.StatusNotFound
	case constant.CodeUnauthorized, constant.CodeSignatureError:
		return http.StatusUnauthorized
	case constant.CodeAccessDenied:
		return http.StatusForbidden
	case constant.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case constant.CodeConfigUpdateFail:
		return http.StatusInternalServerError
	}
	switch {
	case code >= 1100 && code < 1200:
		return http.StatusBadRequest
	case code >= 2000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
