package utils

import (
	"errors"
	"net/http"
	"testing"

	"rapid-pay-api/internal/constant"
)

func TestFromErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{constant.NewFieldError(constant.CodeSenderPhoneInvalid, "sender_phone"), http.StatusBadRequest, constant.CodeSenderPhoneInvalid},
		{constant.NewError(constant.CodeOrderNotFound), http.StatusNotFound, constant.CodeOrderNotFound},
		{constant.NewFieldError(constant.CodeOrderStatusInvalid, "status"), http.StatusBadRequest, constant.CodeOrderStatusInvalid},
		{constant.NewError(constant.CodeAccessDenied), http.StatusForbidden, constant.CodeAccessDenied},
		{constant.Wrap(constant.CodeDatabaseError, errors.New("conn reset")), http.StatusInternalServerError, constant.CodeDatabaseError},
		{errors.New("boom"), http.StatusInternalServerError, constant.CodeSystemError},
	}
	for _, tc := range cases {
		status, resp := FromError(tc.err, "trace-1")
		if status != tc.status || resp.Code != tc.code || resp.TraceID != "trace-1" {
			t.Fatalf("%v: got %d/%d", tc.err, status, resp.Code)
		}
	}
}

func TestFromErrorCarriesFieldAndCustomMessage(t *testing.T) {
	_, resp := FromError(constant.NewFieldErrorMsg(constant.CodeOrderAmountInvalid, "amount", "Minimum order amount is 100.00."), "")
	if resp.Field != "amount" || resp.MsgEN != "Minimum order amount is 100.00." {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if resp.Msg == "" {
		t.Fatal("bangla message missing")
	}
}

func TestStorageCauseNotLeaked(t *testing.T) {
	_, resp := FromError(constant.Wrap(constant.CodeDatabaseError, errors.New("password=hunter2")), "")
	if resp.MsgEN != "Database error" {
		t.Fatalf("cause leaked into response: %q", resp.MsgEN)
	}
}
