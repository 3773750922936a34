package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeInvalidAmount      = "invalid_amount"
	codeInvalidQuantity    = "invalid_quantity"
	codeInvalidCategory    = "invalid_category"
	codeEmptyCart          = "empty_cart"
	codeUserNotFound       = "user_not_found"
	codeAccountNotFound    = "account_not_found"
	codeEventNotFound      = "event_not_found"
	codeCategoryNotFound   = "category_not_found"
	codeCouponNotFound     = "coupon_not_found"
	codeInsufficientFunds  = "insufficient_funds"
	codeSoldOut            = "sold_out"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
