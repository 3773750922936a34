package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nithin-ak/concert-fever/internal/app"
	"github.com/nithin-ak/concert-fever/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type stubPurchaser struct {
	result app.PurchaseResult
	err    error
	got    *app.PurchaseInput
}

func (s *stubPurchaser) Purchase(_ context.Context, in app.PurchaseInput) (app.PurchaseResult, error) {
	s.got = &in
	if s.err != nil {
		return app.PurchaseResult{}, s.err
	}
	return s.result, nil
}

func TestHandlePurchase(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	couponID := "coupon-1"
	validBody := `{
		"buyer_id": "user-1",
		"coupon_id": "coupon-1",
		"items": [
			{"event_id": "event-1", "category_label": "A", "final_price": "30.00"},
			{"event_id": "event-1", "category_label": "A", "final_price": "40.00"}
		]
	}`

	tests := []struct {
		name           string
		method         string
		body           string
		result         app.PurchaseResult
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:   "created",
			method: http.MethodPost,
			body:   validBody,
			result: app.PurchaseResult{
				Tickets: []domain.Ticket{
					{ID: "ticket-1", EventID: "event-1", CategoryLabel: "A", CouponID: &couponID, FinalPrice: dec("30.00"), PurchasedOn: now},
					{ID: "ticket-2", EventID: "event-1", CategoryLabel: "A", CouponID: &couponID, FinalPrice: dec("40.00"), PurchasedOn: now},
				},
				NewBalance: dec("30.00"),
			},
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"new_balance":"30.00"`,
		},
		{
			name:   "notification failure still created",
			method: http.MethodPost,
			body:   validBody,
			result: app.PurchaseResult{
				Tickets:    []domain.Ticket{{ID: "ticket-1", FinalPrice: dec("30.00"), PurchasedOn: now}},
				NewBalance: dec("70.00"),
				NotifyErr:  errors.New("smtp down"),
			},
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"notification_sent":false`,
		},
		{
			name:           "insufficient funds",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrInsufficientFunds,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeInsufficientFunds,
		},
		{
			name:           "sold out",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrSoldOut,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeSoldOut,
		},
		{
			name:           "unknown buyer",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: codeUserNotFound,
		},
		{
			name:           "unknown coupon",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrCouponNotFound,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: codeCouponNotFound,
		},
		{
			name:           "unknown category",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     domain.ErrCategoryNotFound,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: codeCategoryNotFound,
		},
		{
			name:           "invalid body",
			method:         http.MethodPost,
			body:           `{"buyer_id": }`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "empty items",
			method:         http.MethodPost,
			body:           `{"buyer_id": "user-1", "coupon_id": "coupon-1", "items": []}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeEmptyCart,
		},
		{
			name:           "missing buyer id",
			method:         http.MethodPost,
			body:           `{"buyer_id": "", "coupon_id": "coupon-1", "items": [{"event_id": "e", "category_label": "A", "final_price": "1.00"}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidID,
		},
		{
			name:           "negative price",
			method:         http.MethodPost,
			body:           `{"buyer_id": "user-1", "coupon_id": "coupon-1", "items": [{"event_id": "e", "category_label": "A", "final_price": "-1.00"}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidAmount,
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			body:           "",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "internal error",
			method:         http.MethodPost,
			body:           validBody,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: codeInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubPurchaser{result: tc.result, err: tc.serviceErr}
			handler := HandlePurchase(svc)

			req := httptest.NewRequest(tc.method, "/purchase", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tc.expectedStatus, rec.Code, rec.Body.String())
			}
			if tc.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tc.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tc.expectedSubstr, rec.Body.String())
			}
		})
	}

	t.Run("items are forwarded in order", func(t *testing.T) {
		svc := &stubPurchaser{result: app.PurchaseResult{NewBalance: dec("0.00")}}
		handler := HandlePurchase(svc)

		req := httptest.NewRequest(http.MethodPost, "/purchase", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if svc.got == nil {
			t.Fatalf("expected service to be called")
		}
		if len(svc.got.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(svc.got.Items))
		}
		if !svc.got.Items[0].FinalPrice.Equal(dec("30.00")) || !svc.got.Items[1].FinalPrice.Equal(dec("40.00")) {
			t.Fatalf("expected prices preserved in order, got %+v", svc.got.Items)
		}
	})
}
