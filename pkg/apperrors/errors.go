package apperrors

import (
	"fmt"
	"net/http"
)

// Kind classifies an application error. Every service operation either
// succeeds or fails with exactly one kind.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindAuth              Kind = "auth"
	KindCoupon            Kind = "coupon"
	KindInvalidTransition Kind = "invalid_transition"
	KindInternal          Kind = "internal"
)

// CouponReason is the specific cause of a coupon validity failure.
type CouponReason string

const (
	CouponInactive     CouponReason = "Inactive"
	CouponExpired      CouponReason = "Expired"
	CouponLimitReached CouponReason = "LimitReached"
	CouponAlreadyUsed  CouponReason = "AlreadyUsed"
	CouponBelowMinimum CouponReason = "BelowMinimum"
)

// Error is an application error with an HTTP status code. Internal storage
// errors are wrapped and never exposed verbatim to clients.
type Error struct {
	Kind         Kind         `json:"kind"`
	Code         int          `json:"code"`
	Message      string       `json:"message"`
	CouponReason CouponReason `json:"coupon_reason,omitempty"`
	Err          error        `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a schema or invariant violation.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: http.StatusBadRequest, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: http.StatusConflict, Message: message}
}

// NotFound reports an unknown id reference.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: http.StatusNotFound, Message: message}
}

// Forbidden reports a role or ownership mismatch.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: http.StatusForbidden, Message: message}
}

// Auth reports bad credentials or an invalid/expired token.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Code: http.StatusUnauthorized, Message: message}
}

// InvalidTransition reports an illegal order status change.
func InvalidTransition(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("cannot transition order from %s to %s", from, to),
	}
}

// Coupon reports a coupon validity failure with its reason code.
func Coupon(reason CouponReason) *Error {
	return &Error{
		Kind:         KindCoupon,
		Code:         http.StatusBadRequest,
		Message:      couponMessages[reason],
		CouponReason: reason,
	}
}

// Internal wraps an unexpected failure, typically from storage.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: http.StatusInternalServerError, Message: message, Err: err}
}

var couponMessages = map[CouponReason]string{
	CouponInactive:     "This coupon is not active",
	CouponExpired:      "This coupon has expired",
	CouponLimitReached: "This coupon has reached its usage limit",
	CouponAlreadyUsed:  "You have already used this coupon",
	CouponBelowMinimum: "Cart total is below the coupon's minimum purchase amount",
}
