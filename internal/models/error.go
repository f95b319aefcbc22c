package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConflictData        = errors.New("data conflicts with existing data")
	ErrDataNotFound        = errors.New("data not found")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrInvalidPhoneNumber  = errors.New("invalid phone number")
	ErrInvalidAccountInfo  = errors.New("invalid account details")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrNoPendingOrder      = errors.New("no pending order")
	ErrConfirmationTimeout = errors.New("payment confirmation timed out")
	ErrGatewaySubmit       = errors.New("gateway submission failed")
	ErrInternalError       = errors.New("internal error")
)

// ProtocolError is unexpected verification code from the gateway
type ProtocolError struct {
	Verification string
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("unexpected verification code %q", e.Verification)
}

// TooManyRequestsError is returned when the gateway throttles status checks
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// NewTooManyRequestsError creates TooManyRequestsError with retry delay
func NewTooManyRequestsError(d time.Duration) TooManyRequestsError {
	return TooManyRequestsError{RetryAfter: d}
}
