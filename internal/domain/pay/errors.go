package pay

import (
	"errors"
	"fmt"
)

// Kind classifies a payment failure. Validation kinds come from backend
// matching; the gateway kinds come from transport status mapping.
type Kind string

const (
	KindUnknownAccount        Kind = "unknown_account"
	KindDeclined              Kind = "declined"
	KindInvalidCardNumber     Kind = "invalid_card_number"
	KindInvalidExpirationDate Kind = "invalid_expiration_date"
	KindInvalidCVC            Kind = "invalid_cvc"
	KindInvalidAddress        Kind = "invalid_address"
	KindConfiguration         Kind = "configuration"

	KindBadRequest        Kind = "bad_request"
	KindUnauthorized      Kind = "unauthorized"
	KindCardError         Kind = "card_error"
	KindNotFound          Kind = "not_found"
	KindServerUnavailable Kind = "server_unavailable"
)

// Error is the single error type raised by backends. It carries enough
// context (operation, offending account) to reconstruct which path was
// evaluated.
type Error struct {
	Kind    Kind
	Op      string
	Account Account
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if !e.Account.IsEmpty() {
		msg += " (" + e.Account.String() + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or "" if err carries none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
