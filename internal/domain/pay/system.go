package pay

import (
	"context"
	"errors"
)

// ErrAccountNotFound is returned by resolvers and sessions when an Account
// has no stored instrument data.
var ErrAccountNotFound = errors.New("account data not found")

// ConnectionParams carries the per-session connection settings of a backend.
// Authorization is an opaque header value produced by the credential
// collaborator; backends never parse it.
type ConnectionParams struct {
	User          string
	Authorization string
}

// AccountResolver resolves an Account to its current instrument data. The
// caller supplies one per session through the SessionContext.
type AccountResolver interface {
	Resolve(account Account) (*ActualAccountData, error)
}

// SessionContext supplies request-scoped collaborators to StartSession.
type SessionContext struct {
	Resolver AccountResolver
}

// Session is a per-connection context owned by the caller that started it.
// Implementations may hold connection-level resources released by Close;
// callers serialize their own use of a single session.
type Session interface {
	// FetchAccountData resolves an Account through the session's context.
	// It returns ErrAccountNotFound when the account is unknown.
	FetchAccountData(account Account) (*ActualAccountData, error)

	// GenerateTransactionID mints an identifier unique within the owning
	// System instance. Uniqueness is the only contract, not ordering.
	GenerateTransactionID(op TransactionType) string

	Close() error
}

// System is the gateway contract every backend implements, real processor
// clients and the mock simulation engine alike. Every operation updates the
// instance's statistics on both the success and the failure path.
type System interface {
	Name() string

	Stats() *Statistics

	// StartSession opens a session with the given connection parameters.
	// It fails with a configuration-kind error when the parameters are
	// malformed.
	StartSession(params ConnectionParams, sctx *SessionContext) (Session, error)

	// Charge authorizes (and with capture set, captures) amount against
	// from's instrument, crediting to.
	Charge(ctx context.Context, session Session, from, to Account, amount Amount, capture bool, description string, extraData any) (*Transaction, error)

	// Transfer moves funds into to's account by validating its underlying
	// instrument; from may be EmptyAccount for inbound transfers.
	Transfer(ctx context.Context, session Session, from, to Account, amount Amount, description string, extraData any) (*Transaction, error)

	// Void cancels a prior uncaptured charge.
	Void(ctx context.Context, session Session, charge *Transaction, description string, extraData any) error

	// Capture settles a prior authorization, optionally partial.
	Capture(ctx context.Context, session Session, charge *Transaction, amount *Amount, description string, extraData any) error

	// Refund reverses a prior captured charge, optionally partial.
	Refund(ctx context.Context, session Session, charge *Transaction, amount *Amount, description string, extraData any) error
}
