package mock

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

var errSessionClosed = errors.New("session closed")

// Session resolves accounts through the caller-supplied resolver and mints
// random transaction identifiers. The mock holds no connection resources, so
// Close only marks the session unusable.
type Session struct {
	system   *System
	params   pay.ConnectionParams
	resolver pay.AccountResolver
	closed   bool
}

func newSession(system *System, params pay.ConnectionParams, resolver pay.AccountResolver) *Session {
	return &Session{
		system:   system,
		params:   params,
		resolver: resolver,
	}
}

func (s *Session) FetchAccountData(account pay.Account) (*pay.ActualAccountData, error) {
	if s.closed {
		return nil, errSessionClosed
	}
	actual, err := s.resolver.Resolve(account)
	if err != nil {
		return nil, err
	}
	if actual == nil {
		return nil, pay.ErrAccountNotFound
	}
	return actual, nil
}

func (s *Session) GenerateTransactionID(op pay.TransactionType) string {
	return fmt.Sprintf("%s-%s-%s", s.system.Name(), op, uuid.NewString())
}

func (s *Session) Close() error {
	s.closed = true
	return nil
}
