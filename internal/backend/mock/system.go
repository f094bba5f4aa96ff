// Package mock implements the simulation backend. It reproduces the
// accept/reject behavior of a real card/bank processor by classifying
// presented accounts against configured fixture pools, without network I/O.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

// Fixture pool names. Pool precedence during matching is fixed: an account
// number present in several pools is judged by the first pool that contains
// it, in the order the charge and transfer algorithms consult them.
const (
	PoolCreditCardCorrect         = "credit-card-correct"
	PoolCreditCardDeclined        = "credit-card-declined"
	PoolCreditCardLuhnError       = "credit-card-luhn-error"
	PoolCreditCardCvcError        = "credit-card-cvc-error"
	PoolCreditCardCorrectWithAddr = "credit-card-correct-with-addr"
	PoolDebitBankCorrect          = "debit-bank-correct"
	PoolDebitCardCorrect          = "debit-card-correct"
	PoolDebitCardCorrectWithAddr  = "debit-card-correct-with-addr"
)

// PoolNames lists every pool the engine loads, in configuration order.
var PoolNames = []string{
	PoolCreditCardCorrect,
	PoolCreditCardDeclined,
	PoolCreditCardLuhnError,
	PoolCreditCardCvcError,
	PoolCreditCardCorrectWithAddr,
	PoolDebitBankCorrect,
	PoolDebitCardCorrect,
	PoolDebitCardCorrectWithAddr,
}

// Pools holds the eight ordered fixture pools. Loaded once at construction
// and read-only afterwards.
type Pools struct {
	CreditCardCorrect         []pay.AccountData
	CreditCardDeclined        []pay.AccountData
	CreditCardLuhnError       []pay.AccountData
	CreditCardCvcError        []pay.AccountData
	CreditCardCorrectWithAddr []pay.AccountData

	DebitBankCorrect         []pay.AccountData
	DebitCardCorrect         []pay.AccountData
	DebitCardCorrectWithAddr []pay.AccountData
}

// PoolsFromConfig builds Pools out of the configuration collaborator's
// name-to-records mapping. Unknown pool names are rejected.
func PoolsFromConfig(sections map[string][]pay.AccountData) (Pools, error) {
	var p Pools
	for name, records := range sections {
		switch name {
		case PoolCreditCardCorrect:
			p.CreditCardCorrect = records
		case PoolCreditCardDeclined:
			p.CreditCardDeclined = records
		case PoolCreditCardLuhnError:
			p.CreditCardLuhnError = records
		case PoolCreditCardCvcError:
			p.CreditCardCvcError = records
		case PoolCreditCardCorrectWithAddr:
			p.CreditCardCorrectWithAddr = records
		case PoolDebitBankCorrect:
			p.DebitBankCorrect = records
		case PoolDebitCardCorrect:
			p.DebitCardCorrect = records
		case PoolDebitCardCorrectWithAddr:
			p.DebitCardCorrectWithAddr = records
		default:
			return Pools{}, &pay.Error{
				Kind:    pay.KindConfiguration,
				Op:      "mock.PoolsFromConfig",
				Message: fmt.Sprintf("unknown fixture pool %q", name),
			}
		}
	}
	return p, nil
}

// System is the mock backend. It satisfies the gateway contract by matching
// presented accounts against the fixture pools.
type System struct {
	name  string
	pools Pools
	stats *pay.Statistics
}

func NewSystem(name string, pools Pools) *System {
	return &System{
		name:  name,
		pools: pools,
		stats: pay.NewStatistics(),
	}
}

func (s *System) Name() string { return s.name }

func (s *System) Stats() *pay.Statistics { return s.stats }

// StartSession opens a session. The mock backend needs no credentials but
// cannot operate without an account resolver in the session context.
func (s *System) StartSession(params pay.ConnectionParams, sctx *pay.SessionContext) (pay.Session, error) {
	if sctx == nil || sctx.Resolver == nil {
		return nil, &pay.Error{
			Kind:    pay.KindConfiguration,
			Op:      "mock.StartSession",
			Message: "session context must supply an account resolver",
		}
	}
	return newSession(s, params, sctx.Resolver), nil
}

// Charge classifies from's instrument against the credit pools, pool
// precedence: declined, luhn-error, correct, correct-with-addr.
func (s *System) Charge(_ context.Context, session pay.Session, from, to pay.Account, amount pay.Amount, _ bool, description string, extraData any) (*pay.Transaction, error) {
	const op = "mock.Charge"

	actual, err := session.FetchAccountData(from)
	if err != nil {
		return nil, s.fail(pay.TypeCharge, pay.KindUnknownAccount, op, from, "", err)
	}

	number := actual.AccountID()

	if containsNumber(s.pools.CreditCardDeclined, number) {
		return nil, s.fail(pay.TypeCharge, pay.KindDeclined, op, from,
			fmt.Sprintf("card %q declined", number), nil)
	}

	if containsNumber(s.pools.CreditCardLuhnError, number) {
		return nil, s.fail(pay.TypeCharge, pay.KindInvalidCardNumber, op, from,
			fmt.Sprintf("card number %q is incorrect", number), nil)
	}

	if fixture := findByNumber(s.pools.CreditCardCorrect, number); fixture != nil {
		if err := s.checkCard(pay.TypeCharge, op, from, fixture, actual); err != nil {
			return nil, err
		}
		return s.succeed(session, pay.TypeCharge, from, to, amount, description, extraData), nil
	}

	if fixture := findByNumber(s.pools.CreditCardCorrectWithAddr, number); fixture != nil {
		if err := s.checkCard(pay.TypeCharge, op, from, fixture, actual); err != nil {
			return nil, err
		}
		if fixture.BillingAddressValue() != actual.BillingAddress() {
			return nil, s.fail(pay.TypeCharge, pay.KindInvalidAddress, op, from,
				"billing address does not match", nil)
		}
		return s.succeed(session, pay.TypeCharge, from, to, amount, description, extraData), nil
	}

	return nil, s.fail(pay.TypeCharge, pay.KindInvalidCardNumber, op, from,
		fmt.Sprintf("card number %q matched no pool", number), nil)
}

// Transfer validates to's instrument against the debit pools in order:
// debit-bank-correct, debit-card-correct, debit-card-correct-with-addr.
// The resulting transaction originates from the empty account.
//
// The with-addr pool requires every billing address field of the fixture to
// DIFFER from the presented one, so an exactly matching address is rejected.
func (s *System) Transfer(_ context.Context, session pay.Session, _, to pay.Account, amount pay.Amount, description string, extraData any) (*pay.Transaction, error) {
	const op = "mock.Transfer"

	actual, err := session.FetchAccountData(to)
	if err != nil {
		return nil, s.fail(pay.TypeTransfer, pay.KindUnknownAccount, op, to, "", err)
	}

	if fixture := findInstrument(s.pools.DebitBankCorrect, actual); fixture != nil {
		return s.succeed(session, pay.TypeTransfer, pay.EmptyAccount, to, amount, description, extraData), nil
	}

	if fixture := findInstrument(s.pools.DebitCardCorrect, actual); fixture != nil {
		return s.succeed(session, pay.TypeTransfer, pay.EmptyAccount, to, amount, description, extraData), nil
	}

	if fixture := findInstrumentWithDifferingAddr(s.pools.DebitCardCorrectWithAddr, actual); fixture != nil {
		return s.succeed(session, pay.TypeTransfer, pay.EmptyAccount, to, amount, description, extraData), nil
	}

	return nil, s.fail(pay.TypeTransfer, pay.KindInvalidCardNumber, op, to,
		fmt.Sprintf("account number %q matched no pool", actual.AccountID()), nil)
}

// Void always succeeds; the simulation does not model post-authorization
// failure.
func (s *System) Void(_ context.Context, _ pay.Session, charge *pay.Transaction, _ string, _ any) error {
	s.stats.Success(pay.TypeVoid, charge.Amount())
	return nil
}

// Capture always succeeds, optionally partial.
func (s *System) Capture(_ context.Context, _ pay.Session, charge *pay.Transaction, amount *pay.Amount, _ string, _ any) error {
	s.stats.Success(pay.TypeCapture, orChargeAmount(charge, amount))
	return nil
}

// Refund always succeeds, optionally partial.
func (s *System) Refund(_ context.Context, _ pay.Session, charge *pay.Transaction, amount *pay.Amount, _ string, _ any) error {
	s.stats.Success(pay.TypeRefund, orChargeAmount(charge, amount))
	return nil
}

// checkCard verifies the presented expiration and verification code against
// the matched fixture. Expiration is checked before CVC.
func (s *System) checkCard(op pay.TransactionType, opName string, account pay.Account, fixture *pay.AccountData, actual *pay.ActualAccountData) error {
	presented := actual.Data()

	if fixture.CardExpirationYear != presented.CardExpirationYear ||
		fixture.CardExpirationMonth != presented.CardExpirationMonth {
		return s.fail(op, pay.KindInvalidExpirationDate, opName, account,
			fmt.Sprintf("expiration %d/%d is invalid", presented.CardExpirationYear, presented.CardExpirationMonth), nil)
	}

	if fixture.CardVC != presented.CardVC {
		return s.fail(op, pay.KindInvalidCVC, opName, account, "verification code is invalid", nil)
	}

	return nil
}

func (s *System) succeed(session pay.Session, op pay.TransactionType, from, to pay.Account, amount pay.Amount, description string, extraData any) *pay.Transaction {
	id := session.GenerateTransactionID(op)
	tx := pay.NewTransaction(id, op, pay.StatusSuccess, from, to, s.name, id, time.Now().UTC(), amount, description, extraData)
	s.stats.Success(op, amount)
	return tx
}

func (s *System) fail(op pay.TransactionType, kind pay.Kind, opName string, account pay.Account, message string, err error) error {
	s.stats.Failure(op)
	return &pay.Error{
		Kind:    kind,
		Op:      opName,
		Account: account,
		Message: message,
		Err:     err,
	}
}

func containsNumber(pool []pay.AccountData, number string) bool {
	return findByNumber(pool, number) != nil
}

func findByNumber(pool []pay.AccountData, number string) *pay.AccountData {
	for i := range pool {
		if pool[i].AccountNumber == number {
			return &pool[i]
		}
	}
	return nil
}

// findInstrument returns the first fixture matching the presented account
// number, expiration year, expiration month and verification code.
func findInstrument(pool []pay.AccountData, actual *pay.ActualAccountData) *pay.AccountData {
	presented := actual.Data()
	for i := range pool {
		c := &pool[i]
		if c.AccountNumber == actual.AccountID() &&
			c.CardExpirationYear == presented.CardExpirationYear &&
			c.CardExpirationMonth == presented.CardExpirationMonth &&
			c.CardVC == presented.CardVC {
			return c
		}
	}
	return nil
}

// findInstrumentWithDifferingAddr matches like findInstrument but further
// requires inequality on all eight billing address fields.
func findInstrumentWithDifferingAddr(pool []pay.AccountData, actual *pay.ActualAccountData) *pay.AccountData {
	presented := actual.Data()
	addr := actual.BillingAddress()
	for i := range pool {
		c := &pool[i]
		if c.AccountNumber == actual.AccountID() &&
			c.CardExpirationYear == presented.CardExpirationYear &&
			c.CardExpirationMonth == presented.CardExpirationMonth &&
			c.CardVC == presented.CardVC &&
			c.BillingAddress1 != addr.Address1 &&
			c.BillingAddress2 != addr.Address2 &&
			c.BillingCountry != addr.Country &&
			c.BillingCity != addr.City &&
			c.BillingPostalCode != addr.PostalCode &&
			c.BillingRegion != addr.Region &&
			c.BillingEmail != addr.Email &&
			c.BillingPhone != addr.Phone {
			return c
		}
	}
	return nil
}

func orChargeAmount(charge *pay.Transaction, amount *pay.Amount) pay.Amount {
	if amount != nil {
		return *amount
	}
	return charge.Amount()
}
