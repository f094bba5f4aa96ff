package mock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paybridge/paybridge/internal/backend/mock"
	"github.com/paybridge/paybridge/internal/domain/pay"
)

const (
	correctNumber  = "4242424242424242"
	declinedNumber = "4000000000000002"
	luhnNumber     = "4242424242424241"
	addrNumber     = "4012888888881881"
	bankNumber     = "000123456789"
	debitNumber    = "4000056655665556"
	debitAddrNum   = "5200828282828210"
)

func card(number string, year, month int, cvc string) pay.AccountData {
	return pay.AccountData{
		AccountType:         pay.AccountTypeCredit,
		AccountNumber:       number,
		CardExpirationYear:  year,
		CardExpirationMonth: month,
		CardVC:              cvc,
	}
}

func withBilling(d pay.AccountData) pay.AccountData {
	d.BillingAddress1 = "587 Kyle Street"
	d.BillingAddress2 = "Apt 2"
	d.BillingCity = "Grand Island"
	d.BillingRegion = "NE"
	d.BillingPostalCode = "68801"
	d.BillingCountry = "US"
	d.BillingPhone = "(308) 384-1608"
	d.BillingEmail = "vaughn@example.com"
	return d
}

func testPools() mock.Pools {
	return mock.Pools{
		CreditCardCorrect:         []pay.AccountData{card(correctNumber, 2029, 11, "123")},
		CreditCardDeclined:        []pay.AccountData{card(declinedNumber, 2029, 11, "123")},
		CreditCardLuhnError:       []pay.AccountData{card(luhnNumber, 2029, 11, "123")},
		CreditCardCvcError:        []pay.AccountData{card("4024007134364842", 2029, 11, "999")},
		CreditCardCorrectWithAddr: []pay.AccountData{withBilling(card(addrNumber, 2029, 11, "456"))},
		DebitBankCorrect: []pay.AccountData{{
			AccountType:   pay.AccountTypeBank,
			AccountNumber: bankNumber,
			RoutingNumber: "110000000",
		}},
		DebitCardCorrect:         []pay.AccountData{card(debitNumber, 2030, 6, "789")},
		DebitCardCorrectWithAddr: []pay.AccountData{withBilling(card(debitAddrNum, 2030, 6, "321"))},
	}
}

func account(accountID string) pay.Account {
	return pay.NewAccount("customer", "125", accountID)
}

var merchant = pay.NewAccount("vendor", "7", "settlement")

// newSession builds a system over the test pools and a session resolving the
// given records.
func newSession(t *testing.T, records ...*pay.ActualAccountData) (*mock.System, pay.Session) {
	t.Helper()
	sys := mock.NewSystem("mockpay", testPools())
	session, err := sys.StartSession(pay.ConnectionParams{}, &pay.SessionContext{
		Resolver: mock.NewStaticResolver(records...),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return sys, session
}

func resolved(accountID string, data pay.AccountData) *pay.ActualAccountData {
	data.AccountNumber = accountID
	return pay.NewActualAccountData(account(accountID), data)
}

func amount(t *testing.T, value string) pay.Amount {
	t.Helper()
	a, err := pay.ParseAmount("USD", value)
	require.NoError(t, err)
	return a
}

func TestStartSession_RequiresResolver(t *testing.T) {
	sys := mock.NewSystem("mockpay", testPools())

	_, err := sys.StartSession(pay.ConnectionParams{}, nil)
	assert.True(t, pay.IsKind(err, pay.KindConfiguration))

	_, err = sys.StartSession(pay.ConnectionParams{}, &pay.SessionContext{})
	assert.True(t, pay.IsKind(err, pay.KindConfiguration))
}

func TestCharge_Success(t *testing.T) {
	sys, session := newSession(t, resolved(correctNumber, card(correctNumber, 2029, 11, "123")))

	from := account(correctNumber)
	tx, err := sys.Charge(context.Background(), session, from, merchant, amount(t, "25.00"), true, "order 991", nil)
	require.NoError(t, err)

	assert.Equal(t, pay.TypeCharge, tx.Type())
	assert.Equal(t, pay.StatusSuccess, tx.Status())
	assert.Equal(t, from, tx.From())
	assert.Equal(t, merchant, tx.To())
	assert.Equal(t, "mockpay", tx.Processor())
	assert.Equal(t, "order 991", tx.Description())
	assert.NotEmpty(t, tx.ID())

	stats := sys.Stats().Op(pay.TypeCharge)
	assert.Equal(t, int64(1), stats.Successes)
	assert.True(t, stats.Totals["USD"].Equal(decimal.RequireFromString("25.00")))
}

func TestCharge_RepeatedCallsMintDistinctIDs(t *testing.T) {
	sys, session := newSession(t, resolved(correctNumber, card(correctNumber, 2029, 11, "123")))

	first, err := sys.Charge(context.Background(), session, account(correctNumber), merchant, amount(t, "5.00"), true, "", nil)
	require.NoError(t, err)
	second, err := sys.Charge(context.Background(), session, account(correctNumber), merchant, amount(t, "5.00"), true, "", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, first.Status(), second.Status())
}

func TestCharge_UnknownAccount(t *testing.T) {
	sys, session := newSession(t)

	_, err := sys.Charge(context.Background(), session, account("no-such-card"), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindUnknownAccount))
	assert.ErrorIs(t, err, pay.ErrAccountNotFound)
	assert.Equal(t, int64(1), sys.Stats().Op(pay.TypeCharge).Errors)
}

func TestCharge_DeclinedPoolWinsOverCardDetails(t *testing.T) {
	// Matching card details elsewhere must not rescue a declined number.
	sys, session := newSession(t, resolved(declinedNumber, card(declinedNumber, 2029, 11, "123")))

	_, err := sys.Charge(context.Background(), session, account(declinedNumber), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindDeclined))
	assert.Equal(t, int64(1), sys.Stats().Op(pay.TypeCharge).Errors)
}

func TestCharge_LuhnPool(t *testing.T) {
	sys, session := newSession(t, resolved(luhnNumber, card(luhnNumber, 2029, 11, "123")))

	_, err := sys.Charge(context.Background(), session, account(luhnNumber), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindInvalidCardNumber))
}

func TestCharge_ExpirationCheckedBeforeCVC(t *testing.T) {
	// Both expiration and CVC are wrong; expiration must win.
	sys, session := newSession(t, resolved(correctNumber, card(correctNumber, 2028, 1, "999")))

	_, err := sys.Charge(context.Background(), session, account(correctNumber), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindInvalidExpirationDate))
	assert.Equal(t, int64(1), sys.Stats().Op(pay.TypeCharge).Errors)
}

func TestCharge_InvalidCVC(t *testing.T) {
	sys, session := newSession(t, resolved(correctNumber, card(correctNumber, 2029, 11, "999")))

	_, err := sys.Charge(context.Background(), session, account(correctNumber), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindInvalidCVC))
}

func TestCharge_AddressPool(t *testing.T) {
	t.Run("full match succeeds", func(t *testing.T) {
		sys, session := newSession(t, resolved(addrNumber, withBilling(card(addrNumber, 2029, 11, "456"))))

		tx, err := sys.Charge(context.Background(), session, account(addrNumber), merchant, amount(t, "9.99"), true, "", nil)
		require.NoError(t, err)
		assert.Equal(t, pay.StatusSuccess, tx.Status())
	})

	t.Run("one differing field fails", func(t *testing.T) {
		presented := withBilling(card(addrNumber, 2029, 11, "456"))
		presented.BillingPostalCode = "68802"
		sys, session := newSession(t, resolved(addrNumber, presented))

		_, err := sys.Charge(context.Background(), session, account(addrNumber), merchant, amount(t, "9.99"), true, "", nil)
		assert.True(t, pay.IsKind(err, pay.KindInvalidAddress))
	})

	t.Run("expiration still checked first", func(t *testing.T) {
		presented := withBilling(card(addrNumber, 2030, 11, "456"))
		sys, session := newSession(t, resolved(addrNumber, presented))

		_, err := sys.Charge(context.Background(), session, account(addrNumber), merchant, amount(t, "9.99"), true, "", nil)
		assert.True(t, pay.IsKind(err, pay.KindInvalidExpirationDate))
	})
}

func TestCharge_NumberInNoPool(t *testing.T) {
	sys, session := newSession(t, resolved("4111111111111111", card("4111111111111111", 2029, 11, "123")))

	_, err := sys.Charge(context.Background(), session, account("4111111111111111"), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindInvalidCardNumber))
	assert.Equal(t, int64(1), sys.Stats().Op(pay.TypeCharge).Errors)
}

func TestCharge_CvcErrorPoolIsNotConsulted(t *testing.T) {
	// Numbers only present in the cvc-error pool classify as unknown card
	// numbers; the pool is loaded but never matched against.
	sys, session := newSession(t, resolved("4024007134364842", card("4024007134364842", 2029, 11, "999")))

	_, err := sys.Charge(context.Background(), session, account("4024007134364842"), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindInvalidCardNumber))
}

func TestTransfer_BankAccount(t *testing.T) {
	data := pay.AccountData{
		AccountType:   pay.AccountTypeBank,
		AccountNumber: bankNumber,
		RoutingNumber: "110000000",
	}
	sys, session := newSession(t, resolved(bankNumber, data))

	to := account(bankNumber)
	tx, err := sys.Transfer(context.Background(), session, pay.EmptyAccount, to, amount(t, "100.00"), "payout", nil)
	require.NoError(t, err)

	assert.Equal(t, pay.TypeTransfer, tx.Type())
	assert.Equal(t, pay.StatusSuccess, tx.Status())
	assert.True(t, tx.From().IsEmpty())
	assert.Equal(t, pay.EmptyAccount, tx.From())
	assert.Equal(t, to, tx.To())

	stats := sys.Stats().Op(pay.TypeTransfer)
	assert.Equal(t, int64(1), stats.Successes)
	assert.True(t, stats.Totals["USD"].Equal(decimal.RequireFromString("100.00")))
}

func TestTransfer_DebitCard(t *testing.T) {
	sys, session := newSession(t, resolved(debitNumber, card(debitNumber, 2030, 6, "789")))

	tx, err := sys.Transfer(context.Background(), session, pay.EmptyAccount, account(debitNumber), amount(t, "42.00"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, pay.StatusSuccess, tx.Status())
}

func TestTransfer_WrongCVCMatchesNoPool(t *testing.T) {
	sys, session := newSession(t, resolved(debitNumber, card(debitNumber, 2030, 6, "000")))

	_, err := sys.Transfer(context.Background(), session, pay.EmptyAccount, account(debitNumber), amount(t, "42.00"), "", nil)
	assert.True(t, pay.IsKind(err, pay.KindInvalidCardNumber))
	assert.Equal(t, int64(1), sys.Stats().Op(pay.TypeTransfer).Errors)
}

func TestTransfer_UnknownAccount(t *testing.T) {
	sys, session := newSession(t)

	_, err := sys.Transfer(context.Background(), session, pay.EmptyAccount, account("missing"), amount(t, "1.00"), "", nil)
	assert.True(t, pay.IsKind(err, pay.KindUnknownAccount))
	assert.Equal(t, int64(1), sys.Stats().Op(pay.TypeTransfer).Errors)
}

// The with-addr transfer pool compares every billing address field with
// inequality: a presented address identical to the fixture is rejected,
// one differing on every field is accepted. These cases pin that down.
func TestTransfer_AddressPoolRequiresDifferingAddress(t *testing.T) {
	t.Run("identical address is rejected", func(t *testing.T) {
		presented := withBilling(card(debitAddrNum, 2030, 6, "321"))
		sys, session := newSession(t, resolved(debitAddrNum, presented))

		_, err := sys.Transfer(context.Background(), session, pay.EmptyAccount, account(debitAddrNum), amount(t, "10.00"), "", nil)
		assert.True(t, pay.IsKind(err, pay.KindInvalidCardNumber))
	})

	t.Run("address differing on every field is accepted", func(t *testing.T) {
		presented := card(debitAddrNum, 2030, 6, "321")
		presented.BillingAddress1 = "1 Other Road"
		presented.BillingAddress2 = "Suite 9"
		presented.BillingCity = "Lincoln"
		presented.BillingRegion = "KS"
		presented.BillingPostalCode = "67455"
		presented.BillingCountry = "CA"
		presented.BillingPhone = "(111) 111-1111"
		presented.BillingEmail = "other@example.com"
		sys, session := newSession(t, resolved(debitAddrNum, presented))

		tx, err := sys.Transfer(context.Background(), session, pay.EmptyAccount, account(debitAddrNum), amount(t, "10.00"), "", nil)
		require.NoError(t, err)
		assert.Equal(t, pay.StatusSuccess, tx.Status())
	})

	t.Run("single equal field is rejected", func(t *testing.T) {
		presented := card(debitAddrNum, 2030, 6, "321")
		presented.BillingAddress1 = "1 Other Road"
		presented.BillingAddress2 = "Suite 9"
		presented.BillingCity = "Grand Island" // equal to the fixture's city
		presented.BillingRegion = "KS"
		presented.BillingPostalCode = "67455"
		presented.BillingCountry = "CA"
		presented.BillingPhone = "(111) 111-1111"
		presented.BillingEmail = "other@example.com"
		sys, session := newSession(t, resolved(debitAddrNum, presented))

		_, err := sys.Transfer(context.Background(), session, pay.EmptyAccount, account(debitAddrNum), amount(t, "10.00"), "", nil)
		assert.True(t, pay.IsKind(err, pay.KindInvalidCardNumber))
	})
}

func TestVoidCaptureRefund_AlwaysSucceed(t *testing.T) {
	sys, session := newSession(t, resolved(correctNumber, card(correctNumber, 2029, 11, "123")))

	charge, err := sys.Charge(context.Background(), session, account(correctNumber), merchant, amount(t, "30.00"), false, "", nil)
	require.NoError(t, err)

	require.NoError(t, sys.Void(context.Background(), session, charge, "", nil))
	require.NoError(t, sys.Capture(context.Background(), session, charge, nil, "", nil))

	partial := amount(t, "12.00")
	require.NoError(t, sys.Refund(context.Background(), session, charge, &partial, "", nil))

	assert.Equal(t, int64(1), sys.Stats().Op(pay.TypeVoid).Successes)

	capture := sys.Stats().Op(pay.TypeCapture)
	assert.Equal(t, int64(1), capture.Successes)
	assert.True(t, capture.Totals["USD"].Equal(decimal.RequireFromString("30.00")), "full capture uses the charge amount")

	refund := sys.Stats().Op(pay.TypeRefund)
	assert.Equal(t, int64(1), refund.Successes)
	assert.True(t, refund.Totals["USD"].Equal(decimal.RequireFromString("12.00")), "partial refund uses the given amount")
}

func TestSession_ClosedRejectsFetches(t *testing.T) {
	sys, session := newSession(t, resolved(correctNumber, card(correctNumber, 2029, 11, "123")))

	require.NoError(t, session.Close())

	_, err := sys.Charge(context.Background(), session, account(correctNumber), merchant, amount(t, "1.00"), true, "", nil)
	assert.True(t, pay.IsKind(err, pay.KindUnknownAccount))
}

func TestPoolsFromConfig(t *testing.T) {
	pools, err := mock.PoolsFromConfig(map[string][]pay.AccountData{
		mock.PoolCreditCardCorrect:  {card(correctNumber, 2029, 11, "123")},
		mock.PoolCreditCardDeclined: {card(declinedNumber, 2029, 11, "123")},
		mock.PoolDebitBankCorrect:   {{AccountNumber: bankNumber, RoutingNumber: "110000000"}},
	})
	require.NoError(t, err)
	assert.Len(t, pools.CreditCardCorrect, 1)
	assert.Len(t, pools.CreditCardDeclined, 1)
	assert.Len(t, pools.DebitBankCorrect, 1)
	assert.Empty(t, pools.DebitCardCorrect)

	_, err = mock.PoolsFromConfig(map[string][]pay.AccountData{"credit-card-stolen": nil})
	assert.True(t, pay.IsKind(err, pay.KindConfiguration))
}
