package pay

import (
	"strings"
	"time"
)

type AccountType string

const (
	AccountTypeCredit AccountType = "credit"
	AccountTypeDebit  AccountType = "debit"
	AccountTypeBank   AccountType = "bank"
)

// Address is a plain structural record; backends project one out of
// AccountData's billing or shipping fields and never share the copies.
type Address struct {
	Address1   string `yaml:"address1"`
	Address2   string `yaml:"address2"`
	City       string `yaml:"city"`
	Region     string `yaml:"region"`
	PostalCode string `yaml:"postal-code"`
	Country    string `yaml:"country"`
	Phone      string `yaml:"phone"`
	Email      string `yaml:"email"`
}

// AccountData is a vault/fixture record with the card or bank details behind
// an Account. Records come from backend configuration and are treated as
// read-only once loaded.
type AccountData struct {
	FirstName  string `yaml:"first-name"`
	MiddleName string `yaml:"middle-name"`
	LastName   string `yaml:"last-name"`

	AccountType AccountType `yaml:"account-type"`

	AccountNumber string `yaml:"account-number"`
	RoutingNumber string `yaml:"routing-number"`

	CardMaskedName      string `yaml:"card-masked-name"`
	CardHolder          string `yaml:"card-holder"`
	CardExpirationYear  int    `yaml:"card-expiration-year"`
	CardExpirationMonth int    `yaml:"card-expiration-month"`
	CardVC              string `yaml:"card-vc"`

	BillingAddress1   string `yaml:"billing-address1"`
	BillingAddress2   string `yaml:"billing-address2"`
	BillingCity       string `yaml:"billing-city"`
	BillingRegion     string `yaml:"billing-region"`
	BillingPostalCode string `yaml:"billing-postal-code"`
	BillingCountry    string `yaml:"billing-country"`
	BillingPhone      string `yaml:"billing-phone"`
	BillingEmail      string `yaml:"billing-email"`

	ShippingAddress1   string `yaml:"shipping-address1"`
	ShippingAddress2   string `yaml:"shipping-address2"`
	ShippingCity       string `yaml:"shipping-city"`
	ShippingRegion     string `yaml:"shipping-region"`
	ShippingPostalCode string `yaml:"shipping-postal-code"`
	ShippingCountry    string `yaml:"shipping-country"`
	ShippingPhone      string `yaml:"shipping-phone"`
	ShippingEmail      string `yaml:"shipping-email"`
}

// IsCard reports whether the record describes a card instrument; a record
// with a routing number is a bank account.
func (d AccountData) IsCard() bool {
	return strings.TrimSpace(d.RoutingNumber) == ""
}

// AccountTitle joins the non-empty name parts with single spaces.
func (d AccountData) AccountTitle() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{d.FirstName, d.MiddleName, d.LastName} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// ExpirationDate returns the first day of the expiration month. It is only
// meaningful when both year and month are set; otherwise ok is false.
func (d AccountData) ExpirationDate() (t time.Time, ok bool) {
	if d.CardExpirationYear == 0 || d.CardExpirationMonth == 0 {
		return time.Time{}, false
	}
	return time.Date(d.CardExpirationYear, time.Month(d.CardExpirationMonth), 1, 0, 0, 0, 0, time.UTC), true
}

// BillingAddressValue projects the billing fields into an Address copy.
func (d AccountData) BillingAddressValue() Address {
	return Address{
		Address1:   d.BillingAddress1,
		Address2:   d.BillingAddress2,
		City:       d.BillingCity,
		Region:     d.BillingRegion,
		PostalCode: d.BillingPostalCode,
		Country:    d.BillingCountry,
		Phone:      d.BillingPhone,
		Email:      d.BillingEmail,
	}
}

// ShippingAddressValue projects the shipping fields into an Address copy.
func (d AccountData) ShippingAddressValue() Address {
	return Address{
		Address1:   d.ShippingAddress1,
		Address2:   d.ShippingAddress2,
		City:       d.ShippingCity,
		Region:     d.ShippingRegion,
		PostalCode: d.ShippingPostalCode,
		Country:    d.ShippingCountry,
		Phone:      d.ShippingPhone,
		Email:      d.ShippingEmail,
	}
}

// ActualAccountData binds an Account to its resolved instrument data. The
// billing and shipping addresses are projected once at construction; the
// value is not mutated afterwards.
type ActualAccountData struct {
	account  Account
	data     AccountData
	billing  Address
	shipping Address
}

func NewActualAccountData(account Account, data AccountData) *ActualAccountData {
	return &ActualAccountData{
		account:  account,
		data:     data,
		billing:  data.BillingAddressValue(),
		shipping: data.ShippingAddressValue(),
	}
}

func (a *ActualAccountData) Account() Account { return a.account }

func (a *ActualAccountData) Data() AccountData { return a.data }

// AccountID is the instrument's account number, the matching key for every
// fixture pool.
func (a *ActualAccountData) AccountID() string { return a.data.AccountNumber }

func (a *ActualAccountData) BillingAddress() Address { return a.billing }

func (a *ActualAccountData) ShippingAddress() Address { return a.shipping }
