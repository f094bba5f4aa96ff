package pay

import "fmt"

// Account is a three-part reference to a method of payment: the identity
// namespace (e.g. "customer"), the id within that namespace (e.g. customer
// number "125") and the account id within that identity (e.g. the customer's
// stored card). It is a value: two Accounts are the same iff all three parts
// are equal.
type Account struct {
	identity   string
	identityID string
	accountID  string
}

// EmptyAccount stands for "no account", used as the from side of inbound
// transfers.
var EmptyAccount = Account{}

func NewAccount(identity, identityID, accountID string) Account {
	return Account{
		identity:   identity,
		identityID: identityID,
		accountID:  accountID,
	}
}

func (a Account) Identity() string { return a.identity }

func (a Account) IdentityID() string { return a.identityID }

func (a Account) AccountID() string { return a.accountID }

// IsEmpty reports whether all three parts are unset.
func (a Account) IsEmpty() bool {
	return a.identity == "" && a.identityID == "" && a.accountID == ""
}

func (a Account) Equal(other Account) bool {
	return a == other
}

func (a Account) String() string {
	if a.IsEmpty() {
		return "[EMPTY]"
	}
	return fmt.Sprintf("Account(%s, %s, %s)", a.identity, a.identityID, a.accountID)
}
