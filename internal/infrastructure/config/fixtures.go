package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

// Fixtures is the parsed fixture file: the named, ordered account pools the
// simulation backend classifies against, and the known accounts a session
// resolver hands out.
type Fixtures struct {
	Pools    map[string][]pay.AccountData `yaml:"pools"`
	Accounts []FixtureAccount             `yaml:"accounts"`
}

// FixtureAccount binds an account reference to its stored instrument data.
type FixtureAccount struct {
	Account AccountRef      `yaml:"account"`
	Data    pay.AccountData `yaml:"data"`
}

type AccountRef struct {
	Identity   string `yaml:"identity"`
	IdentityID string `yaml:"identity-id"`
	AccountID  string `yaml:"account-id"`
}

// LoadFixtures reads and parses a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

func ParseFixtures(raw []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, &pay.Error{
			Kind:    pay.KindConfiguration,
			Op:      "config.ParseFixtures",
			Message: "malformed fixture file",
			Err:     err,
		}
	}
	return &f, nil
}

// Records builds the resolver records. A record whose data carries no
// account number inherits it from the account reference.
func (f *Fixtures) Records() []*pay.ActualAccountData {
	records := make([]*pay.ActualAccountData, 0, len(f.Accounts))
	for _, fa := range f.Accounts {
		data := fa.Data
		if data.AccountNumber == "" {
			data.AccountNumber = fa.Account.AccountID
		}
		account := pay.NewAccount(fa.Account.Identity, fa.Account.IdentityID, fa.Account.AccountID)
		records = append(records, pay.NewActualAccountData(account, data))
	}
	return records
}
