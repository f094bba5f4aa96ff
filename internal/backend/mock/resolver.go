package mock

import "github.com/paybridge/paybridge/internal/domain/pay"

// StaticResolver resolves accounts out of a fixed set of records, the way a
// test harness configures its known accounts. Lookup is by Account equality.
type StaticResolver struct {
	records map[pay.Account]*pay.ActualAccountData
}

func NewStaticResolver(records ...*pay.ActualAccountData) *StaticResolver {
	m := make(map[pay.Account]*pay.ActualAccountData, len(records))
	for _, r := range records {
		m[r.Account()] = r
	}
	return &StaticResolver{records: m}
}

func (r *StaticResolver) Resolve(account pay.Account) (*pay.ActualAccountData, error) {
	actual, ok := r.records[account]
	if !ok {
		return nil, pay.ErrAccountNotFound
	}
	return actual, nil
}
