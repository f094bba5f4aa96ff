package pay

import (
	"sync"

	"github.com/shopspring/decimal"
)

// OperationStats is a point-in-time view of one operation kind's counters.
type OperationStats struct {
	Attempts  int64
	Successes int64
	Errors    int64
	// Totals holds the cumulative successfully processed amount per currency.
	Totals map[string]decimal.Decimal
}

// Statistics holds the per-operation counters of one backend instance.
// Counters are shared across concurrent sessions; every update takes the
// lock so a count and its amount never go out of step.
type Statistics struct {
	mu  sync.Mutex
	ops map[TransactionType]*opCounters
}

type opCounters struct {
	attempts  int64
	successes int64
	errors    int64
	totals    map[string]decimal.Decimal
}

func NewStatistics() *Statistics {
	return &Statistics{ops: make(map[TransactionType]*opCounters)}
}

func (s *Statistics) counters(op TransactionType) *opCounters {
	c, ok := s.ops[op]
	if !ok {
		c = &opCounters{totals: make(map[string]decimal.Decimal)}
		s.ops[op] = c
	}
	return c
}

// Success records a completed operation and accumulates its amount.
func (s *Statistics) Success(op TransactionType, amount Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.counters(op)
	c.attempts++
	c.successes++
	cur := amount.Currency()
	if cur != "" {
		c.totals[cur] = c.totals[cur].Add(amount.Value())
	}
}

// Failure records a failed operation.
func (s *Statistics) Failure(op TransactionType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.counters(op)
	c.attempts++
	c.errors++
}

// Snapshot returns a consistent copy of every counter.
func (s *Statistics) Snapshot() map[TransactionType]OperationStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[TransactionType]OperationStats, len(s.ops))
	for op, c := range s.ops {
		totals := make(map[string]decimal.Decimal, len(c.totals))
		for cur, v := range c.totals {
			totals[cur] = v
		}
		out[op] = OperationStats{
			Attempts:  c.attempts,
			Successes: c.successes,
			Errors:    c.errors,
			Totals:    totals,
		}
	}
	return out
}

// Op returns the counters for one operation kind.
func (s *Statistics) Op(op TransactionType) OperationStats {
	snap := s.Snapshot()
	if st, ok := snap[op]; ok {
		return st
	}
	return OperationStats{Totals: map[string]decimal.Decimal{}}
}
