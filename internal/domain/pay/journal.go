package pay

import "context"

// Journal records completed transactions for audit. It observes operations
// after the fact; backends themselves stay storage-free.
type Journal interface {
	Record(ctx context.Context, tx *Transaction) error
}

// NopJournal discards every record.
type NopJournal struct{}

func (NopJournal) Record(context.Context, *Transaction) error { return nil }
