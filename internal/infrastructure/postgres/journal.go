package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

// Journal persists completed transactions into the pay_transactions table.
type Journal struct {
	pool *pgxpool.Pool
}

func NewJournal(pool *pgxpool.Pool) *Journal {
	return &Journal{pool: pool}
}

func (j *Journal) Record(ctx context.Context, tx *pay.Transaction) error {
	_, err := j.pool.Exec(ctx,
		`INSERT INTO pay_transactions
		 (id, type, status, from_identity, from_identity_id, from_account_id,
		  to_identity, to_identity_id, to_account_id,
		  processor, processor_tx_id, amount, currency, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		tx.ID(), string(tx.Type()), string(tx.Status()),
		tx.From().Identity(), tx.From().IdentityID(), tx.From().AccountID(),
		tx.To().Identity(), tx.To().IdentityID(), tx.To().AccountID(),
		tx.Processor(), tx.ProcessorID(),
		tx.Amount().Value(), tx.Amount().Currency(),
		tx.Description(), tx.CreatedAt(),
	)
	return err
}
