package pay

import "time"

type TransactionType string

const (
	TypeCharge   TransactionType = "charge"
	TypeCapture  TransactionType = "capture"
	TypeVoid     TransactionType = "void"
	TypeRefund   TransactionType = "refund"
	TypeTransfer TransactionType = "transfer"
)

type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "success"
	StatusFailure TransactionStatus = "failure"
)

// Transaction is the immutable record of a completed or attempted gateway
// operation. It is created by a backend as the result of a lifecycle call and
// owned by the caller afterwards.
type Transaction struct {
	id          string
	txType      TransactionType
	status      TransactionStatus
	from        Account
	to          Account
	processor   string
	processorID string
	createdAt   time.Time
	amount      Amount
	description string
	extraData   any
}

func NewTransaction(
	id string,
	txType TransactionType,
	status TransactionStatus,
	from, to Account,
	processor, processorID string,
	createdAt time.Time,
	amount Amount,
	description string,
	extraData any,
) *Transaction {
	return &Transaction{
		id:          id,
		txType:      txType,
		status:      status,
		from:        from,
		to:          to,
		processor:   processor,
		processorID: processorID,
		createdAt:   createdAt,
		amount:      amount,
		description: description,
		extraData:   extraData,
	}
}

func (t *Transaction) ID() string { return t.id }

func (t *Transaction) Type() TransactionType { return t.txType }

func (t *Transaction) Status() TransactionStatus { return t.status }

func (t *Transaction) From() Account { return t.from }

func (t *Transaction) To() Account { return t.to }

func (t *Transaction) Processor() string { return t.processor }

func (t *Transaction) ProcessorID() string { return t.processorID }

func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

func (t *Transaction) Amount() Amount { return t.amount }

func (t *Transaction) Description() string { return t.description }

func (t *Transaction) ExtraData() any { return t.extraData }
