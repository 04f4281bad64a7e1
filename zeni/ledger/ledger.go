package ledger

import (
	"time"
)

// TransactionKind tags every ledger entry with the operation that produced it.
type TransactionKind string

const (
	KindAdminIssue  TransactionKind = "admin_issue"
	KindAdminReduce TransactionKind = "admin_reduce"
	KindRoleIssue   TransactionKind = "role_issue"
	KindTransferIn  TransactionKind = "transfer_in"
	KindTransferOut TransactionKind = "transfer_out"
	KindWager       TransactionKind = "wager"
	KindOther       TransactionKind = "other"
)

// Account holds a user's balance plus append-only audit counters.
// TotalEarned and TotalSpent never decrease; the current balance is always
// reconstructible as initial balance + TotalEarned - TotalSpent.
type Account struct {
	ID          string    `json:"-"`
	Balance     int64     `json:"balance"`
	TotalEarned int64     `json:"total_earned"`
	TotalSpent  int64     `json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

// Transaction is one append-only log entry. Positive amounts are credits,
// negative amounts are debits.
type Transaction struct {
	ID        string          `json:"id"`
	AccountID string          `json:"user_id"`
	Amount    int64           `json:"amount"`
	Kind      TransactionKind `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
}

// Ledger is the root aggregate that gets persisted as a whole. Transactions
// are kept in insertion order, which is also chronological order.
type Ledger struct {
	Users        map[string]*Account `json:"users"`
	Transactions []Transaction       `json:"transactions"`
}

func NewLedger() *Ledger {
	return &Ledger{
		Users:        make(map[string]*Account),
		Transactions: make([]Transaction, 0),
	}
}

// normalize fills nil collections after a JSON round trip and copies map keys
// back into the account IDs, which are not serialized redundantly.
func (l *Ledger) normalize() {
	if l.Users == nil {
		l.Users = make(map[string]*Account)
	}
	if l.Transactions == nil {
		l.Transactions = make([]Transaction, 0)
	}
	for id, acct := range l.Users {
		acct.ID = id
	}
}
