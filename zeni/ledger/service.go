package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInsufficientFunds is the only domain error the service surfaces; the
// offending operation is a no-op.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Service owns the in-memory ledger and is the only component allowed to
// mutate it. Every mutation runs under one mutex and is flushed to the store
// before the lock is released; a failed flush is logged and recovered by the
// store, never propagated as a crash. The in-memory state stays authoritative.
type Service struct {
	mu             sync.Mutex
	store          *Store
	ledger         *Ledger
	initialBalance int64
}

func NewService(store *Store, initialBalance int64) (*Service, error) {
	l, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Service{
		store:          store,
		ledger:         l,
		initialBalance: initialBalance,
	}, nil
}

// GetOrCreate returns a copy of the account, creating and persisting it on
// first sight. Calling it again for a known id never mutates anything.
func (s *Service) GetOrCreate(id string) Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acct, ok := s.ledger.Users[id]; ok {
		return *acct
	}

	acct := &Account{
		ID:        id,
		Balance:   s.initialBalance,
		CreatedAt: time.Now().UTC(),
	}
	s.ledger.Users[id] = acct
	s.persistLocked()

	slog.Info("Created account",
		slog.String("type", "store"),
		slog.String("account_id", id),
		slog.Int64("balance", acct.Balance))
	return *acct
}

// ApplyDelta adds amount (which may be negative) to the account balance,
// updates the audit counters, appends a transaction record and persists. It
// deliberately enforces no lower bound: callers that must not overdraw an
// account pre-check sufficiency themselves.
func (s *Service) ApplyDelta(id string, amount int64, kind TransactionKind) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.applyDeltaLocked(id, amount, kind)
	s.persistLocked()
	return balance
}

// Transfer moves amount from one account to the other, refusing to overdraw
// the sender. Both legs are applied inside one critical section and persisted
// with a single save, so no observer ever sees the debit without the credit.
func (s *Service) Transfer(fromID, toID string, amount int64) (fromBalance, toBalance int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.getOrCreateLocked(fromID)
	s.getOrCreateLocked(toID)

	if from.Balance < amount {
		return 0, 0, ErrInsufficientFunds
	}

	fromBalance = s.applyDeltaLocked(fromID, -amount, KindTransferOut)
	toBalance = s.applyDeltaLocked(toID, amount, KindTransferIn)
	s.persistLocked()
	return fromBalance, toBalance, nil
}

// ApplyDeltaBulk credits every listed account with the same amount, appending
// one transaction per account but saving the ledger only once. Used for
// role-wide grants.
func (s *Service) ApplyDeltaBulk(ids []string, amount int64, kind TransactionKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		s.applyDeltaLocked(id, amount, kind)
	}
	s.persistLocked()
	return len(ids)
}

// Account returns a copy of an existing account without creating it.
func (s *Service) Account(id string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.ledger.Users[id]
	if !ok {
		return Account{}, false
	}
	return *acct, true
}

// TopAccounts returns up to limit accounts ordered by balance, highest first.
func (s *Service) TopAccounts(limit int) []Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]Account, 0, len(s.ledger.Users))
	for _, acct := range s.ledger.Users {
		accounts = append(accounts, *acct)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Balance != accounts[j].Balance {
			return accounts[i].Balance > accounts[j].Balance
		}
		return accounts[i].ID < accounts[j].ID
	})
	if limit > 0 && len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts
}

// Transactions returns a copy of the transaction log for an account, in
// chronological order. An empty id returns the whole log.
func (s *Service) Transactions(id string) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, 0)
	for _, tx := range s.ledger.Transactions {
		if id == "" || tx.AccountID == id {
			out = append(out, tx)
		}
	}
	return out
}

// Flush persists the current state. Used on shutdown and by the periodic
// autosave loop.
func (s *Service) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(s.ledger)
}

// AutoSave flushes the ledger on a fixed interval until ctx is cancelled. It
// is a safety net against a missed per-mutation save and always returns nil
// so it can run under an errgroup without tearing the process down.
func (s *Service) AutoSave(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Flush(); err != nil {
				slog.Error("Periodic ledger flush failed",
					slog.String("type", "store"),
					slog.Any("error", err))
			} else {
				slog.Debug("Ledger autosaved",
					slog.String("type", "store"),
					slog.String("path", s.store.Path()))
			}
		}
	}
}

func (s *Service) getOrCreateLocked(id string) *Account {
	if acct, ok := s.ledger.Users[id]; ok {
		return acct
	}
	acct := &Account{
		ID:        id,
		Balance:   s.initialBalance,
		CreatedAt: time.Now().UTC(),
	}
	s.ledger.Users[id] = acct
	return acct
}

func (s *Service) applyDeltaLocked(id string, amount int64, kind TransactionKind) int64 {
	acct := s.getOrCreateLocked(id)
	acct.Balance += amount
	if amount > 0 {
		acct.TotalEarned += amount
	} else if amount < 0 {
		acct.TotalSpent += -amount
	}

	s.ledger.Transactions = append(s.ledger.Transactions, Transaction{
		ID:        uuid.NewString(),
		AccountID: id,
		Amount:    amount,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	})
	return acct.Balance
}

func (s *Service) persistLocked() {
	if err := s.store.Save(s.ledger); err != nil {
		slog.Error("Failed to persist ledger, in-memory state remains authoritative",
			slog.String("type", "store"),
			slog.Any("error", err))
	}
}
