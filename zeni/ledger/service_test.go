package ledger

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestService(t *testing.T, initialBalance int64) (*Service, *Store) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "ledger.json"), false)
	svc, err := NewService(store, initialBalance)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, store
}

func TestGetOrCreate(t *testing.T) {
	svc, _ := newTestService(t, 50)

	first := svc.GetOrCreate("abc")
	if first.Balance != 50 {
		t.Errorf("new account balance = %d, want 50", first.Balance)
	}
	if first.TotalEarned != 0 || first.TotalSpent != 0 {
		t.Errorf("new account counters = %d/%d, want 0/0", first.TotalEarned, first.TotalSpent)
	}
	if first.CreatedAt.IsZero() {
		t.Error("new account has zero CreatedAt")
	}

	second := svc.GetOrCreate("abc")
	if second != first {
		t.Errorf("GetOrCreate() is not idempotent: %+v != %+v", second, first)
	}
}

func TestApplyDelta(t *testing.T) {
	svc, _ := newTestService(t, 0)

	if got := svc.ApplyDelta("abc", 1000, KindAdminIssue); got != 1000 {
		t.Errorf("ApplyDelta(+1000) = %d, want 1000", got)
	}
	acct, _ := svc.Account("abc")
	if acct.Balance != 1000 || acct.TotalEarned != 1000 || acct.TotalSpent != 0 {
		t.Errorf("after credit: %+v, want balance/earned 1000, spent 0", acct)
	}

	if got := svc.ApplyDelta("abc", -300, KindAdminReduce); got != 700 {
		t.Errorf("ApplyDelta(-300) = %d, want 700", got)
	}
	acct, _ = svc.Account("abc")
	if acct.TotalEarned != 1000 || acct.TotalSpent != 300 {
		t.Errorf("after debit: earned %d spent %d, want 1000/300", acct.TotalEarned, acct.TotalSpent)
	}

	// The primitive is unchecked: it may drive a balance negative.
	if got := svc.ApplyDelta("abc", -900, KindOther); got != -200 {
		t.Errorf("ApplyDelta below zero = %d, want -200", got)
	}

	txs := svc.Transactions("abc")
	if len(txs) != 3 {
		t.Fatalf("transaction log has %d entries, want 3", len(txs))
	}
	if txs[0].Kind != KindAdminIssue || txs[1].Kind != KindAdminReduce || txs[2].Kind != KindOther {
		t.Errorf("transaction kinds = %v %v %v", txs[0].Kind, txs[1].Kind, txs[2].Kind)
	}
}

func TestTransfer(t *testing.T) {
	svc, _ := newTestService(t, 0)
	svc.ApplyDelta("alice", 500, KindAdminIssue)

	fromBal, toBal, err := svc.Transfer("alice", "bob", 200)
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if fromBal != 300 || toBal != 200 {
		t.Errorf("Transfer() balances = %d/%d, want 300/200", fromBal, toBal)
	}

	txs := svc.Transactions("")
	last2 := txs[len(txs)-2:]
	if last2[0].Kind != KindTransferOut || last2[0].Amount != -200 {
		t.Errorf("debit leg = %+v", last2[0])
	}
	if last2[1].Kind != KindTransferIn || last2[1].Amount != 200 {
		t.Errorf("credit leg = %+v", last2[1])
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	svc, _ := newTestService(t, 0)
	svc.ApplyDelta("alice", 500, KindAdminIssue)
	svc.GetOrCreate("bob")
	before := len(svc.Transactions(""))

	_, _, err := svc.Transfer("alice", "bob", 700)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Transfer() error = %v, want ErrInsufficientFunds", err)
	}

	alice, _ := svc.Account("alice")
	bob, _ := svc.Account("bob")
	if alice.Balance != 500 || bob.Balance != 0 {
		t.Errorf("balances after failed transfer = %d/%d, want 500/0", alice.Balance, bob.Balance)
	}
	if got := len(svc.Transactions("")); got != before {
		t.Errorf("failed transfer appended %d log entries", got-before)
	}
}

// After any mix of operations, every balance must equal the initial balance
// plus everything earned minus everything spent.
func TestAuditCountersReconcile(t *testing.T) {
	const initial = int64(100)
	svc, _ := newTestService(t, initial)

	svc.ApplyDelta("a", 1000, KindAdminIssue)
	svc.ApplyDelta("b", 250, KindRoleIssue)
	svc.ApplyDelta("a", -400, KindWager)
	if _, _, err := svc.Transfer("a", "b", 300); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	if _, _, err := svc.Transfer("b", "c", 150); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	svc.ApplyDelta("c", -75, KindAdminReduce)

	for _, id := range []string{"a", "b", "c"} {
		acct, ok := svc.Account(id)
		if !ok {
			t.Fatalf("account %q missing", id)
		}
		if want := initial + acct.TotalEarned - acct.TotalSpent; acct.Balance != want {
			t.Errorf("account %q: balance %d, want %d (earned %d, spent %d)",
				id, acct.Balance, want, acct.TotalEarned, acct.TotalSpent)
		}
	}
}

func TestApplyDeltaBulk(t *testing.T) {
	svc, _ := newTestService(t, 0)

	n := svc.ApplyDeltaBulk([]string{"a", "b", "c"}, 100, KindRoleIssue)
	if n != 3 {
		t.Errorf("ApplyDeltaBulk() = %d, want 3", n)
	}
	for _, id := range []string{"a", "b", "c"} {
		if acct, _ := svc.Account(id); acct.Balance != 100 {
			t.Errorf("account %q balance = %d, want 100", id, acct.Balance)
		}
	}
	if got := len(svc.Transactions("")); got != 3 {
		t.Errorf("transaction log has %d entries, want 3", got)
	}
}

func TestTopAccounts(t *testing.T) {
	svc, _ := newTestService(t, 0)
	svc.ApplyDelta("low", 10, KindAdminIssue)
	svc.ApplyDelta("high", 1000, KindAdminIssue)
	svc.ApplyDelta("mid", 500, KindAdminIssue)

	top := svc.TopAccounts(2)
	if len(top) != 2 {
		t.Fatalf("TopAccounts(2) returned %d accounts", len(top))
	}
	if top[0].ID != "high" || top[1].ID != "mid" {
		t.Errorf("TopAccounts(2) = %s, %s; want high, mid", top[0].ID, top[1].ID)
	}
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "ledger.json"), false)
	svc, err := NewService(store, 0)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	svc.ApplyDelta("abc", 1234, KindAdminIssue)
	if _, _, err := svc.Transfer("abc", "def", 34); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}

	reloaded, err := NewService(store, 0)
	if err != nil {
		t.Fatalf("NewService() after restart error = %v", err)
	}
	acct, ok := reloaded.Account("abc")
	if !ok || acct.Balance != 1200 {
		t.Errorf("reloaded balance = %d (found %v), want 1200", acct.Balance, ok)
	}
	if got := len(reloaded.Transactions("")); got != 3 {
		t.Errorf("reloaded transaction log has %d entries, want 3", got)
	}
}
