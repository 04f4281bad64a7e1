package chinchiro

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/zenibot/zeni/zeni/ledger"
)

var (
	// ErrInvalidStake rejects zero or negative wagers before a duel starts.
	ErrInvalidStake = errors.New("stake must be positive")
	// ErrSessionActive means the user already has a duel or stake selection open.
	ErrSessionActive = errors.New("a dice session is already active")
	// ErrSessionExpired means the stake selection idled past the timeout and
	// the cleanup loop reaped the session before the duel started.
	ErrSessionExpired = errors.New("dice session expired")
)

// RollEvent is emitted once per completed throw so the caller can render the
// duel as it unfolds. Last marks the roll that fixed the side's final hand.
type RollEvent struct {
	Side    Side
	Attempt int
	Roll    Roll
	Last    bool
}

// Result is the fully computed outcome of a duel. Payout is the signed amount
// applied to the player's account (positive win, negative loss, zero push).
type Result struct {
	PlayerID   string
	Amount     int64
	Player     SideResult
	House      SideResult
	Payout     int64
	NewBalance int64
}

// Manager runs dice duels against the house and enforces one session per
// user. Sessions begin when the stake selection is shown and are reaped by
// the cleanup loop if the user walks away without choosing.
type Manager struct {
	ledger         *ledger.Service
	game           *Game
	mu             sync.Mutex
	sessions       map[string]time.Time
	sessionTimeout time.Duration
}

func NewManager(svc *ledger.Service, sessionTimeout time.Duration) *Manager {
	return &Manager{
		ledger:         svc,
		game:           NewGame(),
		sessions:       make(map[string]time.Time),
		sessionTimeout: sessionTimeout,
	}
}

// Begin opens a session for the user, failing if one is already active.
func (m *Manager) Begin(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, active := m.sessions[userID]; active {
		return false
	}
	m.sessions[userID] = time.Now()
	return true
}

// End releases the user's session.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Active reports whether the user currently holds a session.
func (m *Manager) Active(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, active := m.sessions[userID]
	return active
}

// CleanupLoop drops sessions whose stake selection timed out. Always returns
// nil so it can run under an errgroup alongside the other background loops.
func (m *Manager) CleanupLoop(ctx context.Context) error {
	ticker := time.NewTicker(m.sessionTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.reapExpired()
		}
	}
}

func (m *Manager) reapExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for userID, started := range m.sessions {
		if now.Sub(started) > m.sessionTimeout {
			delete(m.sessions, userID)
			slog.Debug("Expired idle dice session",
				slog.String("type", "game"),
				slog.String("user_id", userID))
		}
	}
}

// Run plays a full duel for the given stake: player side first, then the
// house, three attempts each, stopping on the first scoring hand. The caller
// must hold a session opened with Begin; a session the cleanup loop already
// reaped refuses to play, so stale stake buttons can't start a duel. The
// settlement is applied to the player's account exactly once, after both
// hands are final. onRoll, if non-nil, is called after every completed throw;
// intermediate rolls are never persisted.
func (m *Manager) Run(playerID string, amount int64, onRoll func(RollEvent)) (*Result, error) {
	if !m.Active(playerID) {
		return nil, ErrSessionExpired
	}
	if amount <= 0 {
		return nil, ErrInvalidStake
	}
	if acct := m.ledger.GetOrCreate(playerID); acct.Balance < amount {
		return nil, ledger.ErrInsufficientFunds
	}

	player := m.playSide(SidePlayer, onRoll)
	house := m.playSide(SideHouse, onRoll)

	payout := Settle(player.Final, house.Final, amount)
	newBalance := m.ledger.ApplyDelta(playerID, payout, ledger.KindWager)

	slog.Info("Dice duel settled",
		slog.String("type", "game"),
		slog.String("user_id", playerID),
		slog.Int64("stake", amount),
		slog.String("player_hand", player.Final.Label()),
		slog.String("house_hand", house.Final.Label()),
		slog.Int64("payout", payout))

	return &Result{
		PlayerID:   playerID,
		Amount:     amount,
		Player:     player,
		House:      house,
		Payout:     payout,
		NewBalance: newBalance,
	}, nil
}

func (m *Manager) playSide(side Side, onRoll func(RollEvent)) SideResult {
	result := m.game.PlaySide()
	if onRoll != nil {
		for i, roll := range result.Rolls {
			onRoll(RollEvent{
				Side:    side,
				Attempt: i + 1,
				Roll:    roll,
				Last:    i == len(result.Rolls)-1,
			})
		}
	}
	return result
}
