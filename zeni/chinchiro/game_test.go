package chinchiro

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/zenibot/zeni/zeni/ledger"
)

func hand(a, b, c int) Hand { return Classify(a, b, c) }

func TestSettle(t *testing.T) {
	const stake = int64(100)

	tests := []struct {
		name   string
		player Hand
		house  Hand
		want   int64
	}{
		{name: "both low straight tie", player: hand(1, 2, 3), house: hand(3, 2, 1), want: 0},
		{name: "player low straight loses double", player: hand(1, 2, 3), house: hand(2, 2, 4), want: -200},
		{name: "house low straight wins double", player: hand(2, 4, 6), house: hand(1, 2, 3), want: 200},
		{name: "both high straight tie", player: hand(4, 5, 6), house: hand(6, 5, 4), want: 0},
		{name: "player high straight wins double", player: hand(4, 5, 6), house: hand(6, 6, 6), want: 200},
		{name: "house high straight loses double", player: hand(1, 1, 1), house: hand(4, 5, 6), want: -200},
		{name: "triple ones wins five-fold", player: hand(1, 1, 1), house: hand(5, 5, 5), want: 500},
		{name: "house triple ones pays five-fold", player: hand(6, 6, 6), house: hand(1, 1, 1), want: -500},
		{name: "both triple ones tie", player: hand(1, 1, 1), house: hand(1, 1, 1), want: 0},
		{name: "higher point wins", player: hand(2, 2, 6), house: hand(3, 3, 4), want: 100},
		{name: "lower point loses", player: hand(5, 5, 2), house: hand(1, 1, 5), want: -100},
		{name: "equal points tie", player: hand(2, 2, 4), house: hand(6, 6, 4), want: 0},
		{name: "point beats no hand", player: hand(3, 3, 1), house: hand(2, 4, 6), want: 100},
		{name: "no hand loses to point", player: hand(1, 3, 5), house: hand(4, 4, 2), want: -100},
		{name: "triple beats point", player: hand(4, 4, 4), house: hand(2, 2, 6), want: 300},
		{name: "point loses to triple", player: hand(2, 2, 6), house: hand(4, 4, 4), want: -300},
		{name: "triple beats no hand", player: hand(2, 2, 2), house: hand(1, 3, 6), want: 300},
		{name: "both triples tie", player: hand(2, 2, 2), house: hand(6, 6, 6), want: 0},
		{name: "both no hand tie", player: hand(1, 2, 5), house: hand(2, 4, 6), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Settle(tt.player, tt.house, stake); got != tt.want {
				t.Errorf("Settle(%s, %s, %d) = %d, want %d",
					tt.player.Label(), tt.house.Label(), stake, got, tt.want)
			}
		})
	}
}

// Swapping the two sides must negate the payout for every hand pairing.
func TestSettleAntisymmetry(t *testing.T) {
	hands := []Hand{
		hand(1, 1, 1), hand(4, 5, 6), hand(1, 2, 3),
		hand(2, 2, 2), hand(5, 5, 5),
		hand(2, 2, 3), hand(4, 4, 6), hand(6, 6, 1),
		hand(1, 2, 5), hand(2, 4, 6),
	}
	for _, p := range hands {
		for _, h := range hands {
			forward := Settle(p, h, 100)
			backward := Settle(h, p, 100)
			if forward != -backward {
				t.Errorf("Settle(%s, %s) = %d but Settle(%s, %s) = %d",
					p.Label(), h.Label(), forward, h.Label(), p.Label(), backward)
			}
		}
	}
}

// scriptedGame feeds a fixed sequence of throws.
func scriptedGame(rolls ...[3]int) *Game {
	i := 0
	return &Game{roll: func() [3]int {
		r := rolls[i]
		i++
		return r
	}}
}

func TestPlaySideStopsOnScoringHand(t *testing.T) {
	tests := []struct {
		name      string
		rolls     [][3]int
		wantRolls int
		wantFinal string
	}{
		{
			name:      "first throw scores",
			rolls:     [][3]int{{5, 5, 3}, {1, 1, 1}, {1, 1, 1}},
			wantRolls: 1,
			wantFinal: "Point-3",
		},
		{
			name:      "instant loss still ends the turn",
			rolls:     [][3]int{{1, 2, 3}, {6, 6, 6}, {6, 6, 6}},
			wantRolls: 1,
			wantFinal: "Straight-123",
		},
		{
			name:      "scores on the third throw",
			rolls:     [][3]int{{1, 2, 4}, {2, 3, 5}, {6, 6, 6}},
			wantRolls: 3,
			wantFinal: "Triple-6",
		},
		{
			name:      "three blanks keep no hand",
			rolls:     [][3]int{{1, 2, 4}, {2, 3, 5}, {1, 3, 5}},
			wantRolls: 3,
			wantFinal: "No-Hand",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scriptedGame(tt.rolls...).PlaySide()
			if len(got.Rolls) != tt.wantRolls {
				t.Errorf("PlaySide() made %d rolls, want %d", len(got.Rolls), tt.wantRolls)
			}
			if got.Final.Label() != tt.wantFinal {
				t.Errorf("PlaySide() final hand = %q, want %q", got.Final.Label(), tt.wantFinal)
			}
		})
	}
}

func newTestManager(t *testing.T, balance int64, rolls ...[3]int) *Manager {
	t.Helper()
	store := ledger.NewStore(filepath.Join(t.TempDir(), "ledger.json"), false)
	svc, err := ledger.NewService(store, 0)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if balance > 0 {
		svc.ApplyDelta("player", balance, ledger.KindAdminIssue)
	}
	m := NewManager(svc, time.Minute)
	m.game = scriptedGame(rolls...)
	return m
}

func TestRunTripleOnesWinsFiveFold(t *testing.T) {
	m := newTestManager(t, 1000,
		[3]int{1, 1, 1},                                    // player: ends immediately
		[3]int{2, 4, 6}, [3]int{1, 3, 5}, [3]int{2, 3, 6}, // house: three blanks
	)

	if !m.Begin("player") {
		t.Fatal("Begin() on a fresh user must succeed")
	}

	var events []RollEvent
	res, err := m.Run("player", 1000, func(ev RollEvent) { events = append(events, ev) })
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Player.Final.Label() != "Triple-Ones" {
		t.Errorf("player hand = %q, want Triple-Ones", res.Player.Final.Label())
	}
	if res.Payout != 5000 {
		t.Errorf("payout = %d, want 5000", res.Payout)
	}
	if res.NewBalance != 6000 {
		t.Errorf("new balance = %d, want 6000", res.NewBalance)
	}
	if len(events) != 4 {
		t.Errorf("got %d roll events, want 4", len(events))
	}
	if !events[0].Last || events[0].Side != SidePlayer {
		t.Errorf("first event = %+v, want final player roll", events[0])
	}
	if !events[3].Last || events[3].Side != SideHouse {
		t.Errorf("last event = %+v, want final house roll", events[3])
	}
}

func TestRunRejectsBadStakes(t *testing.T) {
	m := newTestManager(t, 500)
	if !m.Begin("player") {
		t.Fatal("Begin() on a fresh user must succeed")
	}

	if _, err := m.Run("player", 0, nil); err != ErrInvalidStake {
		t.Errorf("Run(stake=0) error = %v, want ErrInvalidStake", err)
	}
	if _, err := m.Run("player", 1000, nil); err != ledger.ErrInsufficientFunds {
		t.Errorf("Run(stake>balance) error = %v, want ErrInsufficientFunds", err)
	}
	if acct, _ := m.ledger.Account("player"); acct.Balance != 500 {
		t.Errorf("balance after rejected duels = %d, want 500", acct.Balance)
	}
}

// A stake button can be pressed long after the selection timed out; once the
// cleanup loop reaped the session, the duel must refuse to start.
func TestRunRefusesReapedSession(t *testing.T) {
	m := newTestManager(t, 5000, [3]int{1, 1, 1})

	if !m.Begin("player") {
		t.Fatal("Begin() on a fresh user must succeed")
	}
	m.sessions["player"] = time.Now().Add(-2 * time.Minute)
	m.reapExpired()

	if _, err := m.Run("player", 1000, nil); err != ErrSessionExpired {
		t.Errorf("Run() after reap error = %v, want ErrSessionExpired", err)
	}
	if acct, _ := m.ledger.Account("player"); acct.Balance != 5000 {
		t.Errorf("balance after refused duel = %d, want 5000", acct.Balance)
	}
	if !m.Begin("player") {
		t.Error("Begin() must succeed again after the reaper cleared the session")
	}
}

func TestSessionLifecycle(t *testing.T) {
	m := newTestManager(t, 0)

	if !m.Begin("u1") {
		t.Fatal("Begin() on a fresh user must succeed")
	}
	if m.Begin("u1") {
		t.Error("Begin() must refuse a second concurrent session")
	}
	if !m.Active("u1") {
		t.Error("Active() = false for an open session")
	}
	m.End("u1")
	if m.Active("u1") {
		t.Error("Active() = true after End()")
	}

	m.sessions["u2"] = time.Now().Add(-2 * time.Minute)
	m.reapExpired()
	if m.Active("u2") {
		t.Error("expired session survived the reaper")
	}
}
