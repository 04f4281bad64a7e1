package chinchiro

import (
	"math/rand"
	"time"
)

const maxAttempts = 3

// Side identifies who is rolling in a duel.
type Side int

const (
	SidePlayer Side = iota
	SideHouse
)

func (s Side) String() string {
	if s == SideHouse {
		return "house"
	}
	return "player"
}

// Roll is one completed 3-die throw together with its classification.
type Roll struct {
	Faces [3]int
	Hand  Hand
}

// SideResult is the full record of one side's turn: every roll made, and the
// hand the side ends up with.
type SideResult struct {
	Rolls []Roll
	Final Hand
}

// Game produces duel turns. The roll source is a field so tests can feed
// deterministic face sequences.
type Game struct {
	roll func() [3]int
}

func NewGame() *Game {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Game{
		roll: func() [3]int {
			return [3]int{rng.Intn(6) + 1, rng.Intn(6) + 1, rng.Intn(6) + 1}
		},
	}
}

// PlaySide rolls up to three times, stopping as soon as a scoring hand comes
// up. If all three attempts score nothing, the side is stuck with No-Hand
// from the last throw.
func (g *Game) PlaySide() SideResult {
	var result SideResult
	for attempt := 0; attempt < maxAttempts; attempt++ {
		faces := g.roll()
		roll := Roll{Faces: faces, Hand: Classify(faces[0], faces[1], faces[2])}
		result.Rolls = append(result.Rolls, roll)
		result.Final = roll.Hand
		if roll.Hand.Scoring() {
			break
		}
	}
	return result
}

// Settle computes the signed payout for the player given both final hands and
// the stake. The rules are checked in strict order: the 1-2-3 and 4-5-6
// straights dominate everything, triple ones beats all remaining hands at 5x,
// point hands compare by value at 1x, and any other triple pays 3x against a
// hand that could not beat it. Everything left over is a push.
func Settle(player, house Hand, amount int64) int64 {
	switch {
	case player.Kind == HandStraight123 && house.Kind == HandStraight123:
		return 0
	case player.Kind == HandStraight123:
		return -2 * amount
	case house.Kind == HandStraight123:
		return 2 * amount

	case player.Kind == HandStraight456 && house.Kind == HandStraight456:
		return 0
	case player.Kind == HandStraight456:
		return 2 * amount
	case house.Kind == HandStraight456:
		return -2 * amount

	case player.Kind == HandTripleOnes && house.Kind != HandTripleOnes:
		return 5 * amount
	case house.Kind == HandTripleOnes && player.Kind != HandTripleOnes:
		return -5 * amount

	case player.Kind == HandPoint && house.Kind == HandPoint:
		switch {
		case player.Point > house.Point:
			return amount
		case player.Point < house.Point:
			return -amount
		default:
			return 0
		}
	case player.Kind == HandPoint && house.Kind == HandNone:
		return amount
	case house.Kind == HandPoint && player.Kind == HandNone:
		return -amount

	case player.Kind == HandTriple && house.Kind != HandTriple:
		return 3 * amount
	case house.Kind == HandTriple && player.Kind != HandTriple:
		return -3 * amount

	default:
		return 0
	}
}
