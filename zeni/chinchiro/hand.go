package chinchiro

import (
	"fmt"
	"sort"
)

// HandKind is the closed set of chinchiro hand categories.
type HandKind int

const (
	HandNone HandKind = iota
	HandPoint
	HandStraight123
	HandTriple
	HandStraight456
	HandTripleOnes
)

// Hand is the classified outcome of one 3-die roll. Point carries the point
// value for point hands and the repeated face for triples; it is zero
// otherwise. Multiplier is the signed payout factor the hand carries on its
// own: +5 triple ones, +2 for 4-5-6, +3 for other triples, -2 for 1-2-3
// (instant loss), +point for point hands, 0 for no hand.
type Hand struct {
	Faces      [3]int
	Kind       HandKind
	Point      int
	Multiplier int
}

// Classify maps three die faces onto a hand. Input order does not matter.
// The rule order is significant: triple ones and 4-5-6 outrank the generic
// triple and straight checks, and the pair checks assume a sorted triple.
func Classify(a, b, c int) Hand {
	faces := [3]int{a, b, c}
	f := faces
	sort.Ints(f[:])

	switch {
	case f == [3]int{1, 1, 1}:
		return Hand{Faces: faces, Kind: HandTripleOnes, Point: 1, Multiplier: 5}
	case f == [3]int{4, 5, 6}:
		return Hand{Faces: faces, Kind: HandStraight456, Multiplier: 2}
	case f[0] == f[1] && f[1] == f[2]:
		return Hand{Faces: faces, Kind: HandTriple, Point: f[0], Multiplier: 3}
	case f == [3]int{1, 2, 3}:
		return Hand{Faces: faces, Kind: HandStraight123, Multiplier: -2}
	case f[0] == f[1]:
		// Lower pair, the high die is the point.
		return Hand{Faces: faces, Kind: HandPoint, Point: f[2], Multiplier: f[2]}
	case f[1] == f[2]:
		// Upper pair, the low die is the point.
		return Hand{Faces: faces, Kind: HandPoint, Point: f[0], Multiplier: f[0]}
	default:
		return Hand{Faces: faces, Kind: HandNone}
	}
}

// Label returns the display name of the hand.
func (h Hand) Label() string {
	switch h.Kind {
	case HandTripleOnes:
		return "Triple-Ones"
	case HandStraight456:
		return "Straight-456"
	case HandTriple:
		return fmt.Sprintf("Triple-%d", h.Point)
	case HandStraight123:
		return "Straight-123"
	case HandPoint:
		return fmt.Sprintf("Point-%d", h.Point)
	default:
		return "No-Hand"
	}
}

// Scoring reports whether the hand ends a side's turn. Anything but No-Hand
// does, including the instant-loss 1-2-3 straight.
func (h Hand) Scoring() bool {
	return h.Kind != HandNone
}
