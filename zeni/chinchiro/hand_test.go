package chinchiro

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		faces    [3]int
		wantName string
		wantMult int
	}{
		{name: "triple ones", faces: [3]int{1, 1, 1}, wantName: "Triple-Ones", wantMult: 5},
		{name: "high straight", faces: [3]int{4, 5, 6}, wantName: "Straight-456", wantMult: 2},
		{name: "high straight shuffled", faces: [3]int{6, 4, 5}, wantName: "Straight-456", wantMult: 2},
		{name: "low straight", faces: [3]int{1, 2, 3}, wantName: "Straight-123", wantMult: -2},
		{name: "triple threes", faces: [3]int{3, 3, 3}, wantName: "Triple-3", wantMult: 3},
		{name: "triple sixes", faces: [3]int{6, 6, 6}, wantName: "Triple-6", wantMult: 3},
		{name: "point from low pair", faces: [3]int{1, 1, 4}, wantName: "Point-4", wantMult: 4},
		{name: "point from high pair", faces: [3]int{5, 4, 4}, wantName: "Point-5", wantMult: 5},
		{name: "point one", faces: [3]int{1, 6, 6}, wantName: "Point-1", wantMult: 1},
		{name: "no hand", faces: [3]int{1, 2, 5}, wantName: "No-Hand", wantMult: 0},
		{name: "no hand mixed", faces: [3]int{2, 4, 6}, wantName: "No-Hand", wantMult: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.faces[0], tt.faces[1], tt.faces[2])
			if got.Label() != tt.wantName {
				t.Errorf("Classify(%v).Label() = %q, want %q", tt.faces, got.Label(), tt.wantName)
			}
			if got.Multiplier != tt.wantMult {
				t.Errorf("Classify(%v).Multiplier = %d, want %d", tt.faces, got.Multiplier, tt.wantMult)
			}
		})
	}
}

// Every possible roll must classify, and every permutation of the same faces
// must classify identically.
func TestClassifyTotality(t *testing.T) {
	validNames := map[string]bool{
		"Triple-Ones": true, "Straight-456": true, "Straight-123": true, "No-Hand": true,
	}
	for n := 1; n <= 6; n++ {
		validNames["Triple-"+string(rune('0'+n))] = true
		validNames["Point-"+string(rune('0'+n))] = true
	}

	for a := 1; a <= 6; a++ {
		for b := 1; b <= 6; b++ {
			for c := 1; c <= 6; c++ {
				base := Classify(a, b, c)
				if !validNames[base.Label()] {
					t.Fatalf("Classify(%d,%d,%d) produced unknown hand %q", a, b, c, base.Label())
				}

				perms := [][3]int{
					{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
				}
				for _, p := range perms {
					got := Classify(p[0], p[1], p[2])
					if got.Kind != base.Kind || got.Point != base.Point ||
						got.Multiplier != base.Multiplier || got.Label() != base.Label() {
						t.Errorf("Classify(%v) = %v, want %v as for %v", p, got, base, [3]int{a, b, c})
					}
				}
			}
		}
	}
}

func TestHandScoring(t *testing.T) {
	if Classify(2, 4, 6).Scoring() {
		t.Error("No-Hand must not end the turn")
	}
	for _, faces := range [][3]int{{1, 1, 1}, {4, 5, 6}, {1, 2, 3}, {2, 2, 2}, {3, 3, 5}} {
		if !Classify(faces[0], faces[1], faces[2]).Scoring() {
			t.Errorf("hand for %v must end the turn", faces)
		}
	}
}
