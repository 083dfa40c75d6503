package shogi

import "testing"

func init() {
	InitAttackTables()
}

// TestRookAttacks_OpenFileAndRank verifies a rook in the center of an
// empty board attacks its full file and rank.
func TestRookAttacks_OpenFileAndRank(t *testing.T) {
	center, _ := NewSquare(5, 5)
	attacks := RookAttacks(center, EmptyBitboard)
	if attacks.Count() != 16 {
		t.Fatalf("open-board rook attack count = %d, want 16", attacks.Count())
	}
	edge, _ := NewSquare(5, 1)
	if !attacks.Has(edge) {
		t.Fatal("rook should reach the far edge of its file on an empty board")
	}
}

// TestRookAttacks_StopsAtBlocker verifies occupancy truncates the ray
// at (and including) the first blocker.
func TestRookAttacks_StopsAtBlocker(t *testing.T) {
	rook, _ := NewSquare(5, 5)
	blocker, _ := NewSquare(5, 3)
	beyond, _ := NewSquare(5, 1)
	attacks := RookAttacks(rook, BitboardOf(blocker))
	if !attacks.Has(blocker) {
		t.Fatal("rook should attack the blocking square itself")
	}
	if attacks.Has(beyond) {
		t.Fatal("rook should not see past the blocker")
	}
}

// TestBishopAttacks_Diagonals verifies a center bishop on an empty
// board attacks exactly its four open diagonals.
func TestBishopAttacks_Diagonals(t *testing.T) {
	center, _ := NewSquare(5, 5)
	attacks := BishopAttacks(center, EmptyBitboard)
	corner, _ := NewSquare(1, 1)
	if !attacks.Has(corner) {
		t.Fatal("bishop on 5e should reach corner 1a on an empty board")
	}
	straight, _ := NewSquare(5, 1)
	if attacks.Has(straight) {
		t.Fatal("bishop should not attack along a file")
	}
}

// TestLanceAttacks_ColorDependentDirection verifies Black's lance
// attacks toward rank 1 and White's toward rank 9.
func TestLanceAttacks_ColorDependentDirection(t *testing.T) {
	from, _ := NewSquare(5, 5)
	forward, _ := NewSquare(5, 1)
	backward, _ := NewSquare(5, 9)

	blackAttacks := LanceAttacks(Black, from, EmptyBitboard)
	if !blackAttacks.Has(forward) || blackAttacks.Has(backward) {
		t.Fatal("black lance should attack toward rank 1 only")
	}
	whiteAttacks := LanceAttacks(White, from, EmptyBitboard)
	if !whiteAttacks.Has(backward) || whiteAttacks.Has(forward) {
		t.Fatal("white lance should attack toward rank 9 only")
	}
}

// TestPawnAttacks_OneSquareForward verifies the pawn's single-square
// forward attack, mirrored by color.
func TestPawnAttacks_OneSquareForward(t *testing.T) {
	from, _ := NewSquare(5, 5)
	blackTarget, _ := NewSquare(5, 4)
	whiteTarget, _ := NewSquare(5, 6)

	if got := PawnAttacks(Black, from); !got.Has(blackTarget) || got.Count() != 1 {
		t.Fatal("black pawn should attack exactly one square forward (decreasing rank)")
	}
	if got := PawnAttacks(White, from); !got.Has(whiteTarget) || got.Count() != 1 {
		t.Fatal("white pawn should attack exactly one square forward (increasing rank)")
	}
}

// TestKnightAttacks_Count verifies a centrally placed knight has two
// landing squares.
func TestKnightAttacks_Count(t *testing.T) {
	from, _ := NewSquare(5, 5)
	if got := KnightAttacks(Black, from); got.Count() != 2 {
		t.Fatalf("knight attack count = %d, want 2", got.Count())
	}
}

// TestHorseAttacks_BishopPlusKingStep verifies a promoted bishop's
// attack set is its bishop rays plus the surrounding king steps.
func TestHorseAttacks_BishopPlusKingStep(t *testing.T) {
	from, _ := NewSquare(5, 5)
	straight, _ := NewSquare(5, 4)
	horse := HorseAttacks(from, EmptyBitboard)
	if !horse.Has(straight) {
		t.Fatal("horse should additionally attack one square straight ahead")
	}
}

// TestBetween_AlignedSquares verifies Between returns the squares
// strictly interposed on a straight line.
func TestBetween_AlignedSquares(t *testing.T) {
	a, _ := NewSquare(5, 9)
	mid, _ := NewSquare(5, 5)
	b, _ := NewSquare(5, 1)
	between := Between(a, b)
	if !between.Has(mid) {
		t.Fatal("5e should be between 5i and 5a")
	}
	if between.Has(a) || between.Has(b) {
		t.Fatal("Between should exclude the endpoints")
	}
}

// TestPromotionZone_ThreeRanksPerColor verifies each color's
// promotion zone has exactly 27 squares and the zones are disjoint.
func TestPromotionZone_ThreeRanksPerColor(t *testing.T) {
	black := PromotionZone(Black)
	white := PromotionZone(White)
	if black.Count() != 27 || white.Count() != 27 {
		t.Fatalf("promotion zones should have 27 squares each, got %d and %d", black.Count(), white.Count())
	}
	if !black.Intersect(white).Empty() {
		t.Fatal("promotion zones should not overlap")
	}
}
