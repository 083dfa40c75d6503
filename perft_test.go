package shogi

import "testing"

// TestPerft_StartingPositionDepthOne verifies the published depth-1
// node count from the standard starting position.
func TestPerft_StartingPositionDepthOne(t *testing.T) {
	InitAttackTables()
	pos := NewPosition()
	pos.PutStartingPosition()
	if got := Perft(pos, 1); got != 30 {
		t.Fatalf("perft(1) = %d, want 30", got)
	}
}

// TestPerft_StartingPositionDepthTwo verifies the published depth-2
// node count from the standard starting position.
func TestPerft_StartingPositionDepthTwo(t *testing.T) {
	InitAttackTables()
	pos := NewPosition()
	pos.PutStartingPosition()
	if got := Perft(pos, 2); got != 900 {
		t.Fatalf("perft(2) = %d, want 900", got)
	}
}

// TestPerft_DepthZeroIsOne verifies the degenerate base case.
func TestPerft_DepthZeroIsOne(t *testing.T) {
	InitAttackTables()
	pos := NewPosition()
	pos.PutStartingPosition()
	if got := Perft(pos, 0); got != 1 {
		t.Fatalf("perft(0) = %d, want 1", got)
	}
}
