package shogi

import (
	"errors"
	"testing"
)

// TestSfenError_IsMatchesOnKindOnly verifies errors.Is compares by
// Kind and ignores the offending token.
func TestSfenError_IsMatchesOnKindOnly(t *testing.T) {
	err := newSfenError(ErrBadPly, "xyz")
	if !errors.Is(err, &SfenError{Kind: ErrBadPly}) {
		t.Fatal("errors.Is should match on Kind alone")
	}
	if errors.Is(err, &SfenError{Kind: ErrBadSide}) {
		t.Fatal("errors.Is should not match a different Kind")
	}
}

// TestMoveError_IsMatchesOnKindOnly verifies the same contract for
// MoveError.
func TestMoveError_IsMatchesOnKindOnly(t *testing.T) {
	to, _ := NewSquare(5, 5)
	m := NewDropMove(Pawn, to)
	err := newMoveError(ErrNifu, m)
	if !errors.Is(err, &MoveError{Kind: ErrNifu}) {
		t.Fatal("errors.Is should match on Kind alone")
	}
	if errors.Is(err, &MoveError{Kind: ErrUchifuzume}) {
		t.Fatal("errors.Is should not match a different Kind")
	}
}
