package shogi

import "testing"

// TestBitboard_MembershipAcrossLanes verifies With/Has for squares on
// both sides of the lane-63 boundary.
func TestBitboard_MembershipAcrossLanes(t *testing.T) {
	low, _ := NewSquare(1, 1)    // square 0, lane 0
	high, _ := NewSquare(9, 9)   // square 80, lane 1
	bb := BitboardOf(low, high)
	if !bb.Has(low) || !bb.Has(high) {
		t.Fatal("both squares should be members")
	}
	if bb.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", bb.Count())
	}
}

// TestBitboard_WithoutRemovesOnlyTarget verifies Without does not
// disturb other members.
func TestBitboard_WithoutRemovesOnlyTarget(t *testing.T) {
	a, _ := NewSquare(3, 3)
	b, _ := NewSquare(8, 1)
	bb := BitboardOf(a, b).Without(a)
	if bb.Has(a) {
		t.Fatal("a should have been removed")
	}
	if !bb.Has(b) {
		t.Fatal("b should still be a member")
	}
}

// TestBitboard_SetAlgebra verifies Union/Intersect/Diff/Complement
// against a small known set.
func TestBitboard_SetAlgebra(t *testing.T) {
	a1, _ := NewSquare(1, 1)
	a2, _ := NewSquare(2, 2)
	a3, _ := NewSquare(3, 3)
	x := BitboardOf(a1, a2)
	y := BitboardOf(a2, a3)

	if u := x.Union(y); u.Count() != 3 {
		t.Fatalf("Union count = %d, want 3", u.Count())
	}
	if i := x.Intersect(y); !i.Has(a2) || i.Count() != 1 {
		t.Fatal("Intersect should contain exactly a2")
	}
	if d := x.Diff(y); !d.Has(a1) || d.Has(a2) {
		t.Fatal("Diff should contain a1 but not a2")
	}
	if x.Complement().Has(a1) {
		t.Fatal("Complement should not contain a member of x")
	}
}

// TestBitboard_PopLSBAscendingOrder verifies PopLSB/Squares enumerate
// in ascending square order.
func TestBitboard_PopLSBAscendingOrder(t *testing.T) {
	s1, _ := NewSquare(1, 1)
	s2, _ := NewSquare(1, 5)
	s3, _ := NewSquare(9, 9)
	bb := BitboardOf(s3, s1, s2)
	got := bb.Squares()
	want := []Square{s1, s2, s3}
	if len(got) != len(want) {
		t.Fatalf("got %d squares, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Squares()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestBitboard_ShiftStopsAtEdge verifies shifting a corner square off
// the board produces an empty set rather than wrapping to another file.
func TestBitboard_ShiftStopsAtEdge(t *testing.T) {
	corner, _ := NewSquare(1, 1)
	bb := BitboardOf(corner)
	if shifted := bb.shift(dirN); !shifted.Empty() {
		t.Fatal("shifting off the top edge should yield an empty set")
	}
}
