//////////////////////////////////////////////////////
// hand.go
// captured pieces held off the board, ready to drop
//////////////////////////////////////////////////////

package shogi

import (
	"fmt"
	"strings"
)

// handCaps is the maximum number of each base piece type that can
// exist in a single hand: the full supply of that type in a starting
// set (e.g. 18 pawns, 4 lances, ... 2 rooks); a king is never held.
var handCaps = [PieceTypeArraySize]int{
	Pawn: 18, Lance: 4, Knight: 4, Silver: 4, Gold: 4, Bishop: 2, Rook: 2,
}

// handOrder is the canonical SFEN hand ordering: rook, bishop, gold,
// silver, knight, lance, pawn.
var handOrder = []PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// Hand is a per-color multiset of base piece types held off the board.
type Hand struct {
	counts [PieceTypeArraySize]int
}

// Count returns how many of pt are held. pt is normalized to its base
// form first.
func (h Hand) Count(pt PieceType) int {
	return h.counts[pt.Unpromote()]
}

// Add adds one piece of pt (normalized to base form) to the hand. It
// reports false if doing so would exceed the supply cap, leaving h
// unmodified.
func (h *Hand) Add(pt PieceType) bool {
	base := pt.Unpromote()
	if h.counts[base]+1 > handCaps[base] {
		return false
	}
	h.counts[base]++
	return true
}

// Remove removes one piece of pt (normalized to base form) from the
// hand. It reports false if none are held.
func (h *Hand) Remove(pt PieceType) bool {
	base := pt.Unpromote()
	if h.counts[base] == 0 {
		return false
	}
	h.counts[base]--
	return true
}

// Empty reports whether the hand holds no pieces at all.
func (h Hand) Empty() bool {
	for _, pt := range handOrder {
		if h.counts[pt] > 0 {
			return false
		}
	}
	return true
}

// String renders the hand in SFEN hand notation for color c, e.g. "B2P"
// for Black or "b2p" for White (count digit omitted when it's 1). An
// empty hand renders as "".
func (h Hand) String(c Color) string {
	var sb strings.Builder
	for _, pt := range handOrder {
		n := h.counts[pt]
		if n == 0 {
			continue
		}
		letter := pieceTypeToLetter[pt]
		s := string(letter)
		if c == White {
			s = strLower(s)
		}
		if n > 1 {
			fmt.Fprintf(&sb, "%d%s", n, s)
		} else {
			sb.WriteString(s)
		}
	}
	return sb.String()
}
