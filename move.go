//////////////////////////////////////////////////////
// move.go
// the Move type: a normal board move or a hand drop
//////////////////////////////////////////////////////

package shogi

import "fmt"

// Move is a tagged union: either a Normal move (From -> To, optionally
// promoting) or a Drop (a piece from hand placed on To). IsDrop
// selects which fields are meaningful; From is NoSquare on a Drop.
type Move struct {
	From    Square
	To      Square
	Promote bool
	IsDrop  bool
	Dropped PieceType // meaningful only when IsDrop
}

// NewNormalMove builds a board move from from to to, optionally
// promoting.
func NewNormalMove(from, to Square, promote bool) Move {
	return Move{From: from, To: to, Promote: promote}
}

// NewDropMove builds a hand drop of pt onto to.
func NewDropMove(pt PieceType, to Square) Move {
	return Move{From: NoSquare, To: to, IsDrop: true, Dropped: pt}
}

func (m Move) String() string {
	if m.IsDrop {
		return fmt.Sprintf("%s*%s", m.Dropped, m.To)
	}
	if m.Promote {
		return fmt.Sprintf("%s%s+", m.From, m.To)
	}
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// MoveFromString parses USI/SFEN move notation: "7g7f", "8h2b+", or a
// drop "P*5e".
func MoveFromString(s string) (Move, error) {
	if len(s) == 4 && s[1] == '*' {
		pt, ok := PieceTypeFromLetter(s[0])
		if !ok {
			return Move{}, newSfenError(ErrBadMoveToken, s)
		}
		to, err := SquareFromString(s[2:4])
		if err != nil {
			return Move{}, newSfenError(ErrBadMoveToken, s)
		}
		return NewDropMove(pt, to), nil
	}
	if len(s) != 4 && len(s) != 5 {
		return Move{}, newSfenError(ErrBadMoveToken, s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return Move{}, newSfenError(ErrBadMoveToken, s)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return Move{}, newSfenError(ErrBadMoveToken, s)
	}
	promote := false
	if len(s) == 5 {
		if s[4] != '+' {
			return Move{}, newSfenError(ErrBadMoveToken, s)
		}
		promote = true
	}
	return NewNormalMove(from, to, promote), nil
}

// MoveRecord captures everything needed to unmake a move: the move
// itself plus the piece it captured (NoPiece if none). It is a tagged
// union mirroring Move's own tagging, stored one per ply in
// Position.history.
type MoveRecord struct {
	Move     Move
	Captured Piece
}
