//////////////////////////////////////////////////////
// sfen.go
// SFEN text codec for positions and moves
//////////////////////////////////////////////////////

package shogi

import (
	"strconv"
	"strings"
)

// Sfen renders pos as an SFEN string: the initial board/side/hands/ply
// it was constructed with, followed by a "moves" suffix listing every
// move played since, if any. A position with no history renders
// exactly the record it was built from.
func (pos *Position) Sfen() string {
	if len(pos.history) == 0 {
		return pos.initialSfen
	}
	var sb strings.Builder
	sb.WriteString(pos.initialSfen)
	sb.WriteString(" moves")
	for _, rec := range pos.history {
		sb.WriteByte(' ')
		sb.WriteString(rec.Move.String())
	}
	return sb.String()
}

// formatPositionFields renders pos's current board, side to move,
// hands and ply, without any "moves" suffix. Used to capture the
// initial record a freshly built Position is anchored to, which Sfen()
// then returns (plus any "moves" suffix).
func formatPositionFields(pos *Position) string {
	var sb strings.Builder
	sb.WriteString(formatBoard(pos))
	sb.WriteByte(' ')
	sb.WriteString(pos.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(formatHands(pos))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.ply))
	return sb.String()
}

func formatBoard(pos *Position) string {
	var sb strings.Builder
	for rank := 1; rank <= 9; rank++ {
		empty := 0
		for file := 9; file >= 1; file-- {
			sq, _ := NewSquare(file, rank)
			p := pos.board[sq]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank != 9 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func formatHands(pos *Position) string {
	black := pos.hands[Black].String(Black)
	white := pos.hands[White].String(White)
	if black == "" && white == "" {
		return "-"
	}
	return black + white
}

// ParseSfen parses a full SFEN record ("board side hands ply") into a
// fresh Position, applying a trailing "moves m1 m2 ..." suffix if
// present to reach the final position. On error the returned Position
// is nil and pos is left untouched; malformed input never partially
// mutates state.
func ParseSfen(s string) (*Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return nil, newSfenError(ErrEmptyString, s)
	}
	pos := NewPosition()
	if err := parseBoard(pos, fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "b":
		pos.sideToMove = Black
	case "w":
		pos.sideToMove = White
	default:
		return nil, newSfenError(ErrBadSide, fields[1])
	}
	if err := parseHands(pos, fields[2]); err != nil {
		return nil, err
	}
	pos.ply = 1
	movesIdx := -1
	if len(fields) >= 4 {
		if fields[3] == "moves" {
			movesIdx = 4
		} else {
			n, err := strconv.Atoi(fields[3])
			if err != nil || n < 1 {
				return nil, newSfenError(ErrBadPly, fields[3])
			}
			pos.ply = n
			if len(fields) >= 5 {
				if fields[4] != "moves" {
					return nil, newSfenError(ErrBadMoveToken, fields[4])
				}
				movesIdx = 5
			}
		}
	}
	pos.initialSfen = formatPositionFields(pos)
	pos.recordRepetition()
	if movesIdx >= 0 {
		for _, tok := range fields[movesIdx:] {
			m, err := MoveFromString(tok)
			if err != nil {
				return nil, newSfenError(ErrBadMoveToken, tok)
			}
			if err := pos.MakeMove(m); err != nil {
				return nil, newSfenError(ErrBadMoveToken, tok)
			}
		}
	}
	return pos, nil
}

func parseBoard(pos *Position, s string) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 9 {
		return newSfenError(ErrUnbalancedBoard, s)
	}
	for r, rankStr := range ranks {
		rank := r + 1
		file := 9
		i := 0
		for i < len(rankStr) {
			c := rankStr[i]
			if c >= '1' && c <= '9' {
				n := int(c - '0')
				file -= n
				i++
				continue
			}
			promoted := false
			if c == '+' {
				promoted = true
				i++
				if i >= len(rankStr) {
					return newSfenError(ErrUnknownPiece, s)
				}
				c = rankStr[i]
			}
			base, ok := PieceTypeFromLetter(upper(c))
			if !ok {
				return newSfenError(ErrUnknownPiece, s)
			}
			pt := base
			if promoted {
				if !base.IsPromotable() {
					return newSfenError(ErrUnknownPiece, s)
				}
				pt = base.Promote()
			}
			color := Black
			if c >= 'a' && c <= 'z' {
				color = White
			}
			if file < 1 {
				return newSfenError(ErrUnbalancedBoard, s)
			}
			sq, ok := NewSquare(file, rank)
			if !ok {
				return newSfenError(ErrUnbalancedBoard, s)
			}
			pos.place(NewPiece(pt, color), sq)
			file--
			i++
		}
		if file != 0 {
			return newSfenError(ErrUnbalancedBoard, s)
		}
	}
	return nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func parseHands(pos *Position, s string) error {
	if s == "-" {
		return nil
	}
	i := 0
	for i < len(s) {
		count := 1
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i > start {
			n, err := strconv.Atoi(s[start:i])
			if err != nil {
				return newSfenError(ErrBadHand, s)
			}
			count = n
		}
		if i >= len(s) {
			return newSfenError(ErrBadHand, s)
		}
		c := s[i]
		i++
		base, ok := PieceTypeFromLetter(upper(c))
		if !ok || base.IsPromoted() {
			return newSfenError(ErrBadHand, s)
		}
		color := Black
		if c >= 'a' && c <= 'z' {
			color = White
		}
		for k := 0; k < count; k++ {
			if !pos.addHand(color, base) {
				return newSfenError(ErrBadHand, s)
			}
		}
	}
	return nil
}

// SfenOfMove renders m in USI/SFEN move notation.
func SfenOfMove(m Move) string {
	return m.String()
}
