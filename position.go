//////////////////////////////////////////////////////
// position.go
// the board, both hands, and move generation/execution
//////////////////////////////////////////////////////

package shogi

// Position is a single shogi position: the board, both hands, whose
// turn it is, and enough history to unmake moves and detect
// repetition. A Position is owned by exactly one caller; it is not
// safe for concurrent use without external synchronization.
type Position struct {
	board      [SquareArraySize]Piece
	byColor    [ColorArraySize]Bitboard
	byType     [PieceTypeArraySize]Bitboard
	hands      [ColorArraySize]Hand
	sideToMove Color
	ply        int
	kingSquare [ColorArraySize]Square

	history     []MoveRecord
	hash        uint64
	hashCounts  map[uint64]int

	// initialSfen is the SFEN rendering of board/side/hands/ply as they
	// stood before any move in history was applied. Sfen() reconstructs
	// the full record from this plus the "moves" suffix.
	initialSfen string
}

// NewPosition returns an empty position with Black to move. Callers
// typically follow with PutStartingPosition or ParseSfen.
func NewPosition() *Position {
	pos := &Position{
		sideToMove: Black,
		kingSquare: [ColorArraySize]Square{NoSquare, NoSquare},
		hashCounts: make(map[uint64]int),
	}
	for i := range pos.board {
		pos.board[i] = NoPiece
	}
	return pos
}

// PutStartingPosition resets pos to the standard shogi starting
// array, Black to move, empty hands, ply 1.
func (pos *Position) PutStartingPosition() {
	*pos = *NewPosition()
	back := []PieceType{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}
	for file := 1; file <= 9; file++ {
		whiteBack, _ := NewSquare(file, 1)
		pos.place(NewPiece(back[file-1], White), whiteBack)
		blackBack, _ := NewSquare(file, 9)
		pos.place(NewPiece(back[file-1], Black), blackBack)

		whitePawn, _ := NewSquare(file, 3)
		pos.place(NewPiece(Pawn, White), whitePawn)
		blackPawn, _ := NewSquare(file, 7)
		pos.place(NewPiece(Pawn, Black), blackPawn)
	}
	wBishop, _ := NewSquare(2, 2)
	wRook, _ := NewSquare(8, 2)
	pos.place(NewPiece(Bishop, White), wBishop)
	pos.place(NewPiece(Rook, White), wRook)

	bRook, _ := NewSquare(2, 8)
	bBishop, _ := NewSquare(8, 8)
	pos.place(NewPiece(Rook, Black), bRook)
	pos.place(NewPiece(Bishop, Black), bBishop)

	pos.ply = 1
	pos.initialSfen = formatPositionFields(pos)
	pos.recordRepetition()
}

// PieceAt returns the piece on sq, or NoPiece if empty.
func (pos *Position) PieceAt(sq Square) Piece {
	return pos.board[sq]
}

// SideToMove returns whose turn it is.
func (pos *Position) SideToMove() Color {
	return pos.sideToMove
}

// Ply returns the 1-based move number about to be played.
func (pos *Position) Ply() int {
	return pos.ply
}

// HandOf returns a copy of the hand held by c.
func (pos *Position) HandOf(c Color) Hand {
	return pos.hands[c]
}

// Occupied returns the set of all occupied squares.
func (pos *Position) Occupied() Bitboard {
	return pos.byColor[Black].Union(pos.byColor[White])
}

// Hash returns the current zobrist hash of the position.
func (pos *Position) Hash() uint64 {
	return pos.hash
}

func handKeyIndex(n int) int {
	if n < 0 {
		return 0
	}
	if n > 18 {
		return 18
	}
	return n
}

// place puts p on sq, which must currently be empty, updating
// bitboards and the incremental hash. It is the only code path
// allowed to write a non-empty square, so the board/bitboard/hash
// invariants cannot desync.
func (pos *Position) place(p Piece, sq Square) {
	pos.board[sq] = p
	lane, bit := laneOf(sq)
	pos.byColor[p.Color].p[lane] |= bit
	pos.byType[p.Type].p[lane] |= bit
	pos.hash ^= zobristPiece[p.Color][p.Type][sq]
	if p.Type == King {
		pos.kingSquare[p.Color] = sq
	}
}

// clear empties sq, returning whatever piece was there (NoPiece if
// already empty).
func (pos *Position) clear(sq Square) Piece {
	p := pos.board[sq]
	if p.IsEmpty() {
		return p
	}
	pos.board[sq] = NoPiece
	lane, bit := laneOf(sq)
	pos.byColor[p.Color].p[lane] &^= bit
	pos.byType[p.Type].p[lane] &^= bit
	pos.hash ^= zobristPiece[p.Color][p.Type][sq]
	if p.Type == King {
		pos.kingSquare[p.Color] = NoSquare
	}
	return p
}

func (pos *Position) addHand(c Color, pt PieceType) bool {
	base := pt.Unpromote()
	before := pos.hands[c].Count(base)
	if !pos.hands[c].Add(base) {
		return false
	}
	pos.hash ^= zobristHand[c][base][handKeyIndex(before)]
	pos.hash ^= zobristHand[c][base][handKeyIndex(before+1)]
	return true
}

func (pos *Position) removeHand(c Color, pt PieceType) bool {
	base := pt.Unpromote()
	before := pos.hands[c].Count(base)
	if !pos.hands[c].Remove(base) {
		return false
	}
	pos.hash ^= zobristHand[c][base][handKeyIndex(before)]
	pos.hash ^= zobristHand[c][base][handKeyIndex(before-1)]
	return true
}

func (pos *Position) flipSideToMove() {
	pos.sideToMove = pos.sideToMove.Flip()
	pos.hash ^= zobristColor
}

// IsInCheck reports whether c's king is currently attacked. It
// returns false if c has no king on the board (a position built
// directly via place without a king, e.g. in a test fixture).
func (pos *Position) IsInCheck(c Color) bool {
	king := pos.kingSquare[c]
	if king == NoSquare {
		return false
	}
	return !pos.AttackersTo(king, c.Flip()).Empty()
}

// AttackersTo returns every square holding a piece of color by that
// attacks sq, given the current occupancy.
func (pos *Position) AttackersTo(sq Square, by Color) Bitboard {
	var out Bitboard
	occ := pos.Occupied()
	for from, rest := pos.byColor[by].PopLSB(); from != NoSquare; from, rest = rest.PopLSB() {
		p := pos.board[from]
		if Attacks(p, from, occ).Has(sq) {
			out = out.With(from)
		}
	}
	return out
}

// PlayerBB returns every square holding a piece of color c.
func (pos *Position) PlayerBB(c Color) Bitboard {
	return pos.byColor[c]
}

// FindKing returns c's king square and true, or NoSquare and false if
// c has no king on the board.
func (pos *Position) FindKing(c Color) (Square, bool) {
	king := pos.kingSquare[c]
	return king, king != NoSquare
}

// PinnedBB returns every square holding a piece of color c that is
// pinned: removing it would expose c's own king to a slider's attack
// along the line between them. For each enemy slider, the squares
// strictly between it and the king are checked for exactly one
// occupant; if that occupant belongs to c and the slider's attack set
// would reach the king once that occupant is removed from the
// occupancy, it is pinned.
func (pos *Position) PinnedBB(c Color) Bitboard {
	king := pos.kingSquare[c]
	if king == NoSquare {
		return EmptyBitboard
	}
	var pinned Bitboard
	occ := pos.Occupied()
	enemy := pos.byColor[c.Flip()]
	for _, pt := range []PieceType{Lance, Bishop, Rook, ProBishop, ProRook} {
		attackers := enemy.Intersect(pos.byType[pt])
		for sq, rest := attackers.PopLSB(); sq != NoSquare; sq, rest = rest.PopLSB() {
			blockers := Between(sq, king).Intersect(occ)
			if blockers.Count() != 1 {
				continue
			}
			blocker := blockers.LSB()
			if !pos.byColor[c].Has(blocker) {
				continue
			}
			if Attacks(pos.board[sq], sq, occ.Without(blocker)).Has(king) {
				pinned = pinned.With(blocker)
			}
		}
	}
	return pinned
}

func mustPromote(pt PieceType, c Color, to Square) bool {
	rank := to.Rank()
	switch pt {
	case Pawn, Lance:
		return (c == Black && rank == 1) || (c == White && rank == 9)
	case Knight:
		return (c == Black && rank <= 2) || (c == White && rank >= 8)
	}
	return false
}

func canPromote(pt PieceType, c Color, from, to Square) bool {
	if !pt.IsPromotable() {
		return false
	}
	zone := PromotionZone(c)
	return zone.Has(from) || zone.Has(to)
}

// pseudoLegalBoardMoves returns every structurally valid board move
// for color c, without checking whether it leaves c's own king in
// check.
func (pos *Position) pseudoLegalBoardMoves(c Color) []Move {
	var moves []Move
	occ := pos.Occupied()
	for from, rest := pos.byColor[c].PopLSB(); from != NoSquare; from, rest = rest.PopLSB() {
		p := pos.board[from]
		targets := Attacks(p, from, occ).Diff(pos.byColor[c])
		for to, trest := targets.PopLSB(); to != NoSquare; to, trest = trest.PopLSB() {
			if mustPromote(p.Type, c, to) {
				moves = append(moves, NewNormalMove(from, to, true))
				continue
			}
			if canPromote(p.Type, c, from, to) {
				moves = append(moves, NewNormalMove(from, to, true))
			}
			moves = append(moves, NewNormalMove(from, to, false))
		}
	}
	return moves
}

// pseudoLegalDrops returns every structurally valid drop for color c:
// an empty destination, a piece available in hand, no nifu, and not
// dropped somewhere it would have no future move.
func (pos *Position) pseudoLegalDrops(c Color) []Move {
	var moves []Move
	empty := pos.Occupied().Complement()
	for _, pt := range handOrder {
		if pos.hands[c].Count(pt) == 0 {
			continue
		}
		for to, rest := empty.PopLSB(); to != NoSquare; to, rest = rest.PopLSB() {
			if mustPromote(pt, c, to) {
				continue // no legal move from here unpromoted, and drops never promote
			}
			if pt == Pawn && pos.hasUnpromotedPawnOnFile(c, to.File()) {
				continue // nifu
			}
			moves = append(moves, NewDropMove(pt, to))
		}
	}
	return moves
}

func (pos *Position) hasUnpromotedPawnOnFile(c Color, file int) bool {
	pawns := pos.byType[Pawn].Intersect(pos.byColor[c])
	for sq, rest := pawns.PopLSB(); sq != NoSquare; sq, rest = rest.PopLSB() {
		if sq.File() == file {
			return true
		}
	}
	return false
}

// applyMoveRaw mutates pos to reflect m without any legality checking
// and returns the record needed to undo it. Both MakeMove and the
// king-safety trial in LegalMoves go through this single path.
func (pos *Position) applyMoveRaw(m Move) MoveRecord {
	c := pos.sideToMove
	captured := NoPiece
	if m.IsDrop {
		pos.removeHand(c, m.Dropped)
		pos.place(NewPiece(m.Dropped, c), m.To)
	} else {
		p := pos.clear(m.From)
		captured = pos.clear(m.To)
		if !captured.IsEmpty() {
			pos.addHand(c, captured.Type.Unpromote())
		}
		newType := p.Type
		if m.Promote {
			newType = newType.Promote()
		}
		pos.place(NewPiece(newType, c), m.To)
	}
	pos.flipSideToMove()
	pos.ply++
	rec := MoveRecord{Move: m, Captured: captured}
	pos.history = append(pos.history, rec)
	pos.recordRepetition()
	return rec
}

// undoMoveRaw reverses the most recent applyMoveRaw call.
func (pos *Position) undoMoveRaw() {
	n := len(pos.history)
	if n == 0 {
		return
	}
	pos.forgetRepetition()
	rec := pos.history[n-1]
	pos.history = pos.history[:n-1]
	pos.ply--
	pos.flipSideToMove()
	c := pos.sideToMove
	m := rec.Move
	if m.IsDrop {
		pos.clear(m.To)
		pos.addHand(c, m.Dropped)
	} else {
		moved := pos.clear(m.To)
		baseType := moved.Type
		if m.Promote {
			baseType = baseType.Unpromote()
		}
		pos.place(NewPiece(baseType, c), m.From)
		if !rec.Captured.IsEmpty() {
			pos.place(rec.Captured, m.To)
			pos.removeHand(c, rec.Captured.Type.Unpromote())
		}
	}
}

func (pos *Position) recordRepetition() {
	pos.hashCounts[pos.hash]++
}

func (pos *Position) forgetRepetition() {
	if n := pos.hashCounts[pos.hash]; n <= 1 {
		delete(pos.hashCounts, pos.hash)
	} else {
		pos.hashCounts[pos.hash] = n - 1
	}
}

// Clone returns a deep copy of pos, independent of the original.
func (pos *Position) Clone() *Position {
	cp := *pos
	cp.history = append([]MoveRecord(nil), pos.history...)
	cp.hashCounts = make(map[uint64]int, len(pos.hashCounts))
	for k, v := range pos.hashCounts {
		cp.hashCounts[k] = v
	}
	return &cp
}

// isSelfCheckAfter reports whether playing m leaves the mover's own
// king in check. m is applied to a scratch clone; pos is not modified.
func (pos *Position) isSelfCheckAfter(mover Color, m Move) bool {
	scratch := pos.Clone()
	scratch.applyMoveRaw(m)
	return scratch.IsInCheck(mover)
}

// wouldBeUchifuzume reports whether dropping a pawn with move m (a
// Drop of Pawn) delivers an unanswerable checkmate: after the drop,
// the opponent is in check and has zero legal responses. The
// recursion this requires is bounded to exactly one ply: the
// opponent's replies are filtered for king safety only, without
// re-entering the uchifuzume check for any pawn drop among them.
func (pos *Position) wouldBeUchifuzume(m Move) bool {
	mover := pos.sideToMove
	opponent := mover.Flip()
	scratch := pos.Clone()
	scratch.applyMoveRaw(m)
	if !scratch.IsInCheck(opponent) {
		return false
	}
	replies := append(scratch.pseudoLegalBoardMoves(opponent), scratch.pseudoLegalDrops(opponent)...)
	for _, r := range replies {
		if !scratch.isSelfCheckAfter(opponent, r) {
			return false
		}
	}
	return true
}

// LegalMoves returns every legal move for the side to move: pseudo-
// legal board moves and drops, filtered to those that do not leave
// the mover's own king in check, with pawn drops additionally
// filtered for uchifuzume.
func (pos *Position) LegalMoves() []Move {
	c := pos.sideToMove
	candidates := append(pos.pseudoLegalBoardMoves(c), pos.pseudoLegalDrops(c)...)
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if pos.isSelfCheckAfter(c, m) {
			continue
		}
		if m.IsDrop && m.Dropped == Pawn && pos.wouldBeUchifuzume(m) {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

// LegalMovesFrom returns the destination squares of every legal board
// move starting at sq. Drops have no meaningful From and are never
// included.
func (pos *Position) LegalMovesFrom(sq Square) Bitboard {
	var out Bitboard
	for _, m := range pos.LegalMoves() {
		if !m.IsDrop && m.From == sq {
			out = out.With(m.To)
		}
	}
	return out
}

// pseudoLegalCheck validates the structural preconditions of m
// without checking king safety: source/destination consistency,
// promotion legality, hand availability, and nifu.
func (pos *Position) pseudoLegalCheck(m Move) error {
	c := pos.sideToMove
	if m.IsDrop {
		if pos.hands[c].Count(m.Dropped) == 0 {
			return newMoveError(ErrEmptyHand, m)
		}
		if !pos.board[m.To].IsEmpty() {
			return newMoveError(ErrDestinationBlockedByOwn, m)
		}
		if mustPromote(m.Dropped, c, m.To) {
			return newMoveError(ErrNonMovableLocation, m)
		}
		if m.Dropped == Pawn && pos.hasUnpromotedPawnOnFile(c, m.To.File()) {
			return newMoveError(ErrNifu, m)
		}
		return nil
	}
	p := pos.board[m.From]
	if p.IsEmpty() || p.Color != c {
		return newMoveError(ErrInconsistent, m)
	}
	if pos.board[m.To].Color == c && !pos.board[m.To].IsEmpty() {
		return newMoveError(ErrDestinationBlockedByOwn, m)
	}
	occ := pos.Occupied()
	if !Attacks(p, m.From, occ).Has(m.To) {
		return newMoveError(ErrNotLegal, m)
	}
	if m.Promote && !canPromote(p.Type, c, m.From, m.To) {
		return newMoveError(ErrPromotionNotAllowed, m)
	}
	if !m.Promote && mustPromote(p.Type, c, m.To) {
		return newMoveError(ErrIllegalPromotion, m)
	}
	return nil
}

// MakeMove validates m and, if legal, applies it to pos. On
// rejection pos is left unmodified.
func (pos *Position) MakeMove(m Move) error {
	if err := pos.pseudoLegalCheck(m); err != nil {
		return err
	}
	mover := pos.sideToMove
	if pos.isSelfCheckAfter(mover, m) {
		return newMoveError(ErrInCheck, m)
	}
	if m.IsDrop && m.Dropped == Pawn && pos.wouldBeUchifuzume(m) {
		return newMoveError(ErrUchifuzume, m)
	}
	pos.applyMoveRaw(m)
	return nil
}

// UnmakeMove reverses the most recently applied move. If pos has no
// history it returns an error and leaves pos unchanged.
func (pos *Position) UnmakeMove() error {
	if len(pos.history) == 0 {
		return newMoveError(ErrNotLegal, Move{})
	}
	pos.undoMoveRaw()
	return nil
}

// IsCheckmate reports whether the side to move is in check with no
// legal response.
func (pos *Position) IsCheckmate() bool {
	return pos.IsInCheck(pos.sideToMove) && len(pos.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal move
// while not in check. Standard shogi has no stalemate-draw rule (a
// player with no legal moves and not in check loses, same as
// checkmate for scoring purposes), but the predicate is exposed so a
// caller can distinguish the two terminal shapes.
func (pos *Position) IsStalemate() bool {
	return !pos.IsInCheck(pos.sideToMove) && len(pos.LegalMoves()) == 0
}

// majorPiece reports whether pt is worth 5 points under the
// entering-king point count (bishop, rook, and their promotions).
func majorPiece(pt PieceType) bool {
	switch pt {
	case Bishop, Rook, ProBishop, ProRook:
		return true
	}
	return false
}

// EnteringKingThreshold returns the point total c's king must help
// accumulate to declare a win by entering the king (nyūgyoku), under
// the asymmetric 27-point rule: 28 for Black, 27 for White.
func EnteringKingThreshold(c Color) int {
	if c == Black {
		return 28
	}
	return 27
}

// EnteringKingEligible reports whether c may declare a win by
// entering the king: king not in check, king inside the promotion
// zone, at least 10 pieces of c (besides the king) in that zone, and
// their point total meeting EnteringKingThreshold(c).
func (pos *Position) EnteringKingEligible(c Color) bool {
	king := pos.kingSquare[c]
	if king == NoSquare || pos.IsInCheck(c) {
		return false
	}
	zone := PromotionZone(c)
	if !zone.Has(king) {
		return false
	}
	pieces := zone.Intersect(pos.byColor[c])
	count := 0
	points := 0
	for sq, rest := pieces.PopLSB(); sq != NoSquare; sq, rest = rest.PopLSB() {
		p := pos.board[sq]
		if p.Type == King {
			continue
		}
		count++
		if majorPiece(p.Type) {
			points += 5
		} else {
			points++
		}
	}
	return count >= 10 && points >= EnteringKingThreshold(c)
}

// RepetitionStatus classifies the outcome of the current position's
// repetition count.
type RepetitionStatus int

const (
	NoRepetition RepetitionStatus = iota
	Sennichite                    // fourfold repetition, drawn
	PerpetualCheckLoss            // fourfold repetition under perpetual check, the checking side loses
)

// Repetition reports whether the current position has occurred four
// or more times. If so, and every move made by the side that moved
// last since the position's previous occurrence gave check, it is
// scored as a perpetual-check loss for the checking side rather than a
// plain sennichite draw.
func (pos *Position) Repetition() RepetitionStatus {
	if pos.hashCounts[pos.hash] < 4 {
		return NoRepetition
	}
	if pos.perpetualCheckSinceRepetitionStart() {
		return PerpetualCheckLoss
	}
	return Sennichite
}

// perpetualCheckSinceRepetitionStart reports whether, walking back
// through history from the current position to its previous
// occurrence of the same hash, one fixed color (whoever moved last to
// reach the current position) delivered check on every one of its own
// moves in that span. checkingColor is that color; a ply's check
// status is read off the position the ply produced, before that ply
// is undone, so each of checkingColor's moves is judged by what it
// actually did rather than by the position one step further back.
func (pos *Position) perpetualCheckSinceRepetitionStart() bool {
	checkingColor := pos.sideToMove.Flip()
	scratch := pos.Clone()
	madeACheckingMove := false
	for len(scratch.history) > 0 {
		mover := scratch.sideToMove.Flip()
		deliveredCheck := scratch.IsInCheck(scratch.sideToMove)
		scratch.undoMoveRaw()
		if mover == checkingColor {
			if !deliveredCheck {
				return false
			}
			madeACheckingMove = true
		}
		if scratch.hash == pos.hash {
			return madeACheckingMove
		}
	}
	return false
}
