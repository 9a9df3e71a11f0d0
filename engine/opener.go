package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

// Opener is the no-search early-game heuristic. It makes a single pass
// over the legal moves in the rules engine's enumeration order and
// returns the first move that either occupies a center square safely,
// develops a minor piece safely, or castles.
type Opener struct{}

// Move returns the first legal move matching a heuristic rule, or
// ok=false so the caller falls through to search. Run twice on the
// same position it returns the same answer; the one-ply blunder probe
// never mutates the caller's board (it works on scratch copies).
func (Opener) Move(b *dragontoothmg.Board) (dragontoothmg.Move, bool) {
	center := []uint8{squareD4, squareE4}
	if !b.Wtomove {
		center = []uint8{squareD5, squareE5}
	}

	for _, m := range b.GenerateLegalMoves() {
		if slices.Contains(center, uint8(m.To())) && !losesPieceNextPly(b, m) {
			return m, true
		}
		mover := pieceTypeOn(b, uint8(m.From()))
		if (mover == dragontoothmg.Knight || mover == dragontoothmg.Bishop) && !losesPieceNextPly(b, m) {
			return m, true
		}
		if isCastling(b, m) {
			return m, true
		}
	}
	return 0, false
}

// losesPieceNextPly is the blunder probe: play the candidate on a
// scratch board and compare how many opponent moves land on the
// destination against how many of our own moves could reoccupy it.
// Attackers strictly outnumbering defenders classifies the move as a
// blunder. Piece values and deeper exchanges are ignored; this is a
// one-ply approximation of "is the square safely defended", not a
// static-exchange evaluation.
func losesPieceNextPly(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	// A king never blunders in this sense: it cannot legally step onto
	// an attacked square, and the probe below must not lift a king off
	// the board.
	if pieceTypeOn(b, uint8(m.From())) == dragontoothmg.King {
		return false
	}

	scratch := *b
	scratch.Apply(m)
	dest := uint8(m.To())
	attackers := movesLandingOn(scratch.GenerateLegalMoves(), dest)

	// Defender probe: hand the turn back and lift the moved piece off
	// its destination, then count our moves that reach the square.
	scratch.Wtomove = !scratch.Wtomove
	clearSquare(&scratch, dest)
	defenders := movesLandingOn(scratch.GenerateLegalMoves(), dest)

	return attackers > defenders
}

// clearSquare removes whatever stands on sq from both sides' boards.
// Only used on scratch copies inside the blunder probe.
func clearSquare(b *dragontoothmg.Board, sq uint8) {
	mask := ^(uint64(1) << sq)
	for _, bb := range [2]*dragontoothmg.Bitboards{&b.White, &b.Black} {
		bb.Pawns &= mask
		bb.Knights &= mask
		bb.Bishops &= mask
		bb.Rooks &= mask
		bb.Queens &= mask
		bb.Kings &= mask
		bb.All &= mask
	}
}
