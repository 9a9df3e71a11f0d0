package engine

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Center squares by side: the central pawn-advance squares nearest the
// mover's own color (d4/e4 for White, d5/e5 for Black).
const (
	squareD4 = uint8(27)
	squareE4 = uint8(28)
	squareD5 = uint8(35)
	squareE5 = uint8(36)
)

// PositionKey is the piece-placement field of the FEN encoding.
// Positions that differ only in side to move, castling rights or move
// counters share a key, so book entries transpose across them.
func PositionKey(b *dragontoothmg.Board) string {
	return strings.Fields(b.ToFen())[0]
}

// pieceTypeOn reports the piece type standing on sq, for either color.
func pieceTypeOn(b *dragontoothmg.Board, sq uint8) dragontoothmg.Piece {
	bit := uint64(1) << sq
	for _, bb := range [2]*dragontoothmg.Bitboards{&b.White, &b.Black} {
		if bb.All&bit == 0 {
			continue
		}
		switch {
		case bb.Pawns&bit != 0:
			return dragontoothmg.Pawn
		case bb.Knights&bit != 0:
			return dragontoothmg.Knight
		case bb.Bishops&bit != 0:
			return dragontoothmg.Bishop
		case bb.Rooks&bit != 0:
			return dragontoothmg.Rook
		case bb.Queens&bit != 0:
			return dragontoothmg.Queen
		default:
			return dragontoothmg.King
		}
	}
	return dragontoothmg.Nothing
}

// isCastling detects castling as a two-file king move, either side.
func isCastling(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	from := uint8(m.From())
	to := uint8(m.To())
	if pieceTypeOn(b, from) != dragontoothmg.King {
		return false
	}
	fileDiff := int(from%8) - int(to%8)
	return fileDiff == 2 || fileDiff == -2
}

// movesLandingOn counts the moves in the list whose destination is sq.
func movesLandingOn(moves []dragontoothmg.Move, sq uint8) int {
	n := 0
	for _, m := range moves {
		if uint8(m.To()) == sq {
			n++
		}
	}
	return n
}

// findMoveByString resolves a coordinate-notation string against the
// legal-move list, the way the UCI front end resolves client moves.
func findMoveByString(moves []dragontoothmg.Move, s string) (dragontoothmg.Move, bool) {
	for _, m := range moves {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// ResolveMove matches a coordinate string against the current legal
// moves, falling back to from/to/promotion comparison for encodings
// that stringify differently (castling as king moves, for one).
func ResolveMove(b *dragontoothmg.Board, moveStr string) (dragontoothmg.Move, bool) {
	legalMoves := b.GenerateLegalMoves()
	if m, ok := findMoveByString(legalMoves, moveStr); ok {
		return m, true
	}
	parsed, err := dragontoothmg.ParseMove(moveStr)
	if err != nil {
		return 0, false
	}
	for _, mv := range legalMoves {
		if mv.From() == parsed.From() && mv.To() == parsed.To() && mv.Promote() == parsed.Promote() {
			return mv, true
		}
	}
	return 0, false
}

// ParseFen wraps the rules engine's parser, which panics on malformed
// input, into an error return. The shape check up front also rejects
// strings the parser would silently misread.
func ParseFen(fen string) (board dragontoothmg.Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || strings.Count(fields[0], "/") != 7 ||
		(fields[1] != "w" && fields[1] != "b") {
		return board, fmt.Errorf("bad fen %q", fen)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bad fen %q: %v", fen, r)
		}
	}()
	board = dragontoothmg.ParseFen(fen)
	return board, nil
}

// GameOver reports whether the rules engine considers the game
// finished: no legal moves (mate or stalemate) or the fifty-move
// counter has run out.
func GameOver(b *dragontoothmg.Board) bool {
	if b.Halfmoveclock >= 100 {
		return true
	}
	return len(b.GenerateLegalMoves()) == 0
}
