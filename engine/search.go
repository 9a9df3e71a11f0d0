package engine

import (
	"math"

	"github.com/dylhunn/dragontoothmg"
)

// EvalFunc scores a leaf position for the maximizing side at the root.
type EvalFunc func(*dragontoothmg.Board) float64

// Search is the depth-bounded minimax with alpha-beta pruning. Depth
// is fixed for the lifetime of the search object; there is no
// iterative deepening and no time control, so every call terminates.
type Search struct {
	Depth    int
	Evaluate EvalFunc
}

// BestMove runs the root of the search. The root always plays the
// maximizing role; each root move is searched with full-width bounds
// and the first move reaching the strictly best value wins ties.
// Every move is applied and undone around its own recursive call, so
// the caller's board is bit-for-bit unchanged when this returns.
func (s *Search) BestMove(b *dragontoothmg.Board) (dragontoothmg.Move, bool) {
	var bestMove dragontoothmg.Move
	bestScore := math.Inf(-1)
	found := false

	for _, move := range b.GenerateLegalMoves() {
		unapply := b.Apply(move)
		score := s.alphabeta(b, s.Depth-1, math.Inf(-1), math.Inf(1), false)
		unapply()

		if !found || score > bestScore {
			bestScore = score
			bestMove = move
			found = true
		}
	}
	return bestMove, found
}

func (s *Search) alphabeta(b *dragontoothmg.Board, depth int, alpha, beta float64, maximizing bool) float64 {
	if depth <= 0 {
		return s.Evaluate(b)
	}

	// A side with no moves keeps the role's identity value, which
	// makes mated (and stalemated) lines maximally unattractive for
	// whoever ran out of moves.
	if maximizing {
		best := math.Inf(-1)
		for _, move := range b.GenerateLegalMoves() {
			unapply := b.Apply(move)
			score := s.alphabeta(b, depth-1, alpha, beta, false)
			unapply()

			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range b.GenerateLegalMoves() {
		unapply := b.Apply(move)
		score := s.alphabeta(b, depth-1, alpha, beta, true)
		unapply()

		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
