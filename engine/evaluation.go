package engine

import (
	"math/bits"
	"math/rand"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// Material values in centipawns, indexed by dragontoothmg.Piece.
// The king carries no material weight; losing it is handled by the
// search running out of legal moves.
var pieceValue = [7]float64{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 320,
	dragontoothmg.Bishop: 330,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
	dragontoothmg.King:   0,
}

// Evaluator scores leaf positions by material balance plus a small
// random jitter so otherwise-equal positions don't tie exactly.
type Evaluator struct {
	rng *rand.Rand
}

// NewEvaluator builds an evaluator around the given random source.
// Passing nil seeds one from the clock.
func NewEvaluator(rng *rand.Rand) *Evaluator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Evaluator{rng: rng}
}

// Score returns MaterialScore plus a fresh jitter term drawn
// uniformly from the half-open interval [-1, 1); the upper endpoint
// is never produced. Repeated calls on the identical position yield
// different values.
func (e *Evaluator) Score(b *dragontoothmg.Board) float64 {
	return MaterialScore(b) + e.rng.Float64()*2 - 1
}

// MaterialScore is the deterministic part of the evaluation:
//
//	-(white - black) - penalty
//
// where penalty = 0.1*(white - black), applied only while white holds
// the material lead. The asymmetry dampens lines where the evaluated
// side is already ahead as White; it is kept as-is on purpose.
func MaterialScore(b *dragontoothmg.Board) float64 {
	white := sideMaterial(&b.White)
	black := sideMaterial(&b.Black)
	score := -(white - black)
	if black < white {
		score -= 0.1 * (white - black)
	}
	return score
}

func sideMaterial(bb *dragontoothmg.Bitboards) float64 {
	return float64(bits.OnesCount64(bb.Pawns))*pieceValue[dragontoothmg.Pawn] +
		float64(bits.OnesCount64(bb.Knights))*pieceValue[dragontoothmg.Knight] +
		float64(bits.OnesCount64(bb.Bishops))*pieceValue[dragontoothmg.Bishop] +
		float64(bits.OnesCount64(bb.Rooks))*pieceValue[dragontoothmg.Rook] +
		float64(bits.OnesCount64(bb.Queens))*pieceValue[dragontoothmg.Queen]
}
