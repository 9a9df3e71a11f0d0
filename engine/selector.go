package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"go.uber.org/zap"
)

// Selector composes the three strategies in fixed priority order:
// opening book, heuristic opener, alpha-beta search. First success
// wins; the order is not configurable.
type Selector struct {
	book   *Book
	opener Opener
	search *Search
	log    *zap.SugaredLogger
}

// NewSelector wires a selector. The book may be nil (no book
// configured); a nil logger discards.
func NewSelector(book *Book, search *Search, log *zap.SugaredLogger) *Selector {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Selector{book: book, search: search, log: log}
}

// ChooseMove emits exactly one move for the side to move, or ok=false
// when the game is already over. It never mutates the board beyond the
// search's scoped apply/undo.
func (sel *Selector) ChooseMove(b *dragontoothmg.Board) (dragontoothmg.Move, bool) {
	if GameOver(b) {
		return 0, false
	}

	if sel.book != nil {
		if move, ok := sel.book.Lookup(b); ok {
			sel.log.Debugw("move from book", "move", move.String())
			return move, true
		}
	}

	if move, ok := sel.opener.Move(b); ok {
		sel.log.Debugw("move from opener", "move", move.String())
		return move, true
	}

	move, ok := sel.search.BestMove(b)
	if ok {
		sel.log.Debugw("move from search", "move", move.String(), "depth", sel.search.Depth)
	}
	return move, ok
}
