package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func testSelector(t *testing.T, bookData string) *Selector {
	t.Helper()
	var bk *Book
	if bookData != "" {
		bk = testBook(t, bookData)
	}
	eval := NewEvaluator(rand.New(rand.NewSource(9)))
	return NewSelector(bk, &Search{Depth: 2, Evaluate: eval.Score}, nil)
}

func TestSelectorDoesNothingWhenGameIsOver(t *testing.T) {
	sel := testSelector(t, "")

	mated := dragontoothmg.ParseFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if move, ok := sel.ChooseMove(&mated); ok {
		t.Fatalf("selector moved in a finished game: %v", move)
	}

	exhausted := dragontoothmg.ParseFen("4k3/8/8/8/8/8/8/4K2R w - - 100 80")
	if move, ok := sel.ChooseMove(&exhausted); ok {
		t.Fatalf("selector moved after the fifty-move draw: %v", move)
	}
}

func TestSelectorPrefersBookOverEverything(t *testing.T) {
	// A move neither the opener nor the search would favor proves the
	// book answered.
	sel := testSelector(t, startposKey+",a2a3\n")
	b := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	move, ok := sel.ChooseMove(&b)
	if !ok || move.String() != "a2a3" {
		t.Fatalf("got %v/%v, want the book's a2a3", move, ok)
	}
}

func TestSelectorFallsBackToOpener(t *testing.T) {
	sel := testSelector(t, "")
	b := dragontoothmg.ParseFen(dragontoothmg.Startpos)

	want, wantOK := Opener{}.Move(&b)
	got, gotOK := sel.ChooseMove(&b)
	if !wantOK || !gotOK || got != want {
		t.Fatalf("selector returned %v/%v, opener returns %v/%v", got, gotOK, want, wantOK)
	}
}

func TestSelectorFallsBackToSearch(t *testing.T) {
	// No center moves, no minors, no castling: only search can answer.
	sel := testSelector(t, "")
	b := dragontoothmg.ParseFen("4k3/8/8/8/8/8/P7/4K3 w - - 0 1")

	move, ok := sel.ChooseMove(&b)
	if !ok {
		t.Fatal("search fallback produced no move")
	}
	if _, legal := findMoveByString(b.GenerateLegalMoves(), move.String()); !legal {
		t.Fatalf("search fallback produced illegal move %v", move)
	}
}

func TestSelectorEndToEndFromStartpos(t *testing.T) {
	sel := testSelector(t, "")
	b := dragontoothmg.ParseFen(dragontoothmg.Startpos)

	for ply := 0; ply < 6; ply++ {
		before := b.ToFen()
		move, ok := sel.ChooseMove(&b)
		if !ok {
			t.Fatalf("ply %d: no move from %s", ply, before)
		}
		resolved, legal := findMoveByString(b.GenerateLegalMoves(), move.String())
		if !legal {
			t.Fatalf("ply %d: illegal move %v from %s", ply, move, before)
		}
		if b.ToFen() != before {
			t.Fatalf("ply %d: selection mutated the position", ply)
		}
		b.Apply(resolved)

		// Side to move must have flipped before the next request.
		if strings.Fields(b.ToFen())[1] == strings.Fields(before)[1] {
			t.Fatalf("ply %d: side to move did not alternate", ply)
		}
	}
}
