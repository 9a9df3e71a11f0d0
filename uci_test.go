package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/StufflyerScripting/chessah/engine"
)

func testLoop(t *testing.T, input string) string {
	t.Helper()
	rng := rand.New(rand.NewSource(11))
	book := engine.NewBook(rng, nil)
	evaluator := engine.NewEvaluator(rng)
	selector := engine.NewSelector(book, &engine.Search{Depth: 2, Evaluate: evaluator.Score}, nil)

	var out bytes.Buffer
	uciLoop(strings.NewReader(input), &out, selector, book)
	return out.String()
}

func lastBestmove(t *testing.T, output string) string {
	t.Helper()
	best := ""
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "bestmove ") {
			best = strings.TrimSpace(strings.TrimPrefix(line, "bestmove "))
		}
	}
	if best == "" {
		t.Fatalf("no bestmove in output:\n%s", output)
	}
	return best
}

func TestUciHandshake(t *testing.T) {
	out := testLoop(t, "uci\nisready\nquit\n")
	if !strings.Contains(out, "uciok") {
		t.Fatalf("missing uciok:\n%s", out)
	}
	if !strings.Contains(out, "readyok") {
		t.Fatalf("missing readyok:\n%s", out)
	}
}

func TestGoAnswersWithLegalMove(t *testing.T) {
	out := testLoop(t, "position startpos moves e2e4 e7e5\ngo\nquit\n")
	best := lastBestmove(t, out)

	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	for _, ms := range []string{"e2e4", "e7e5"} {
		move, ok := engine.ResolveMove(&board, ms)
		if !ok {
			t.Fatalf("setup move %s not legal", ms)
		}
		board.Apply(move)
	}
	if _, ok := engine.ResolveMove(&board, best); !ok {
		t.Fatalf("bestmove %s is not legal in the requested position", best)
	}
}

func TestGoFromFenPosition(t *testing.T) {
	out := testLoop(t, "position fen 4k3/8/8/8/8/8/P7/4K3 w - - 0 1\ngo\nquit\n")
	if best := lastBestmove(t, out); best == "0000" {
		t.Fatal("engine resigned a playable position")
	}
}

func TestGoReportsNoMoveWhenGameOver(t *testing.T) {
	out := testLoop(t, "position fen rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3\ngo\nquit\n")
	if best := lastBestmove(t, out); best != "0000" {
		t.Fatalf("expected 0000 in a mated position, got %s", best)
	}
}

func TestMalformedPositionKeepsPreviousBoard(t *testing.T) {
	out := testLoop(t, "position startpos\nposition fen\ngo\nquit\n")
	if !strings.Contains(out, "info string") {
		t.Fatalf("malformed position not reported:\n%s", out)
	}
	if best := lastBestmove(t, out); best == "0000" {
		t.Fatal("engine lost the previous position after a bad command")
	}
}
