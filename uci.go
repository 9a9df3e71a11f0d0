package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/StufflyerScripting/chessah/config"
	"github.com/StufflyerScripting/chessah/engine"

	"github.com/dylhunn/dragontoothmg"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Setup(".env")
	if err != nil {
		logger.Warnw("running on default configuration", "error", err)
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	book := engine.NewBook(rng, logger)
	book.LoadAsync(cfg.BookPath)

	evaluator := engine.NewEvaluator(rng)
	selector := engine.NewSelector(book, &engine.Search{
		Depth:    cfg.SearchDepth,
		Evaluate: evaluator.Score,
	}, logger)

	uciLoop(os.Stdin, os.Stdout, selector, book)
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// uciLoop speaks the subset of UCI the selector needs. "go" always
// answers with a single bestmove line; 0000 stands for "no move, game
// over" since the selector refuses to pick in finished games.
func uciLoop(in io.Reader, out io.Writer, selector *engine.Selector, book *engine.Book) {
	scanner := bufio.NewScanner(in)
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name chessah")
			fmt.Fprintln(out, "id author StufflyerScripting")
			fmt.Fprintln(out, "uciok")
		case "isready":
			if book.Ready() {
				fmt.Fprintln(out, "info string book entries", book.Len())
			}
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			board = dragontoothmg.ParseFen(dragontoothmg.Startpos)
		case "position":
			next, ok := parsePosition(line, out)
			if ok {
				board = next
			}
		case "go":
			if move, ok := selector.ChooseMove(&board); ok {
				fmt.Fprintln(out, "bestmove", move.String())
			} else {
				fmt.Fprintln(out, "bestmove 0000")
			}
		case "quit":
			return
		default:
			fmt.Fprintln(out, "info string Unknown command", tokens[0])
		}
	}
}

// parsePosition handles "position [startpos|fen <fen>] [moves ...]".
// Moves are resolved against the legal-move list, same as book
// candidates, so an illegal move string aborts the command instead of
// corrupting the board.
func parsePosition(line string, out io.Writer) (dragontoothmg.Board, bool) {
	var board dragontoothmg.Board

	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip the "position" token
	if !posScanner.Scan() {
		fmt.Fprintln(out, "info string Malformed position command")
		return board, false
	}

	switch strings.ToLower(posScanner.Text()) {
	case "startpos":
		board = dragontoothmg.ParseFen(dragontoothmg.Startpos)
		posScanner.Scan() // advance the scanner to leave it in a consistent state
	case "fen":
		fenstr := ""
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fenstr += posScanner.Text() + " "
		}
		if fenstr == "" {
			fmt.Fprintln(out, "info string Invalid fen position")
			return board, false
		}
		parsed, err := engine.ParseFen(strings.TrimSpace(fenstr))
		if err != nil {
			fmt.Fprintln(out, "info string Invalid fen position")
			return board, false
		}
		board = parsed
	default:
		fmt.Fprintln(out, "info string Invalid position subcommand")
		return board, false
	}

	if strings.ToLower(posScanner.Text()) != "moves" {
		return board, true
	}
	for posScanner.Scan() { // for each move
		moveStr := strings.ToLower(posScanner.Text())
		move, found := engine.ResolveMove(&board, moveStr)
		if !found {
			fmt.Fprintln(out, "info string Move", moveStr, "not found for position", board.ToFen())
			return board, false
		}
		board.Apply(move)
	}
	return board, true
}
