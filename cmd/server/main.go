package main

import (
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/StufflyerScripting/chessah/config"
	"github.com/StufflyerScripting/chessah/engine"
	"github.com/StufflyerScripting/chessah/server"
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

	srv := server.New(selector, book, logger)

	logger.Infow("server is running", "addr", cfg.ListenAddr, "depth", cfg.SearchDepth)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
