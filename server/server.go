package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/dylhunn/dragontoothmg"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/StufflyerScripting/chessah/engine"
)

// Server exposes the move selector to a presentation collaborator:
// a stateless position-in/move-out endpoint and a websocket play
// session. It owns no display state and persists nothing.
type Server struct {
	log      *zap.SugaredLogger
	selector *engine.Selector
	book     *engine.Book

	// The selector's apply/undo discipline is not reentrant-safe, so
	// concurrent requests take turns.
	mu sync.Mutex
}

func New(selector *engine.Selector, book *engine.Book, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{log: log, selector: selector, book: book}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/api/health", s.handleHealth)
	r.Post("/api/move", s.handleMove)
	r.Get("/ws", s.handlePlay)
	return r
}

type moveRequest struct {
	FEN string `json:"fen"`
}

type moveResponse struct {
	Move     string `json:"move"`
	FEN      string `json:"fen"`
	GameOver bool   `json:"gameOver"`
}

// handleMove selects one move for the side to move in the posted FEN
// and returns it with the resulting position. A finished game answers
// with an empty move and gameOver=true.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Errorw("bad move request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	board, err := engine.ParseFen(req.FEN)
	if err != nil {
		s.log.Errorw("bad fen", "fen", req.FEN, "error", err)
		writeError(w, http.StatusBadRequest, "invalid fen")
		return
	}

	resp := s.play(&board)
	writeJSON(w, http.StatusOK, resp)
}

// play runs one selector call under the serialization lock and folds
// the outcome into a response.
func (s *Server) play(board *dragontoothmg.Board) moveResponse {
	s.mu.Lock()
	move, ok := s.selector.ChooseMove(board)
	s.mu.Unlock()

	if !ok {
		return moveResponse{FEN: board.ToFen(), GameOver: true}
	}
	board.Apply(move)
	return moveResponse{
		Move:     move.String(),
		FEN:      board.ToFen(),
		GameOver: engine.GameOver(board),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"bookReady": s.book.Ready(),
		"entries":   s.book.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
