package server

import (
	"net/http"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/StufflyerScripting/chessah/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// session is one websocket game. All state lives in the connection;
// closing it forgets the game. The read loop is the only goroutine
// touching the board, so the session needs no lock of its own.
type session struct {
	id    string
	board dragontoothmg.Board
}

type clientFrame struct {
	Move string `json:"move"`
}

type serverFrame struct {
	Session  string `json:"session"`
	Move     string `json:"move,omitempty"`
	FEN      string `json:"fen"`
	GameOver bool   `json:"gameOver"`
	Error    string `json:"error,omitempty"`
}

// handlePlay upgrades the connection and plays a game from the
// starting position: the client sends its moves in coordinate
// notation, the engine answers each one. Bad frames and illegal moves
// get an error frame back; only a closed connection ends the loop.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := &session{
		id:    uuid.NewString(),
		board: dragontoothmg.ParseFen(dragontoothmg.Startpos),
	}
	s.log.Infow("play session started", "session", sess.id)

	// Greeting frame so the client knows its session and the position.
	conn.WriteJSON(serverFrame{Session: sess.id, FEN: sess.board.ToFen()})

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			s.log.Infow("play session closed", "session", sess.id, "error", err)
			return
		}

		move, ok := engine.ResolveMove(&sess.board, frame.Move)
		if !ok {
			conn.WriteJSON(serverFrame{
				Session: sess.id,
				FEN:     sess.board.ToFen(),
				Error:   "illegal move: " + frame.Move,
			})
			continue
		}
		sess.board.Apply(move)

		reply := s.play(&sess.board)
		if err := conn.WriteJSON(reply.frame(sess.id)); err != nil {
			s.log.Infow("play session closed", "session", sess.id, "error", err)
			return
		}
	}
}

func (m moveResponse) frame(sessionID string) serverFrame {
	return serverFrame{
		Session:  sessionID,
		Move:     m.Move,
		FEN:      m.FEN,
		GameOver: m.GameOver,
	}
}
