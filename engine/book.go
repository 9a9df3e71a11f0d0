package engine

import (
	"encoding/csv"
	"io"
	"math/rand"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"go.uber.org/zap"
)

// moveNumbers strips leading "1." style move numbers, so book files
// exported from game databases parse the same as plain move lists.
var moveNumbers = regexp.MustCompile(`([0-9]+\.)`)

// Book maps a PositionKey to the known continuations for it, in
// coordinate notation. It is empty until a load completes and
// read-only afterward; lookups against an unloaded or failed book
// simply report no entry.
type Book struct {
	mu      sync.RWMutex
	entries map[string][]string
	ready   bool

	rngMu sync.Mutex
	rng   *rand.Rand
	log   *zap.SugaredLogger
}

// NewBook returns an empty, not-yet-ready book. A nil rng is seeded
// from the clock; a nil logger discards.
func NewBook(rng *rand.Rand, log *zap.SugaredLogger) *Book {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Book{rng: rng, log: log}
}

// LoadAsync starts the load in the background and returns immediately.
// Selections issued before it completes see an empty book. A load that
// fails leaves the book empty but marks it ready, so a missing or
// corrupt data file degrades capability instead of wedging startup.
func (bk *Book) LoadAsync(path string) {
	go func() {
		if err := bk.LoadFile(path); err != nil {
			bk.log.Warnw("opening book unavailable", "path", path, "error", err)
			bk.install(nil)
		}
	}()
}

// LoadFile reads a book data file from disk.
func (bk *Book) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return bk.Load(file)
}

// Load parses CSV records of the form
//
//	<placement key>,<move> <move> ...
//
// and installs the result. Unusable records are skipped and counted,
// never fatal: a partly corrupt source yields a smaller book.
func (bk *Book) Load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	entries := make(map[string][]string)
	droppedRows, droppedMoves := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			droppedRows++
			continue
		}
		if len(record) < 2 {
			droppedRows++
			continue
		}
		key := strings.TrimSpace(record[0])
		if key == "" || strings.Count(key, "/") != 7 {
			droppedRows++
			continue
		}
		var moves []string
		for _, tok := range strings.Fields(moveNumbers.ReplaceAllString(record[1], "")) {
			tok = strings.ToLower(tok)
			if _, err := dragontoothmg.ParseMove(tok); err != nil {
				droppedMoves++
				continue
			}
			moves = append(moves, tok)
		}
		if len(moves) == 0 {
			droppedRows++
			continue
		}
		entries[key] = moves
	}

	bk.install(entries)
	bk.log.Infow("opening book loaded",
		"entries", len(entries), "droppedRows", droppedRows, "droppedMoves", droppedMoves)
	return nil
}

func (bk *Book) install(entries map[string][]string) {
	bk.mu.Lock()
	defer bk.mu.Unlock()
	bk.entries = entries
	bk.ready = true
}

// Ready reports whether a load attempt has completed.
func (bk *Book) Ready() bool {
	bk.mu.RLock()
	defer bk.mu.RUnlock()
	return bk.ready
}

// Len is the number of positions the book knows.
func (bk *Book) Len() int {
	bk.mu.RLock()
	defer bk.mu.RUnlock()
	return len(bk.entries)
}

// Lookup computes the position's key and, if the book has an entry,
// picks uniformly at random among its candidates that are legal right
// now. The key ignores side to move and castling rights, so a
// candidate recorded for a transposed position may not be playable;
// those degrade to no-move rather than surfacing an illegal move.
func (bk *Book) Lookup(b *dragontoothmg.Board) (dragontoothmg.Move, bool) {
	bk.mu.RLock()
	candidates, found := bk.entries[PositionKey(b)]
	bk.mu.RUnlock()
	if !found {
		return 0, false
	}

	legal := b.GenerateLegalMoves()
	var playable []dragontoothmg.Move
	for _, s := range candidates {
		if m, ok := findMoveByString(legal, s); ok {
			playable = append(playable, m)
		}
	}
	if len(playable) == 0 {
		return 0, false
	}

	bk.rngMu.Lock()
	pick := playable[bk.rng.Intn(len(playable))]
	bk.rngMu.Unlock()
	return pick, true
}
