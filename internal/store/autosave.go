package store

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/wesen/mlcd/pkg/graphmodel"
)

// DefaultAutosaveDelay is the debounce between the last change and a write.
const DefaultAutosaveDelay = 400 * time.Millisecond

// Autosaver persists the diagram to a file a short while after the last
// change. It is best effort: write failures are logged and dropped.
type Autosaver struct {
	path   string
	delay  time.Duration
	logger *slog.Logger
	write  func(path string, data []byte) error

	mu          sync.Mutex
	timer       *time.Timer
	pending     *graphmodel.Document
	unsubscribe func()
}

// NewAutosaver creates an autosaver writing to path.
func NewAutosaver(path string, delay time.Duration, logger *slog.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Autosaver{path: path, delay: delay, logger: logger, write: writeFileAtomic}
}

// Attach subscribes the autosaver to every committed change of s.
func (a *Autosaver) Attach(s *Store) {
	unsub := s.Subscribe(a.Schedule)
	a.mu.Lock()
	a.unsubscribe = unsub
	a.mu.Unlock()
}

// Schedule (re)starts the debounce timer for doc.
func (a *Autosaver) Schedule(doc graphmodel.Document) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = &doc
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.Flush)
}

// Flush writes the pending document, if any, immediately.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	doc := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	if doc == nil {
		return
	}

	data, err := graphmodel.EncodeDocument(*doc)
	if err == nil {
		err = a.write(a.path, data)
	}
	if err != nil {
		a.logger.Debug("autosave failed", "path", a.path, "err", err)
		return
	}
	a.logger.Debug("autosaved", "path", a.path, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
}

// Close detaches from the store and flushes any pending write.
func (a *Autosaver) Close() {
	a.mu.Lock()
	unsub := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	a.Flush()
}

// Restore reads an autosaved document. It reports false when the file is
// missing or does not hold a valid diagram.
func Restore(path string) (graphmodel.Document, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graphmodel.Document{}, false
	}
	doc, err := graphmodel.DecodeDocument(data)
	if err != nil {
		return graphmodel.Document{}, false
	}
	return doc, true
}
