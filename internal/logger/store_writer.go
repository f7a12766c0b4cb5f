package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go-stocksync/internal/features/runlog"
)

// StoreWriter persists entries from a buffered channel on a background
// goroutine so logging never blocks on the store.
type StoreWriter struct {
	repo    runlog.Repository
	logChan chan runlog.LogEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewStoreWriter(repo runlog.Repository, buffer int) *StoreWriter {
	w := &StoreWriter{
		repo:    repo,
		logChan: make(chan runlog.LogEntry, buffer),
		done:    make(chan struct{}),
	}

	go w.processLogs()

	return w
}

// Add queues an entry, dropping it when the buffer is full.
func (w *StoreWriter) Add(entry runlog.LogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return
	}
	select {
	case w.logChan <- entry:
	default:
		fmt.Fprintln(os.Stderr, "Run log buffer full! Dropping log:", entry.Message)
	}
}

// Close stops accepting entries and waits for the queue to drain.
// Entries added afterwards are discarded.
func (w *StoreWriter) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.logChan)
	}
	w.mu.Unlock()

	<-w.done
}

func (w *StoreWriter) processLogs() {
	defer close(w.done)

	for entry := range w.logChan {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// Errors are ignored: the entry was already written to the console core.
		_ = w.repo.Insert(ctx, &entry)
		cancel()
	}
}
