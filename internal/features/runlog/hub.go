package runlog

import "sync"

const subscriberBuffer = 64

// hub fans written entries out to live subscribers. A subscriber that falls
// behind loses entries rather than blocking the writer.
type hub struct {
	mu   sync.RWMutex
	subs map[chan LogEntry]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan LogEntry]struct{})}
}

func (h *hub) subscribe() (<-chan LogEntry, func()) {
	ch := make(chan LogEntry, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *hub) publish(entry LogEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- entry:
		default:
		}
	}
}
