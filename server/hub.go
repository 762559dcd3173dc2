package server

import (
	"context"
	"sync"

	"github.com/nexxia-ai/leadgen"
)

// subscriberBuffer is the per-connection update buffer. A connection that
// falls this far behind starts losing intermediate updates; terminal updates
// are still delivered through the last-update replay.
const subscriberBuffer = 64

// hub fans pipeline status updates out to per-job WebSocket subscribers. It
// implements leadgen.Notifier, so one engine configured with the hub serves
// every job; updates are routed by job ID. Delivery is non-blocking: a slow
// subscriber drops updates instead of stalling the pipeline.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan leadgen.StatusUpdate]struct{}
	last map[string]leadgen.StatusUpdate
}

func newHub() *hub {
	return &hub{
		subs: make(map[string]map[chan leadgen.StatusUpdate]struct{}),
		last: make(map[string]leadgen.StatusUpdate),
	}
}

// Notify records the update as the job's latest and forwards it to all
// subscribers of that job.
func (h *hub) Notify(_ context.Context, update leadgen.StatusUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last[update.JobID] = update
	for ch := range h.subs[update.JobID] {
		select {
		case ch <- update:
		default:
		}
	}
}

// subscribe registers a new subscriber for jobID. The returned channel
// receives future updates; if the job already produced updates, the latest
// one is queued first so late connections see current status. The cancel
// function unregisters and closes the channel.
func (h *hub) subscribe(jobID string) (<-chan leadgen.StatusUpdate, func()) {
	ch := make(chan leadgen.StatusUpdate, subscriberBuffer)

	h.mu.Lock()
	if last, ok := h.last[jobID]; ok {
		ch <- last
	}
	if h.subs[jobID] == nil {
		h.subs[jobID] = make(map[chan leadgen.StatusUpdate]struct{})
	}
	h.subs[jobID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[jobID][ch]; !ok {
			return
		}
		delete(h.subs[jobID], ch)
		if len(h.subs[jobID]) == 0 {
			delete(h.subs, jobID)
		}
		close(ch)
	}
	return ch, cancel
}
