package leadgen

import (
	"context"
	"time"
)

// StatusUpdate is one progress notification. Status values follow the
// <stage>_<phase> convention, e.g. "research_started", "enricher_progress",
// "editor_completed".
type StatusUpdate struct {
	JobID     string         `json:"job_id"`
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Result    map[string]any `json:"result,omitempty"`
	Err       string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Notifier receives progress updates from the pipeline. Implementations must
// not block: delivery is fire-and-forget and a slow or failed consumer never
// stalls a stage.
type Notifier interface {
	Notify(ctx context.Context, update StatusUpdate)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, update StatusUpdate)

func (f NotifierFunc) Notify(ctx context.Context, update StatusUpdate) {
	f(ctx, update)
}

// NopNotifier discards all updates.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, StatusUpdate) {}

// ChannelNotifier forwards updates to a buffered channel. When the buffer is
// full the update is dropped rather than blocking the pipeline.
type ChannelNotifier struct {
	ch chan StatusUpdate
}

// NewChannelNotifier creates a ChannelNotifier with the given buffer size.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 100
	}
	return &ChannelNotifier{ch: make(chan StatusUpdate, buffer)}
}

// Updates returns the receive side of the notifier.
func (n *ChannelNotifier) Updates() <-chan StatusUpdate {
	return n.ch
}

// Close closes the update channel. Call only after the pipeline finished.
func (n *ChannelNotifier) Close() {
	close(n.ch)
}

func (n *ChannelNotifier) Notify(ctx context.Context, update StatusUpdate) {
	select {
	case n.ch <- update:
	default:
	}
}
