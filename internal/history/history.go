package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/hollis/appshell/internal/sidecar"
)

// EventType defines the kind of lifecycle event.
type EventType string

const (
	EventSpawn EventType = "spawn"
	EventExit  EventType = "exit"
)

// Event is a sidecar lifecycle event to be persisted for later inspection.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	PID        int       `json:"pid"`
	Error      string    `json:"error,omitempty"`
}

// Sink is a destination for launch-history events.
// Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, e Event) error
	Close() error
}

// Recorder adapts a Sink to the supervisor's lifecycle hooks. Persistence is
// best-effort: a failing sink is logged, never propagated, so history can
// never abort startup.
type Recorder struct {
	sink    Sink
	log     *slog.Logger
	timeout time.Duration
}

func NewRecorder(sink Sink, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{sink: sink, log: log, timeout: 2 * time.Second}
}

func (r *Recorder) RecordSpawn(st sidecar.Status) {
	r.send(Event{
		Type:       EventSpawn,
		OccurredAt: st.StartedAt,
		Name:       st.Name,
		Path:       st.Path,
		PID:        st.PID,
	})
}

func (r *Recorder) RecordExit(st sidecar.Status) {
	e := Event{
		Type:       EventExit,
		OccurredAt: st.StoppedAt,
		Name:       st.Name,
		Path:       st.Path,
		PID:        st.PID,
	}
	if st.ExitErr != nil {
		e.Error = st.ExitErr.Error()
	}
	r.send(e)
}

func (r *Recorder) send(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.sink.Send(ctx, e); err != nil {
		r.log.Warn("failed to record launch history", "type", string(e.Type), "error", err)
	}
}

// Close releases the underlying sink.
func (r *Recorder) Close() error { return r.sink.Close() }
