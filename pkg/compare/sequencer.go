// Package compare turns a stream of raw MQTT payloads into human-readable
// structural diffs between consecutive events.
package compare

import (
	"log/slog"
	"sync"
	"time"

	"github.com/arvenn/mqttdiff/internal/metrics"
	"github.com/arvenn/mqttdiff/pkg/diff"
	"github.com/arvenn/mqttdiff/pkg/timestamp"
)

// Sequencer owns the previous-event state and drives one comparison per
// incoming message. The diff and timestamp cores stay pure; all mutation and
// serialization lives here.
type Sequencer struct {
	log  *slog.Logger
	sink *LineSink

	mu     sync.Mutex
	prev   any
	prevTS time.Time
	primed bool
}

// NewSequencer returns a sequencer writing comparisons to sink.
func NewSequencer(sink *LineSink, log *slog.Logger) *Sequencer {
	if log == nil {
		log = slog.Default()
	}
	return &Sequencer{log: log, sink: sink}
}

// OnMessage handles one delivered payload. The first message primes the
// previous-event state; every later one is diffed against its predecessor.
// Safe for concurrent delivery.
func (s *Sequencer) OnMessage(raw []byte) {
	payload, decoded := decodePayload(raw)
	metrics.EventsReceived.Inc()
	if !decoded {
		metrics.DecodeFallbacks.Inc()
	}
	ts := timestamp.Extract(payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		s.sink.Writeln("First event received: " + ts.Format(TimeLayout))
		s.prev, s.prevTS, s.primed = payload, ts, true
		return
	}

	d := diff.Diff(s.prev, payload)
	metrics.ObserveDiff(len(d.Added), len(d.Removed), len(d.Changed))
	for _, line := range RenderDiff(s.prevTS, ts, d) {
		s.sink.Writeln(line)
	}
	s.log.Debug("event compared",
		"added", len(d.Added),
		"removed", len(d.Removed),
		"changed", len(d.Changed),
	)

	s.prev, s.prevTS = payload, ts
}
