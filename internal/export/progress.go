package export

import "math"

// Progress is the incremental completion event emitted to the caller.
type Progress struct {
	Percent int
}

// Sink receives progress events. Implementations must be cheap and must not
// fail; delivery is best-effort and a missing listener never affects the
// pipeline.
type Sink interface {
	Notify(Progress)
}

// NopSink discards all progress events.
type NopSink struct{}

func (NopSink) Notify(Progress) {}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Progress)

func (f SinkFunc) Notify(p Progress) { f(p) }

// trimPercent maps trim completion onto the 1-50 band, leaving the upper
// half for the mux stage so the final event is exactly 100. The rounded
// share is clamped so even the first of many clips reports visible
// progress.
func trimPercent(completed, total int) int {
	percent := int(math.Round(float64(completed) / float64(total+1) * 50))
	if percent < 1 {
		percent = 1
	}
	return percent
}
