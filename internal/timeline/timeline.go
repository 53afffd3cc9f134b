// Package timeline defines the editor-facing data model consumed by the
// export pipeline: ordered clip selections plus the audio and output paths
// for one export invocation.
package timeline

import (
	"errors"
	"strings"
	"time"
)

// ClipSelection describes one trimmed sub-interval of a source media file.
// Times are in seconds; the selection covers [StartTime, EndTime).
type ClipSelection struct {
	SourcePath string
	StartTime  float64
	EndTime    float64
}

// Duration returns the derived clip length.
func (c ClipSelection) Duration() time.Duration {
	return time.Duration((c.EndTime - c.StartTime) * float64(time.Second))
}

// Seconds returns the derived clip length in seconds.
func (c ClipSelection) Seconds() float64 {
	return c.EndTime - c.StartTime
}

// Validate reports why the selection cannot be exported, or nil.
func (c ClipSelection) Validate() error {
	if strings.TrimSpace(c.SourcePath) == "" {
		return errors.New("source path is empty")
	}
	if c.StartTime < 0 {
		return errors.New("start time is negative")
	}
	if c.EndTime <= c.StartTime {
		return errors.New("end time must be greater than start time")
	}
	return nil
}

// ExportRequest carries everything one export run needs. Clip order defines
// the output's temporal order.
type ExportRequest struct {
	Clips      []ClipSelection
	AudioPath  string
	OutputPath string
}

// Validate checks the request shape without touching the filesystem.
func (r ExportRequest) Validate() error {
	if len(r.Clips) == 0 {
		return errors.New("no clips selected")
	}
	if strings.TrimSpace(r.AudioPath) == "" {
		return errors.New("audio path is empty")
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return errors.New("output path is empty")
	}
	return nil
}
