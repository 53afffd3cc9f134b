package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"rvj/internal/fileutil"
	"rvj/internal/logging"
	"rvj/internal/services/ffmpeg"
	"rvj/internal/timeline"
)

// lockFileName serializes export runs per scratch root. The workspace
// itself is collision-free, but the pipeline is sequential by design and
// parallel ffmpeg invocations would contend for the same disk and cores.
const lockFileName = "export.lock"

// Transcoder is the external encoding surface the pipeline drives.
type Transcoder interface {
	Check() error
	Trim(ctx context.Context, spec ffmpeg.TrimSpec) error
	Mux(ctx context.Context, spec ffmpeg.MuxSpec) error
}

// Option configures the exporter.
type Option func(*Exporter)

// WithSink attaches a progress listener.
func WithSink(sink Sink) Option {
	return func(e *Exporter) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logging.NewComponentLogger(logger, "export")
	}
}

// Exporter sequences one export run: trim each clip, build the concat
// manifest, mux with the audio track, clean up. All-or-nothing: any stage
// failure aborts the run and the caller gets a single descriptive error.
type Exporter struct {
	scratchRoot string
	transcoder  Transcoder
	sink        Sink
	logger      *slog.Logger
}

// New constructs an exporter writing intermediates under scratchRoot.
func New(scratchRoot string, transcoder Transcoder, opts ...Option) (*Exporter, error) {
	if scratchRoot == "" {
		return nil, errors.New("scratch root required")
	}
	if transcoder == nil {
		return nil, errors.New("transcoder required")
	}
	exporter := &Exporter{
		scratchRoot: scratchRoot,
		transcoder:  transcoder,
		sink:        NopSink{},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(exporter)
	}
	return exporter, nil
}

// Export runs the pipeline for one request and returns the output path on
// success. The run's workspace is removed on every exit path.
func (e *Exporter) Export(ctx context.Context, req timeline.ExportRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	if err := e.transcoder.Check(); err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, err)
	}

	if err := fileutil.EnsureDir(e.scratchRoot); err != nil {
		return "", &WorkspaceError{Err: err}
	}

	lock := flock.New(filepath.Join(e.scratchRoot, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return "", ErrExportInFlight
	}
	defer func() { _ = lock.Unlock() }()

	workspace, err := openWorkspace(e.scratchRoot)
	if err != nil {
		return "", &WorkspaceError{Err: err}
	}
	// Single exit gate: the workspace is removed exactly once, success or
	// failure.
	defer workspace.Release(e.logger)

	started := time.Now()
	e.logger.Info("export started",
		logging.String("run_id", workspace.ID()),
		logging.Int("clips", len(req.Clips)),
		logging.String("audio", req.AudioPath),
		logging.String("output", req.OutputPath),
	)

	manifest := &manifestBuilder{}
	for i, clip := range req.Clips {
		segment := workspace.SegmentPath(i)
		spec := ffmpeg.TrimSpec{
			Source:   clip.SourcePath,
			Start:    clip.StartTime,
			Duration: clip.Seconds(),
			Dest:     segment,
		}
		if err := e.transcoder.Trim(ctx, spec); err != nil {
			return "", &TrimError{Index: i, Err: err}
		}
		manifest.Add(segment)
		e.notify(trimPercent(i+1, len(req.Clips)))
		e.logger.Debug("segment trimmed",
			logging.Int("index", i),
			logging.String("source", clip.SourcePath),
			logging.Duration("duration", clip.Duration()),
		)
	}

	manifestPath := workspace.ManifestPath()
	if err := manifest.Write(manifestPath); err != nil {
		return "", &ManifestWriteError{Err: err}
	}

	if dir := filepath.Dir(req.OutputPath); dir != "" && dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return "", &OutputDirError{Err: err}
		}
	}

	muxSpec := ffmpeg.MuxSpec{
		ManifestPath: manifestPath,
		AudioPath:    req.AudioPath,
		OutputPath:   req.OutputPath,
	}
	if err := e.transcoder.Mux(ctx, muxSpec); err != nil {
		return "", &MuxError{Err: err}
	}

	e.notify(100)
	e.logger.Info("export completed",
		logging.String("run_id", workspace.ID()),
		logging.String("output", req.OutputPath),
		logging.Duration("elapsed", time.Since(started)),
	)
	return req.OutputPath, nil
}

func validateRequest(req timeline.ExportRequest) error {
	if len(req.Clips) == 0 {
		return ErrNoClips
	}
	for i, clip := range req.Clips {
		if err := clip.Validate(); err != nil {
			return &InvalidClipRangeError{Index: i, Reason: err.Error()}
		}
	}
	if err := req.Validate(); err != nil {
		return err
	}
	return nil
}

func (e *Exporter) notify(percent int) {
	if e.sink == nil {
		return
	}
	e.sink.Notify(Progress{Percent: percent})
}
