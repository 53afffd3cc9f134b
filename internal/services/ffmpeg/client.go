package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"rvj/internal/deps"
	"rvj/internal/logging"
)

// Fixed encode policy. Segments are re-encoded to H.264/AAC in an MPEG-TS
// container so they can be concatenated at stream level; the final output is
// re-encoded once more for delivery and truncated to the shorter of the
// video and audio streams.
const (
	videoCodec    = "libx264"
	videoPreset   = "fast"
	audioCodec    = "aac"
	audioBitrate  = "192k"
	segmentFormat = "mpegts"
)

// TrimSpec describes one segment extraction.
type TrimSpec struct {
	Source   string
	Start    float64 // seconds into the source
	Duration float64 // seconds to keep
	Dest     string
}

// MuxSpec describes the final concat-and-mux invocation.
type MuxSpec struct {
	ManifestPath string
	AudioPath    string
	OutputPath   string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "ffmpeg")
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	exec   Executor
	logger *slog.Logger
}

// New constructs an ffmpeg client around the injected binary value.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Check verifies the configured binary can be invoked.
func (c *Client) Check() error {
	_, err := deps.Resolve(c.binary)
	return err
}

// Trim extracts spec's interval from the source into an intermediate
// transport-stream segment, re-encoding for concat compatibility.
func (c *Client) Trim(ctx context.Context, spec TrimSpec) error {
	if strings.TrimSpace(spec.Source) == "" {
		return errors.New("trim source required")
	}
	if strings.TrimSpace(spec.Dest) == "" {
		return errors.New("trim destination required")
	}
	if spec.Duration <= 0 {
		return errors.New("trim duration must be positive")
	}

	args := trimArgs(spec)
	c.logger.Debug("trimming segment",
		logging.String("source", spec.Source),
		logging.String("dest", spec.Dest),
		logging.Float64("start", spec.Start),
		logging.Float64("duration", spec.Duration),
	)
	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("ffmpeg trim: %w", err)
	}
	return nil
}

// Mux concatenates the manifest's segments, overlays the audio track, and
// writes the final output. Output duration is the shorter of the two input
// streams.
func (c *Client) Mux(ctx context.Context, spec MuxSpec) error {
	if strings.TrimSpace(spec.ManifestPath) == "" {
		return errors.New("manifest path required")
	}
	if strings.TrimSpace(spec.AudioPath) == "" {
		return errors.New("audio path required")
	}
	if strings.TrimSpace(spec.OutputPath) == "" {
		return errors.New("output path required")
	}

	args := muxArgs(spec)
	c.logger.Debug("muxing final output",
		logging.String("manifest", spec.ManifestPath),
		logging.String("audio", spec.AudioPath),
		logging.String("output", spec.OutputPath),
	)
	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("ffmpeg mux: %w", err)
	}
	return nil
}

func trimArgs(spec TrimSpec) []string {
	return ffmpeggo.Input(spec.Source, ffmpeggo.KwArgs{
		"ss": formatSeconds(spec.Start),
		"t":  formatSeconds(spec.Duration),
	}).Output(spec.Dest, ffmpeggo.KwArgs{
		"c:v":    videoCodec,
		"preset": videoPreset,
		"c:a":    audioCodec,
		"f":      segmentFormat,
	}).OverWriteOutput().GetArgs()
}

func muxArgs(spec MuxSpec) []string {
	// Select the manifest's video and the external audio explicitly; the
	// concatenated segments carry their own audio which must not leak into
	// the output.
	video := ffmpeggo.Input(spec.ManifestPath, ffmpeggo.KwArgs{
		"f":    "concat",
		"safe": "0",
	}).Video()
	audio := ffmpeggo.Input(spec.AudioPath).Audio()

	return ffmpeggo.Output([]*ffmpeggo.Stream{video, audio}, spec.OutputPath, ffmpeggo.KwArgs{
		"c:v":      videoCodec,
		"preset":   videoPreset,
		"c:a":      audioCodec,
		"b:a":      audioBitrate,
		"shortest": "",
	}).OverWriteOutput().GetArgs()
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func (c *Client) run(ctx context.Context, args []string) error {
	tail := newTailBuffer(12)
	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		tail.add(line)
	})
	if err != nil {
		if out := tail.String(); out != "" {
			return fmt.Errorf("%w: %s", err, out)
		}
		return err
	}
	return nil
}

// tailBuffer retains the last n output lines so errors can carry the
// relevant end of ffmpeg's log.
type tailBuffer struct {
	lines []string
	max   int
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
}

func (t *tailBuffer) String() string {
	return strings.Join(t.lines, "; ")
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	forward := func(line string) {
		if onOutput != nil {
			onOutput(line)
			return
		}
		fmt.Fprintln(os.Stderr, line)
	}
	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			forward(scanner.Text())
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
