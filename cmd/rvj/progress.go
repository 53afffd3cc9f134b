package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"

	"rvj/internal/export"
	"rvj/internal/logging"
)

// newProgressSink builds a progress listener for an export run and a finish
// hook to invoke once the run settles. Interactive terminals get a live
// progress bar; everything else gets plain lines.
func newProgressSink(out io.Writer, logger *slog.Logger) (export.Sink, func(success bool)) {
	if isTerminal(out) {
		return newBarSink(out)
	}
	return newLineSink(out, logger)
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func newBarSink(out io.Writer) (export.Sink, func(success bool)) {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)

	tracker := &progress.Tracker{
		Message: "Exporting",
		Total:   100,
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(tracker)
	go pw.Render()

	sink := export.SinkFunc(func(p export.Progress) {
		tracker.SetValue(int64(p.Percent))
	})

	finish := func(success bool) {
		if success {
			tracker.MarkAsDone()
		} else {
			tracker.MarkAsErrored()
		}
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}
	}
	return sink, finish
}

func newLineSink(out io.Writer, logger *slog.Logger) (export.Sink, func(success bool)) {
	sink := export.SinkFunc(func(p export.Progress) {
		fmt.Fprintf(out, "progress: %d%%\n", p.Percent)
		logger.Debug("export progress", logging.Int("percent", p.Percent))
	})
	return sink, func(bool) {}
}
