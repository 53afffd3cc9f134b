package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rvj/internal/export"
	"rvj/internal/fileutil"
	"rvj/internal/history"
	"rvj/internal/logging"
	"rvj/internal/services/ffmpeg"
	"rvj/internal/timeline"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var clipSpecs []string
	var audioPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Trim clips, concatenate them, and mux the audio track",
		Example: `  rvj export \
    --clip /media/intro.mp4:0:4.5 \
    --clip /media/drop.mp4:12:18 \
    --audio /media/set.mp3 \
    --output ~/Videos/set.mp4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger()

			clips, err := parseClipSpecs(clipSpecs)
			if err != nil {
				return err
			}
			if strings.TrimSpace(audioPath) == "" {
				return fmt.Errorf("--audio is required")
			}
			if strings.TrimSpace(outputPath) == "" {
				return fmt.Errorf("--output is required")
			}
			if !fileutil.IsFile(audioPath) {
				return fmt.Errorf("audio file %s not found", audioPath)
			}

			client, err := ffmpeg.New(cfg.FFmpeg.Binary, ffmpeg.WithLogger(logger))
			if err != nil {
				return err
			}

			sink, finish := newProgressSink(cmd.OutOrStdout(), logger)

			exporter, err := export.New(cfg.Paths.ScratchDir, client,
				export.WithSink(sink),
				export.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			req := timeline.ExportRequest{
				Clips:      clips,
				AudioPath:  audioPath,
				OutputPath: outputPath,
			}

			// History is best effort; a broken database never blocks an export.
			store, storeErr := history.Open(cfg.Paths.HistoryDB)
			if storeErr != nil {
				logger.Warn("history unavailable", logging.Error(storeErr))
			} else {
				defer store.Close()
			}

			runID := uuid.NewString()
			if store != nil {
				if err := store.Begin(cmd.Context(), runID, len(clips), audioPath, outputPath); err != nil {
					logger.Warn("record export start", logging.Error(err))
				}
			}

			result, exportErr := exporter.Export(cmd.Context(), req)

			if store != nil {
				if err := store.Finish(cmd.Context(), runID, exportErr); err != nil {
					logger.Warn("record export result", logging.Error(err))
				}
			}

			finish(exportErr == nil)
			if exportErr != nil {
				return exportErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Export complete: %s\n", result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&clipSpecs, "clip", nil, "Clip selection as path:start:end in seconds (repeatable, timeline order)")
	cmd.Flags().StringVarP(&audioPath, "audio", "a", "", "Audio track to mux over the concatenated video")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the final video")

	return cmd
}

// parseClipSpecs converts repeated --clip values into clip selections. The
// separator colons are anchored on the right so source paths may themselves
// contain colons.
func parseClipSpecs(specs []string) ([]timeline.ClipSelection, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --clip is required")
	}

	clips := make([]timeline.ClipSelection, 0, len(specs))
	for i, spec := range specs {
		clip, err := parseClipSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

func parseClipSpec(spec string) (timeline.ClipSelection, error) {
	endSep := strings.LastIndex(spec, ":")
	if endSep <= 0 {
		return timeline.ClipSelection{}, fmt.Errorf("invalid clip spec %q: want path:start:end", spec)
	}
	startSep := strings.LastIndex(spec[:endSep], ":")
	if startSep <= 0 {
		return timeline.ClipSelection{}, fmt.Errorf("invalid clip spec %q: want path:start:end", spec)
	}

	source := spec[:startSep]
	start, err := strconv.ParseFloat(spec[startSep+1:endSep], 64)
	if err != nil {
		return timeline.ClipSelection{}, fmt.Errorf("invalid start time in %q: %w", spec, err)
	}
	end, err := strconv.ParseFloat(spec[endSep+1:], 64)
	if err != nil {
		return timeline.ClipSelection{}, fmt.Errorf("invalid end time in %q: %w", spec, err)
	}

	clip := timeline.ClipSelection{
		SourcePath: source,
		StartTime:  start,
		EndTime:    end,
	}
	if err := clip.Validate(); err != nil {
		return timeline.ClipSelection{}, err
	}
	return clip, nil
}
