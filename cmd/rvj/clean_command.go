package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rvj/internal/staging"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale export workspaces left by interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			age := maxAge
			if age <= 0 {
				age = time.Duration(cfg.Export.StaleWorkspaceHours) * time.Hour
			}

			result := staging.CleanStale(cmd.Context(), cfg.Paths.ScratchDir, age, ctx.logger())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d stale workspace(s) from %s\n", len(result.Removed), cfg.Paths.ScratchDir)
			for _, cleanupErr := range result.Errors {
				fmt.Fprintf(out, "  failed: %s (%v)\n", cleanupErr.Path, cleanupErr.Error)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d workspace(s) could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Minimum workspace age before removal (defaults to stale_workspace_hours)")

	return cmd
}
