package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/editor"
	"clipforge/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timeline",
	}

	exportCmd.AddCommand(newExportEDLCommand(ctx))
	return exportCmd
}

func newExportEDLCommand(ctx *commandContext) *cobra.Command {
	var output string
	var title string
	var frameRate float64

	cmd := &cobra.Command{
		Use:   "edl",
		Short: "Write a CMX 3600 edit decision list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(title) == "" {
				title = cfg.Export.Title
			}
			if frameRate <= 0 {
				frameRate = cfg.Export.FrameRate
			}
			if strings.TrimSpace(output) == "" {
				output = filepath.Join(cfg.Paths.ExportDir, "timeline.edl")
			}

			return ctx.withEditor(func(ed *editor.Editor) error {
				var events []export.Event
				ed.View(func(s *editor.Session) {
					events = export.Flatten(s.Ops().Repo())
				})
				if len(events) == 0 {
					return fmt.Errorf("timeline has no clips to export")
				}

				if dir := filepath.Dir(output); dir != "" {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("create export directory: %w", err)
					}
				}
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create edl file: %w", err)
				}
				defer file.Close()

				if err := export.WriteEDL(file, events, title, frameRate); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d event(s) to %s\n", len(events), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (defaults to the export directory)")
	cmd.Flags().StringVar(&title, "title", "", "EDL title line")
	cmd.Flags().Float64Var(&frameRate, "fps", 0, "Timecode frame rate")
	return cmd
}
