package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/editor"
	"clipforge/internal/media"
	"clipforge/internal/media/ffprobe"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var track int
	var at float64

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Probe a media file and place it on the timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			importer := media.NewFileImporter(ffprobe.NewProber(cfg.FFprobeBinary()))
			src, err := importer.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return ctx.withEditor(func(ed *editor.Editor) error {
				var placeErr error
				ed.Do(func(s *editor.Session) {
					if cmd.Flags().Changed("at") {
						placed, err := s.Ops().AddClip(src, track, at)
						if err != nil {
							placeErr = err
							return
						}
						fmt.Fprintf(cmd.OutOrStdout(), "Placed %s on track %d at %s\n",
							placed.Name, placed.Track, formatSeconds(placed.TimelineStart))
						return
					}
					placed, err := s.Ops().AppendClip(src, track)
					if err != nil {
						placeErr = err
						return
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Appended %s to track %d at %s\n",
						placed.Name, placed.Track, formatSeconds(placed.TimelineStart))
				})
				return placeErr
			})
		},
	}

	cmd.Flags().IntVar(&track, "track", 0, "Target track")
	cmd.Flags().Float64Var(&at, "at", 0, "Timeline position in seconds (appends when omitted)")
	return cmd
}
