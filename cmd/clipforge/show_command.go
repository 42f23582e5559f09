package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/editor"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display a project summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditor(func(ed *editor.Editor) error {
				out := cmd.OutOrStdout()
				ed.View(func(s *editor.Session) {
					clips := s.Ops().Repo().All()

					var end float64
					maxTrack := -1
					tracks := map[int]int{}
					for _, clip := range clips {
						if clip.TimelineEnd > end {
							end = clip.TimelineEnd
						}
						tracks[clip.Track]++
						if clip.Track > maxTrack {
							maxTrack = clip.Track
						}
					}

					fmt.Fprintf(out, "Clips:        %d\n", len(clips))
					fmt.Fprintf(out, "Duration:     %s\n", formatSeconds(end))
					fmt.Fprintf(out, "Playhead:     %s\n", formatSeconds(s.Ops().Playhead()))
					fmt.Fprintf(out, "Zoom:         %g px/s\n", s.Zoom())
					if selected := s.Ops().SelectedClipID(); selected != "" {
						fmt.Fprintf(out, "Selected:     %s\n", selected)
					}
					for track := 0; track <= maxTrack; track++ {
						if count, ok := tracks[track]; ok {
							fmt.Fprintf(out, "Track %d:      %d clip(s)\n", track, count)
						}
					}
				})
				return nil
			})
		},
	}
}

func formatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	return fmt.Sprintf("%02d:%02d:%05.2f", whole/3600, (whole%3600)/60, seconds-float64(whole/60*60))
}
