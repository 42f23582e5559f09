package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/editor"
	"clipforge/internal/timeline"
)

func newClipsCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "clips",
		Short: "List timeline clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditor(func(ed *editor.Editor) error {
				var clips []timeline.Clip
				ed.View(func(s *editor.Session) {
					clips = s.Ops().Repo().All()
				})

				out := cmd.OutOrStdout()
				if len(clips) == 0 {
					fmt.Fprintln(out, "Timeline is empty")
					return nil
				}

				headers := []string{"ID", "Name", "Track", "Start", "End", "Trim In", "Trim Out", "Muted"}
				rows := make([][]string, 0, len(clips))
				for _, clip := range clips {
					rows = append(rows, []string{
						shortID(clip.ID),
						clip.Name,
						strconv.Itoa(clip.Track),
						formatSeconds(clip.TimelineStart),
						formatSeconds(clip.TimelineEnd),
						formatSeconds(clip.TrimStart),
						formatSeconds(clip.TrimEnd),
						yesNo(clip.Muted),
					})
				}

				if plain || !isTerminal(out) {
					for _, row := range rows {
						fmt.Fprintln(out, strings.Join(row, "\t"))
					}
					return nil
				}

				aligns := []columnAlignment{
					alignLeft, alignLeft, alignRight,
					alignRight, alignRight, alignRight, alignRight,
					alignLeft,
				}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Tab-separated output without table drawing")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
