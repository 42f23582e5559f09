package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"clipforge/internal/logging"
	"clipforge/internal/render"
	"clipforge/internal/snapshot"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and project health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			healthy := true

			report := func(label string, ok bool, detail string) {
				status := "ok"
				if !ok {
					status = "MISSING"
					healthy = false
				}
				fmt.Fprintf(out, "%-14s %-8s %s\n", label, status, detail)
			}

			renderer := render.NewFFmpeg(cfg.FFmpegBinary(), logging.NewNop())
			report("ffmpeg", renderer.Available() == nil, cfg.FFmpegBinary())

			ffprobe := cfg.FFprobeBinary()
			_, probeErr := exec.LookPath(ffprobe)
			report("ffprobe", probeErr == nil, ffprobe)

			for _, dir := range []struct {
				label string
				path  string
			}{
				{"project dir", cfg.Paths.ProjectDir},
				{"media dir", cfg.Paths.MediaDir},
				{"export dir", cfg.Paths.ExportDir},
			} {
				info, statErr := os.Stat(dir.path)
				report(dir.label, statErr == nil && info.IsDir(), dir.path)
			}

			store, storeErr := snapshot.Open(cfg.Paths.ProjectDir)
			if storeErr != nil {
				report("database", false, storeErr.Error())
			} else {
				_, _, loadErr := store.Load(context.Background())
				store.Close()
				report("database", loadErr == nil, "project.db")
			}

			if !healthy {
				return fmt.Errorf("environment has problems; fix the entries marked MISSING")
			}
			fmt.Fprintln(out, "Everything looks good")
			return nil
		},
	}
}
