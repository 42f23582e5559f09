package render

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// ProgressUpdate is one parsed block of ffmpeg's -progress stream. Percent
// is -1 when the total duration is unknown.
type ProgressUpdate struct {
	Percent float64
	OutTime time.Duration
	FPS     float64
	Speed   float64
	Done    bool
}

// ProgressFunc receives updates as a render advances. Callbacks run on the
// reader goroutine; keep them quick.
type ProgressFunc func(ProgressUpdate)

// parseProgress consumes ffmpeg "-progress pipe:1" output, which arrives as
// key=value lines terminated by a progress=continue or progress=end line per
// block. totalSeconds scales OutTime into Percent when positive.
func parseProgress(r io.Reader, totalSeconds float64, fn ProgressFunc) {
	if fn == nil {
		io.Copy(io.Discard, r)
		return
	}

	scanner := bufio.NewScanner(r)
	update := ProgressUpdate{Percent: -1}
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// Both keys carry microseconds; out_time_ms is misnamed
			// upstream.
			if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
				update.OutTime = time.Duration(us) * time.Microsecond
			}
		case "fps":
			if fps, err := strconv.ParseFloat(value, 64); err == nil {
				update.FPS = fps
			}
		case "speed":
			if speed, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
				update.Speed = speed
			}
		case "progress":
			update.Done = value == "end"
			if totalSeconds > 0 {
				pct := update.OutTime.Seconds() / totalSeconds * 100
				if pct > 100 {
					pct = 100
				}
				update.Percent = pct
			}
			if update.Done {
				update.Percent = 100
			}
			fn(update)
			update = ProgressUpdate{Percent: -1, OutTime: update.OutTime}
		}
	}
}
