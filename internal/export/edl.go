// Package export writes the timeline out as a CMX 3600 edit decision list
// so a cut can move into a conforming tool. The EDL names source files in
// comment lines the way modern NLEs emit them.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// DefaultFrameRate is used when the project does not pin one.
const DefaultFrameRate = 30.0

// Event is one edit in the flattened program: a source window plus the
// file it cuts from. Times are milliseconds of source time.
type Event struct {
	ClipName    string
	MediaPath   string
	SourceInMs  int
	SourceOutMs int
}

// GenerateEDL renders the events as a CMX 3600 list. Record times pack the
// events back to back; gaps in the timeline do not produce black.
func GenerateEDL(events []Event, title string, frameRate float64) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = int(DefaultFrameRate)
	}

	dropFrame := math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if dropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	recordMs := 0
	for i, event := range events {
		durationMs := event.SourceOutMs - event.SourceInMs
		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s",
				i+1, "AX", "V",
				msToTimecode(event.SourceInMs, fps),
				msToTimecode(event.SourceOutMs, fps),
				msToTimecode(recordMs, fps),
				msToTimecode(recordMs+durationMs, fps),
			),
			fmt.Sprintf("* FROM CLIP NAME:  %s", event.ClipName),
			fmt.Sprintf("* MEDIA PATH:  %s", event.MediaPath),
		)
		recordMs += durationMs
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// WriteEDL streams the generated list to w.
func WriteEDL(w io.Writer, events []Event, title string, frameRate float64) error {
	if _, err := io.WriteString(w, GenerateEDL(events, title, frameRate)); err != nil {
		return fmt.Errorf("write edl: %w", err)
	}
	return nil
}

func msToTimecode(ms, fps int) string {
	totalFrames := int(math.Round(float64(ms) * float64(fps) / 1000.0))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
