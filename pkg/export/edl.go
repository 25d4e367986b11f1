// Package export renders timelines into interchange formats consumable
// by downstream render pipelines.
package export

import (
	"fmt"
	"math"
	"strings"

	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
)

// Options controls EDL generation
type Options struct {
	Title     string
	FrameRate float64
}

// GenerateEDL renders a timeline as a CMX3600 edit decision list. Video
// tracks map to channel V and audio tracks to channel A, in stacking
// order; effects tracks have no EDL representation and are skipped, as
// are muted clips and clips on muted tracks. Source in/out come from the
// clip's trim window into its media; record in/out come from its
// placement on the timeline.
func GenerateEDL(tl *aggregates.Timeline, opts Options) string {
	fps := int(math.Round(opts.FrameRate))
	if fps <= 0 {
		fps = 30
	}
	isDropFrame := math.Abs(opts.FrameRate-29.97) < 0.01 || math.Abs(opts.FrameRate-59.94) < 0.01

	title := SanitizeName(opts.Title, 70)
	if title == "" {
		title = SanitizeName(tl.Name(), 70)
	}

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	event := 0
	for _, track := range tl.Tracks() {
		channel := edlChannel(track.Type())
		if channel == "" || track.Muted() {
			continue
		}
		for _, clip := range track.ClipsInOrder() {
			if clip.Muted() {
				continue
			}
			event++

			srcIn := secondsToTimecode(clip.Trim().Start(), fps)
			srcOut := secondsToTimecode(clip.Trim().Start()+clip.EffectiveDuration(), fps)
			recIn := secondsToTimecode(clip.StartTime(), fps)
			recOut := secondsToTimecode(clip.EndTime(), fps)

			lines = append(lines,
				fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", event, "AX", channel, srcIn, srcOut, recIn, recOut),
				fmt.Sprintf("* FROM CLIP NAME:  %s", SanitizeName(clip.Name(), 0)),
				fmt.Sprintf("* SOURCE MEDIA:  %s", clip.MediaID().String()),
			)
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func edlChannel(t valueobjects.TrackType) string {
	switch t {
	case valueobjects.TrackTypeVideo:
		return "V"
	case valueobjects.TrackTypeAudio:
		return "A"
	default:
		return ""
	}
}

func secondsToTimecode(seconds float64, fps int) string {
	totalFrames := int(math.Round(seconds * float64(fps)))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	secs := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, secs, frames)
}
