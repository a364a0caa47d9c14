package subtitle

import (
	"fmt"
	"strings"
	"time"

	"textvid/internal/timing"
)

// ComposeSRT renders cues in SubRip format, a convenience export for
// checking narration timing in a regular subtitle player. Cue numbering
// starts at 1.
func ComposeSRT(cues []Cue) string {
	var b strings.Builder

	for i, cue := range cues {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", formatSRTTimestamp(cue.StartTicks), formatSRTTimestamp(cue.EndTicks()))
		fmt.Fprintf(&b, "%s\n", cue.Text)
	}

	return b.String()
}

// formatSRTTimestamp renders ticks as the HH:MM:SS,mmm form SubRip expects
func formatSRTTimestamp(t timing.Ticks) string {
	d := t.Duration()

	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := int(d / time.Second)
	d -= time.Duration(seconds) * time.Second
	millis := int(d / time.Millisecond)

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
