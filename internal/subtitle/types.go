package subtitle

import (
	"fmt"

	"textvid/internal/timing"
)

// WordTimestamp is a single word-boundary event reported by the speech
// engine for one synthesized token of a unit's source text. Character
// indices count runes, matching how the engine counts text positions.
type WordTimestamp struct {
	Text           string       `json:"text"`
	StartTicks     timing.Ticks `json:"start_ticks"`
	DurationTicks  timing.Ticks `json:"duration_ticks"`
	StartCharIndex int          `json:"start_char_index"`
	CharLength     int          `json:"char_length"`
}

// EndTicks returns the tick position at which the word ends
func (wt WordTimestamp) EndTicks() timing.Ticks {
	return wt.StartTicks + wt.DurationTicks
}

// Validate checks if the WordTimestamp has valid values
func (wt WordTimestamp) Validate() error {
	if wt.StartTicks < 0 {
		return fmt.Errorf("start_ticks cannot be negative")
	}

	if wt.DurationTicks < 0 {
		return fmt.Errorf("duration_ticks cannot be negative")
	}

	if wt.StartCharIndex < 0 {
		return fmt.Errorf("start_char_index cannot be negative")
	}

	if wt.CharLength < 0 {
		return fmt.Errorf("char_length cannot be negative")
	}

	return nil
}

// Cue is a contiguous span of source text displayed as one caption.
// DurationTicks is the sum of the constituent word durations, not
// last-end minus first-start; gaps between words do not count toward a
// cue's duration. Downstream placement depends on this exact arithmetic.
type Cue struct {
	Text          string       `json:"text"`
	StartTicks    timing.Ticks `json:"start_ticks"`
	DurationTicks timing.Ticks `json:"duration_ticks"`
}

// EndTicks returns the tick position at which the cue stops displaying
func (c Cue) EndTicks() timing.Ticks {
	return c.StartTicks + c.DurationTicks
}

// Unit is one narrated portion of a passage: its source text, the word
// timestamps reported while synthesizing it, the cues segmented from those
// timestamps, and the measured duration of its synthesized audio.
//
// AudioDurationSeconds is authoritative for timeline placement. It is
// supplied by the audio-mixing collaborator after synthesis and may differ
// from the tick sum (encoding overhead, fades). Negative means unmeasured.
type Unit struct {
	SourceText           string
	Timestamps           []WordTimestamp
	Cues                 []Cue
	AudioDurationSeconds float64
}

// NewUnit creates a Unit for the given source text with no measured audio
func NewUnit(sourceText string) *Unit {
	return &Unit{
		SourceText:           sourceText,
		AudioDurationSeconds: -1,
	}
}
