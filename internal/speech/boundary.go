package speech

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"textvid/internal/subtitle"
	"textvid/internal/timing"
)

// BoundaryEvent is one metadata event from the synthesis engine's stream.
// Offsets and durations are in the engine's native 100ns ticks. The engine
// interleaves these with audio chunks; only word boundaries matter here.
type BoundaryEvent struct {
	Type          string       `json:"type"`
	Text          string       `json:"text"`
	OffsetTicks   timing.Ticks `json:"offset"`
	DurationTicks timing.Ticks `json:"duration"`
}

// WordBoundaryType marks an event reported for one synthesized word
const WordBoundaryType = "WordBoundary"

// CollectTimestamps folds the unit's boundary events into word timestamps.
// The engine reports no character positions, so the character index is
// accumulated here: each word's index is the running rune count of the
// words before it. Events other than word boundaries are skipped.
func CollectTimestamps(events []BoundaryEvent) []subtitle.WordTimestamp {
	var timestamps []subtitle.WordTimestamp
	charIndex := 0

	for _, event := range events {
		if event.Type != WordBoundaryType {
			continue
		}

		charLength := utf8.RuneCountInString(event.Text)
		timestamps = append(timestamps, subtitle.WordTimestamp{
			Text:           event.Text,
			StartTicks:     event.OffsetTicks,
			DurationTicks:  event.DurationTicks,
			StartCharIndex: charIndex,
			CharLength:     charLength,
		})
		charIndex += charLength
	}

	return timestamps
}

// ReadTimestamps decodes a stream of JSON boundary events, one object per
// line, and folds them into word timestamps
func ReadTimestamps(r io.Reader) ([]subtitle.WordTimestamp, error) {
	var events []BoundaryEvent

	decoder := json.NewDecoder(r)
	for {
		var event BoundaryEvent
		if err := decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode boundary event: %w", err)
		}
		events = append(events, event)
	}

	return CollectTimestamps(events), nil
}
