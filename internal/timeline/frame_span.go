package timeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"textvid/internal/subtitle"
	"textvid/internal/timing"
)

// ErrMissingAudioDuration indicates a unit whose synthesized audio was
// never measured, or whose measured duration is negative
var ErrMissingAudioDuration = errors.New("unit has no measured audio duration")

// ErrEmptyTimeline indicates that no units were supplied to the mapper
var ErrEmptyTimeline = errors.New("no units to place on the timeline")

// FrameSpan is the absolute range of output-video frame indices during
// which one cue is visible: frames [StartFrame, EndFrame). The cue is a
// non-owning reference into its unit; the span must not outlive the unit.
type FrameSpan struct {
	Cue        *subtitle.Cue
	StartFrame int
	EndFrame   int
}

// Mapper places segmented units onto an absolute video frame timeline.
//
// Cue offsets within a unit come from the speech engine's ticks, but the
// unit-to-unit advance comes from the externally measured audio duration:
// the synthesized audio's real length and the tick sum are not guaranteed
// identical, and the mixed track is what the video must stay in sync with.
type Mapper struct {
	fps          float64
	pauseSeconds float64
	logger       *zap.Logger
}

// NewMapper creates a Mapper for the given frame rate and inter-unit pause
func NewMapper(fps, pauseSeconds float64) *Mapper {
	return NewMapperWithLogger(fps, pauseSeconds, zap.NewNop())
}

// NewMapperWithLogger creates a Mapper with the given logger
func NewMapperWithLogger(fps, pauseSeconds float64, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{
		fps:          fps,
		pauseSeconds: pauseSeconds,
		logger:       logger,
	}
}

// MapSpans walks the units in order, emitting one FrameSpan per cue and
// advancing a frame cursor by each unit's measured audio duration plus the
// inter-unit pause (skipped after the last unit). It returns the spans in
// non-decreasing StartFrame order and the total frame count of the video.
func (m *Mapper) MapSpans(units []*subtitle.Unit) ([]FrameSpan, int, error) {
	if len(units) == 0 {
		return nil, 0, ErrEmptyTimeline
	}

	pauseFrames, err := timing.FramesForSeconds(m.pauseSeconds, m.fps)
	if err != nil {
		return nil, 0, err
	}

	var spans []FrameSpan
	cursorFrame := 0

	for i, unit := range units {
		if unit.AudioDurationSeconds < 0 {
			return nil, 0, fmt.Errorf("unit %d: %w", i, ErrMissingAudioDuration)
		}

		for j := range unit.Cues {
			cue := &unit.Cues[j]

			offsetFrames, err := timing.FramesForTicks(cue.StartTicks, m.fps)
			if err != nil {
				return nil, 0, err
			}
			durationFrames, err := timing.FramesForTicks(cue.DurationTicks, m.fps)
			if err != nil {
				return nil, 0, err
			}

			startFrame := cursorFrame + offsetFrames
			spans = append(spans, FrameSpan{
				Cue:        cue,
				StartFrame: startFrame,
				EndFrame:   startFrame + durationFrames,
			})
		}

		unitFrames, err := timing.FramesForSeconds(unit.AudioDurationSeconds, m.fps)
		if err != nil {
			return nil, 0, err
		}
		cursorFrame += unitFrames

		if i < len(units)-1 {
			cursorFrame += pauseFrames
		}
	}

	m.logger.Debug("mapped units to frame spans",
		zap.Int("units", len(units)),
		zap.Int("spans", len(spans)),
		zap.Int("total_frames", cursorFrame))

	return spans, cursorFrame, nil
}
