package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textvid/internal/subtitle"
	"textvid/internal/timing"
)

func TestMapper_TotalFramesTwoUnits(t *testing.T) {
	// Arrange: ceil(2.0*30) + ceil(0.25*30) + ceil(3.0*30) = 60 + 8 + 90
	units := []*subtitle.Unit{
		{SourceText: "你好。", AudioDurationSeconds: 2.0},
		{SourceText: "再见。", AudioDurationSeconds: 3.0},
	}
	m := NewMapper(30.0, 0.25)

	// Act
	spans, totalFrames, err := m.MapSpans(units)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, spans)
	assert.Equal(t, 158, totalFrames)
}

func TestMapper_SpansAnchoredToUnitCursor(t *testing.T) {
	// Arrange: the second unit's cue is placed after the first unit's
	// measured audio plus the pause, regardless of the first unit's tick sum
	first := subtitle.NewUnit("你好。")
	first.Cues = []subtitle.Cue{
		{Text: "你好。", StartTicks: 0, DurationTicks: 10_000_000}, // 1s of ticks
	}
	first.AudioDurationSeconds = 2.0 // mixed audio is longer than the tick sum

	second := subtitle.NewUnit("再见。")
	second.Cues = []subtitle.Cue{
		{Text: "再见。", StartTicks: 5_000_000, DurationTicks: 10_000_000},
	}
	second.AudioDurationSeconds = 1.0

	m := NewMapper(30.0, 0.25)

	// Act
	spans, totalFrames, err := m.MapSpans([]*subtitle.Unit{first, second})

	// Assert
	require.NoError(t, err)
	require.Len(t, spans, 2)

	assert.Equal(t, 0, spans[0].StartFrame)
	assert.Equal(t, 30, spans[0].EndFrame)

	// 60 (first unit audio) + 8 (pause) + 15 (cue tick offset)
	assert.Equal(t, 83, spans[1].StartFrame)
	assert.Equal(t, 113, spans[1].EndFrame)

	// 60 + 8 + 30
	assert.Equal(t, 98, totalFrames)
}

func TestMapper_SpansNonDecreasingAndNonOverlapping(t *testing.T) {
	// Arrange
	unit := subtitle.NewUnit("白日依山尽，黄河入海流。")
	unit.Cues = []subtitle.Cue{
		{Text: "白日依山尽，", StartTicks: 0, DurationTicks: 20_000_000},
		{Text: "黄河入海流。", StartTicks: 22_000_000, DurationTicks: 20_000_000},
	}
	unit.AudioDurationSeconds = 4.5

	m := NewMapper(30.0, 0.25)

	// Act
	spans, _, err := m.MapSpans([]*subtitle.Unit{unit})

	// Assert
	require.NoError(t, err)
	require.Len(t, spans, 2)
	for i := 1; i < len(spans); i++ {
		assert.GreaterOrEqual(t, spans[i].StartFrame, spans[i-1].StartFrame)
		assert.GreaterOrEqual(t, spans[i].StartFrame, spans[i-1].EndFrame)
	}
}

func TestMapper_SpanCuesReferenceUnitCues(t *testing.T) {
	// Arrange
	unit := subtitle.NewUnit("你好。")
	unit.Cues = []subtitle.Cue{
		{Text: "你好。", StartTicks: 0, DurationTicks: 5_000_000},
	}
	unit.AudioDurationSeconds = 1.0

	// Act
	spans, _, err := NewMapper(30.0, 0.25).MapSpans([]*subtitle.Unit{unit})

	// Assert
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Same(t, &unit.Cues[0], spans[0].Cue)
}

func TestMapper_FrameCountIdentity(t *testing.T) {
	// Arrange: incremental accumulation must agree with the closed form
	durations := []float64{1.2, 0.73, 2.001, 0.4}
	units := make([]*subtitle.Unit, len(durations))
	for i, d := range durations {
		units[i] = subtitle.NewUnit("无声。")
		units[i].AudioDurationSeconds = d
	}

	fps := 29.97
	pause := 0.25
	m := NewMapper(fps, pause)

	// Act
	_, totalFrames, err := m.MapSpans(units)

	// Assert
	require.NoError(t, err)

	expected := 0
	for _, d := range durations {
		frames, ferr := timing.FramesForSeconds(d, fps)
		require.NoError(t, ferr)
		expected += frames
	}
	pauseFrames, ferr := timing.FramesForSeconds(pause, fps)
	require.NoError(t, ferr)
	expected += pauseFrames * (len(durations) - 1)

	assert.Equal(t, expected, totalFrames)
}

func TestMapper_UnitWithZeroCuesStillConsumesTimeline(t *testing.T) {
	// Arrange: a silent unit (no cues) still occupies its audio + pause
	silent := subtitle.NewUnit("")
	silent.AudioDurationSeconds = 1.0

	speaking := subtitle.NewUnit("你好。")
	speaking.Cues = []subtitle.Cue{
		{Text: "你好。", StartTicks: 0, DurationTicks: 5_000_000},
	}
	speaking.AudioDurationSeconds = 1.0

	m := NewMapper(30.0, 0.25)

	// Act
	spans, totalFrames, err := m.MapSpans([]*subtitle.Unit{silent, speaking})

	// Assert
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, 38, spans[0].StartFrame) // 30 audio + 8 pause
	assert.Equal(t, 68, totalFrames)
}

func TestMapper_MissingAudioDuration(t *testing.T) {
	// Arrange: NewUnit leaves the duration unmeasured
	unit := subtitle.NewUnit("你好。")

	// Act
	spans, totalFrames, err := NewMapper(30.0, 0.25).MapSpans([]*subtitle.Unit{unit})

	// Assert
	assert.ErrorIs(t, err, ErrMissingAudioDuration)
	assert.Nil(t, spans)
	assert.Equal(t, 0, totalFrames)
}

func TestMapper_EmptyTimeline(t *testing.T) {
	// Act
	_, _, err := NewMapper(30.0, 0.25).MapSpans(nil)

	// Assert
	assert.ErrorIs(t, err, ErrEmptyTimeline)
}

func TestMapper_InvalidFrameRate(t *testing.T) {
	// Arrange
	unit := subtitle.NewUnit("你好。")
	unit.AudioDurationSeconds = 1.0

	// Act
	_, _, err := NewMapper(0, 0.25).MapSpans([]*subtitle.Unit{unit})

	// Assert
	assert.ErrorIs(t, err, timing.ErrInvalidFrameRate)
}

func TestMapper_Deterministic(t *testing.T) {
	// Arrange
	unit := subtitle.NewUnit("你好。")
	unit.Cues = []subtitle.Cue{
		{Text: "你好。", StartTicks: 0, DurationTicks: 5_000_000},
	}
	unit.AudioDurationSeconds = 1.0
	m := NewMapper(30.0, 0.25)

	// Act
	firstSpans, firstTotal, err1 := m.MapSpans([]*subtitle.Unit{unit})
	secondSpans, secondTotal, err2 := m.MapSpans([]*subtitle.Unit{unit})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, firstSpans, secondSpans)
	assert.Equal(t, firstTotal, secondTotal)
}
