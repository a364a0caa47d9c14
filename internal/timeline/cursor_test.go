package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textvid/internal/subtitle"
)

func TestCursor_ForwardWalk(t *testing.T) {
	// Arrange
	cues := []subtitle.Cue{
		{Text: "你好。"},
		{Text: "再见。"},
	}
	spans := []FrameSpan{
		{Cue: &cues[0], StartFrame: 0, EndFrame: 30},
		{Cue: &cues[1], StartFrame: 45, EndFrame: 75},
	}
	cursor := NewCursor(spans)

	// Act / Assert: one pass over every frame, as a renderer would walk
	for frame := 0; frame < 90; frame++ {
		active := cursor.ActiveAt(frame)
		switch {
		case frame < 30:
			require.NotNil(t, active, "frame %d", frame)
			assert.Equal(t, "你好。", active.Cue.Text)
		case frame < 45:
			assert.Nil(t, active, "frame %d", frame)
		case frame < 75:
			require.NotNil(t, active, "frame %d", frame)
			assert.Equal(t, "再见。", active.Cue.Text)
		default:
			assert.Nil(t, active, "frame %d", frame)
		}
	}
}

func TestCursor_EndFrameExclusive(t *testing.T) {
	// Arrange
	cue := subtitle.Cue{Text: "你好。"}
	cursor := NewCursor([]FrameSpan{{Cue: &cue, StartFrame: 10, EndFrame: 20}})

	// Act / Assert
	assert.Nil(t, cursor.ActiveAt(9))
	assert.NotNil(t, cursor.ActiveAt(10))
	assert.NotNil(t, cursor.ActiveAt(19))
	assert.Nil(t, cursor.ActiveAt(20))
}

func TestCursor_EmptySpans(t *testing.T) {
	// Act
	active := NewCursor(nil).ActiveAt(0)

	// Assert
	assert.Nil(t, active)
}

func TestCursor_RepeatedFrameQueries(t *testing.T) {
	// Arrange: a renderer may probe the same frame more than once
	cue := subtitle.Cue{Text: "你好。"}
	cursor := NewCursor([]FrameSpan{{Cue: &cue, StartFrame: 0, EndFrame: 5}})

	// Act / Assert
	assert.NotNil(t, cursor.ActiveAt(3))
	assert.NotNil(t, cursor.ActiveAt(3))
}
