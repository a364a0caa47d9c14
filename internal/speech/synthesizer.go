package speech

import (
	"context"

	"textvid/internal/subtitle"
)

// Result is what synthesizing one unit's text produces: where the raw
// audio landed and the word timestamps reported along the way
type Result struct {
	AudioPath  string
	Timestamps []subtitle.WordTimestamp
}

// Synthesizer is the speech-synthesis collaborator. Implementations talk
// to a real engine (network service, local model); the timing core only
// consumes the word-timestamp stream they report.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Result, error)
}
