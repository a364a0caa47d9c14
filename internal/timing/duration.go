package timing

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// TicksPerSecond is the number of ticks in one second. A tick is 100
// nanoseconds, the native unit of the speech engine's word-boundary
// offsets and durations.
const TicksPerSecond = 10_000_000

// ErrInvalidFrameRate indicates a zero or negative frames-per-second value
var ErrInvalidFrameRate = errors.New("frame rate must be positive")

// Ticks is a raw duration reported by the speech engine, in 100ns units
type Ticks float64

// Seconds converts the tick count to seconds
func (t Ticks) Seconds() float64 {
	return float64(t) / TicksPerSecond
}

// Duration converts the tick count to a time.Duration
func (t Ticks) Duration() time.Duration {
	return time.Duration(float64(t) * 100 * float64(time.Nanosecond))
}

// FramesForSeconds converts a duration in seconds to a frame count at the
// given frame rate. The result always rounds up so a subtitle is never cut
// short by truncation.
func FramesForSeconds(seconds float64, fps float64) (int, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidFrameRate, fps)
	}
	return int(math.Ceil(seconds * fps)), nil
}

// FramesForTicks converts a raw tick duration to a frame count at the given
// frame rate
func FramesForTicks(ticks Ticks, fps float64) (int, error) {
	return FramesForSeconds(ticks.Seconds(), fps)
}
