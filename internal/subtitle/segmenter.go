package subtitle

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"textvid/internal/timing"
)

// DefaultSplittingMarks are the punctuation marks that close a cue when
// they follow a word.
const DefaultSplittingMarks = "，。！？；："

// DefaultTrailingMarks are the wider set of marks attached to the preceding
// word's display text before the split decision is made. Always treated as
// a superset of the splitting marks.
const DefaultTrailingMarks = "，。！？；：、—（）【】《》“”‘’"

// ErrInvalidTimestampOrder indicates word timestamps that are inconsistent
// with the unit's source text: character ranges running past the end of the
// text or start indices moving backward.
var ErrInvalidTimestampOrder = errors.New("word timestamps inconsistent with source text")

// Segmenter groups a unit's word-timestamp stream into subtitle cues.
// Segmentation is a pure per-unit pass; no state survives between calls,
// so one Segmenter may serve many units, concurrently.
type Segmenter struct {
	splitting map[rune]struct{}
	trailing  map[rune]struct{}
	logger    *zap.Logger
}

// NewSegmenter creates a Segmenter with the default punctuation alphabets
func NewSegmenter() *Segmenter {
	return NewSegmenterWithLogger(zap.NewNop())
}

// NewSegmenterWithLogger creates a Segmenter with the default punctuation
// alphabets and the given logger
func NewSegmenterWithLogger(logger *zap.Logger) *Segmenter {
	return NewCustomSegmenter(DefaultSplittingMarks, DefaultTrailingMarks, logger)
}

// NewCustomSegmenter creates a Segmenter with explicit punctuation
// alphabets. Splitting marks are folded into the trailing set so the
// superset relationship always holds.
func NewCustomSegmenter(splittingMarks, trailingMarks string, logger *zap.Logger) *Segmenter {
	if logger == nil {
		logger = zap.NewNop()
	}

	splitting := make(map[rune]struct{})
	for _, r := range splittingMarks {
		splitting[r] = struct{}{}
	}

	trailing := make(map[rune]struct{})
	for _, r := range trailingMarks {
		trailing[r] = struct{}{}
	}
	for r := range splitting {
		trailing[r] = struct{}{}
	}

	return &Segmenter{
		splitting: splitting,
		trailing:  trailing,
		logger:    logger,
	}
}

// Segment groups the ordered word timestamps of one unit into cues. The
// cursor walks sourceText by rune, extending each word with any run of
// trailing punctuation, and closes the current cue when the run contains a
// splitting mark, the text is exhausted, or a splitting mark sits directly
// after the word. A trailing cue left open when the timestamps run out is
// still flushed; content is never dropped.
func (s *Segmenter) Segment(sourceText string, timestamps []WordTimestamp) ([]Cue, error) {
	runes := []rune(sourceText)

	var cues []Cue
	cursor := 0
	prevStartIndex := -1

	var accText string
	var accStart, accDuration timing.Ticks

	for i, ts := range timestamps {
		if ts.StartCharIndex < prevStartIndex {
			return nil, fmt.Errorf("timestamp %d: start index %d precedes %d: %w",
				i, ts.StartCharIndex, prevStartIndex, ErrInvalidTimestampOrder)
		}
		prevStartIndex = ts.StartCharIndex

		wordEnd := cursor + ts.CharLength
		if ts.CharLength < 0 || wordEnd > len(runes) {
			return nil, fmt.Errorf("timestamp %d: word %q runs past end of source text: %w",
				i, ts.Text, ErrInvalidTimestampOrder)
		}

		run := s.trailingRun(runes, wordEnd)
		extendedEnd := wordEnd + run

		if len(accText) == 0 {
			accStart = ts.StartTicks
		}
		accText += string(runes[cursor:extendedEnd])
		accDuration += ts.DurationTicks

		if s.shouldFlush(runes, wordEnd, extendedEnd) {
			cues = append(cues, Cue{
				Text:          accText,
				StartTicks:    accStart,
				DurationTicks: accDuration,
			})
			accText = ""
			accStart = 0
			accDuration = 0
		}

		cursor = extendedEnd
	}

	if len(accText) > 0 {
		cues = append(cues, Cue{
			Text:          accText,
			StartTicks:    accStart,
			DurationTicks: accDuration,
		})
	}

	s.logger.Debug("segmented unit into cues",
		zap.Int("timestamps", len(timestamps)),
		zap.Int("cues", len(cues)))

	return cues, nil
}

// SegmentUnit segments the unit's timestamps and stores the cues on it
func (s *Segmenter) SegmentUnit(unit *Unit) error {
	cues, err := s.Segment(unit.SourceText, unit.Timestamps)
	if err != nil {
		return err
	}
	unit.Cues = cues
	return nil
}

// SegmentAll segments every unit, one goroutine per unit. Units share no
// state, so the only coordination is the join. The first error by unit
// order is returned.
func (s *Segmenter) SegmentAll(units []*Unit) error {
	var wg sync.WaitGroup
	errs := make([]error, len(units))

	for i, unit := range units {
		wg.Add(1)
		go func(i int, unit *Unit) {
			defer wg.Done()
			errs[i] = s.SegmentUnit(unit)
		}(i, unit)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
	}
	return nil
}

// trailingRun counts the contiguous trailing-attachment marks starting at
// index start
func (s *Segmenter) trailingRun(runes []rune, start int) int {
	count := 0
	for i := start; i < len(runes); i++ {
		if _, ok := s.trailing[runes[i]]; !ok {
			break
		}
		count++
	}
	return count
}

// shouldFlush decides whether the cue being accumulated closes at this
// word. wordEnd is the index just past the word itself; extendedEnd is the
// index just past its trailing punctuation run.
func (s *Segmenter) shouldFlush(runes []rune, wordEnd, extendedEnd int) bool {
	for i := wordEnd; i < extendedEnd; i++ {
		if _, ok := s.splitting[runes[i]]; ok {
			return true
		}
	}

	if extendedEnd >= len(runes) {
		return true
	}

	_, ok := s.splitting[runes[wordEnd]]
	return ok
}
