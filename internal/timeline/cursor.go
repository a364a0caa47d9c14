package timeline

// Cursor walks a mapped span sequence alongside a renderer's frame loop.
// The renderer visits frames 0..totalFrames in order, so the cursor only
// ever moves forward; it never re-scans the spans from the beginning.
type Cursor struct {
	spans []FrameSpan
	next  int
}

// NewCursor creates a Cursor over spans already in StartFrame order
func NewCursor(spans []FrameSpan) *Cursor {
	return &Cursor{spans: spans}
}

// ActiveAt returns the span visible at the given frame, or nil if no cue is
// displayed there. Frames must be queried in non-decreasing order; a span
// is visible on frames [StartFrame, EndFrame).
func (c *Cursor) ActiveAt(frame int) *FrameSpan {
	for c.next < len(c.spans) && c.spans[c.next].EndFrame <= frame {
		c.next++
	}

	if c.next >= len(c.spans) {
		return nil
	}

	span := &c.spans[c.next]
	if span.StartFrame <= frame && frame < span.EndFrame {
		return span
	}
	return nil
}
