package layout

// Measurer is the text-measurement capability supplied by the layout
// collaborator for a chosen font and size
type Measurer interface {
	Measure(text string) (width, height int)
}

// LineBox is one positioned line of a cue, ready for the renderer to draw
type LineBox struct {
	Text   string
	X      int
	Y      int
	Width  int
	Height int
}

// Planner breaks a cue's text into lines and positions them near the
// bottom edge of the frame
type Planner struct {
	maxCharsPerLine int
	frameWidth      int
	frameHeight     int
	bottomMargin    int
	measurer        Measurer
}

// NewPlanner creates a Planner for the given frame geometry. bottomMargin
// is the gap in pixels between the lowest line and the frame's bottom edge.
func NewPlanner(maxCharsPerLine, frameWidth, frameHeight, bottomMargin int, measurer Measurer) *Planner {
	return &Planner{
		maxCharsPerLine: maxCharsPerLine,
		frameWidth:      frameWidth,
		frameHeight:     frameHeight,
		bottomMargin:    bottomMargin,
		measurer:        measurer,
	}
}

// PlanLines splits text into consecutive chunks of at most maxCharsPerLine
// runes and stacks them bottom-up: the final (often shortest) line sits
// lowest, anchored bottomMargin pixels above the frame bottom, and each
// earlier line sits directly above the one after it. Lines are centered
// horizontally using their own measured widths. Boxes are clamped to the
// frame bounds; the clamp truncates the box, never the text, so an
// oversized measurement degrades to a cropped draw instead of a re-wrap.
func (p *Planner) PlanLines(text string) []LineBox {
	chunks := p.splitChunks(text)
	if len(chunks) == 0 {
		return nil
	}

	boxes := make([]LineBox, len(chunks))
	for i, chunk := range chunks {
		width, height := p.measurer.Measure(chunk)
		boxes[i] = LineBox{Text: chunk, Width: width, Height: height}
	}

	// Position bottom-up from the anchor line
	y := p.frameHeight - p.bottomMargin
	for i := len(boxes) - 1; i >= 0; i-- {
		y -= boxes[i].Height
		boxes[i].Y = y
		boxes[i].X = (p.frameWidth - boxes[i].Width) / 2
	}

	for i := range boxes {
		clampToFrame(&boxes[i], p.frameWidth, p.frameHeight)
	}

	return boxes
}

// BlockSize returns the bounding size of the planned lines: the widest
// line's width and the sum of the lines' heights
func BlockSize(boxes []LineBox) (width, height int) {
	for _, box := range boxes {
		if box.Width > width {
			width = box.Width
		}
		height += box.Height
	}
	return width, height
}

// splitChunks cuts text into runs of at most maxCharsPerLine runes; the
// last run may be shorter
func (p *Planner) splitChunks(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 || p.maxCharsPerLine <= 0 {
		return nil
	}

	var chunks []string
	for start := 0; start < len(runes); start += p.maxCharsPerLine {
		end := start + p.maxCharsPerLine
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// clampToFrame keeps the box inside the frame by truncating it
func clampToFrame(box *LineBox, frameWidth, frameHeight int) {
	if box.X < 0 {
		box.X = 0
	}
	if box.Y < 0 {
		box.Y = 0
	}
	if box.X+box.Width > frameWidth {
		box.Width = frameWidth - box.X
	}
	if box.Y+box.Height > frameHeight {
		box.Height = frameHeight - box.Y
	}
}
