package passage

import "strings"

// Passage is a written work split into narratable parts: the first
// non-empty line is the title, the second is the author, and every
// remaining non-empty line is one content unit.
type Passage struct {
	Title    string
	Author   string
	Contents []string
}

// Parse splits raw passage text into title, author and content lines.
// Blank lines are skipped anywhere; content lines are trimmed of
// surrounding whitespace.
func Parse(rawText string) *Passage {
	p := &Passage{}

	titleSet := false
	authorSet := false

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}

		switch {
		case !titleSet:
			p.Title = line
			titleSet = true
		case !authorSet:
			p.Author = line
			authorSet = true
		default:
			p.Contents = append(p.Contents, strings.TrimSpace(line))
		}
	}

	return p
}
