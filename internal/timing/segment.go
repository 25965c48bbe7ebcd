package timing

import "strings"

const (
	// DefaultMaxChars keeps a caption on a single rendered line at 1920px.
	DefaultMaxChars = 30

	minorCutRatio  = 0.6
	backScanWindow = 5
)

var majorMarks = map[rune]bool{
	'，': true, '。': true, '！': true, '？': true, '；': true, '：': true,
	',': true, '!': true, '.': true, '?': true, ';': true, ':': true,
}

var minorMarks = map[rune]bool{
	'，': true, '、': true, '：': true, '；': true,
	',': true, ';': true,
}

// Splitter breaks prose into caption-sized pieces that respect punctuation
// boundaries and a maximum character budget.
type Splitter struct {
	maxChars int
}

func NewSplitter(maxChars int) *Splitter {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Splitter{maxChars: maxChars}
}

// Split returns the caption texts for one block of prose, in order. Empty or
// all-whitespace input yields no captions rather than an error.
func (s *Splitter) Split(text string) []string {
	var out []string
	for _, sentence := range splitSentences(text) {
		if len([]rune(sentence)) <= s.maxChars {
			out = append(out, sentence)
			continue
		}
		out = append(out, s.splitLong(sentence)...)
	}
	return out
}

// splitSentences cuts after every sentence-level mark, keeping the mark with
// the preceding text.
func splitSentences(text string) []string {
	var sentences []string
	var current []rune

	for _, r := range text {
		current = append(current, r)
		if majorMarks[r] {
			if piece := strings.TrimSpace(string(current)); piece != "" {
				sentences = append(sentences, piece)
			}
			current = current[:0]
		}
	}
	if piece := strings.TrimSpace(string(current)); piece != "" {
		sentences = append(sentences, piece)
	}
	return sentences
}

// splitLong cuts an over-budget sentence at minor punctuation where possible.
// Past 60% of the budget any minor mark ends the piece; at the hard budget we
// scan back a few characters for a mark or space, then force-cut.
func (s *Splitter) splitLong(sentence string) []string {
	runes := []rune(sentence)
	softCut := int(float64(s.maxChars) * minorCutRatio)

	var parts []string
	var current []rune

	flush := func(upTo int) {
		piece := strings.TrimSpace(string(current[:upTo]))
		if piece != "" {
			parts = append(parts, piece)
		}
		rest := strings.TrimSpace(string(current[upTo:]))
		current = current[:0]
		current = append(current, []rune(rest)...)
	}

	for _, r := range runes {
		current = append(current, r)

		switch {
		case len(current) >= softCut && minorMarks[r]:
			flush(len(current))
		case len(current) >= s.maxChars:
			cut := len(current)
			for j := len(current) - 1; j >= 0 && j >= len(current)-backScanWindow; j-- {
				if minorMarks[current[j]] || current[j] == ' ' || current[j] == '　' {
					cut = j + 1
					break
				}
			}
			flush(cut)
		}
	}

	if piece := strings.TrimSpace(string(current)); piece != "" {
		parts = append(parts, piece)
	}
	return parts
}
