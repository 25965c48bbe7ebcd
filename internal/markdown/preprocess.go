package markdown

import (
	"regexp"
	"strings"
)

var (
	acronymRe   = regexp.MustCompile(`(?:[A-Z]\.){2,}[A-Z]?\.?`)
	wikiImageRe = regexp.MustCompile(`!\[\[.*?\]\]`)
	imageRe     = regexp.MustCompile(`!\[.*?\] *\(.*?\)`)
	linkRe      = regexp.MustCompile(`\[(.*?)\] *\(.*?\)`)
	sentenceDot = regexp.MustCompile(`\.(\s|$)`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Preprocess strips markdown markup from a section body and smooths
// the remaining text for speech synthesis: dotted acronyms collapse
// (S.T.A.L.K.E.R. reads as STALKER), images are dropped, links keep
// only their label, ASCII quotes become paired CJK quotes, and
// sentence-final periods become 。 so the voice pauses naturally.
func Preprocess(text string) string {
	text = acronymRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, ".", "")
	})
	text = wikiImageRe.ReplaceAllString(text, "")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "-", " ")
	text = pairQuotes(text)
	text = sentenceDot.ReplaceAllString(text, "。$1")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// pairQuotes rewrites ASCII double quotes as CJK quotes, alternating
// opening and closing marks so a quoted phrase comes out as “…”.
func pairQuotes(text string) string {
	var b strings.Builder
	open := true
	for _, r := range text {
		if r != '"' {
			b.WriteRune(r)
			continue
		}
		if open {
			b.WriteRune('“')
		} else {
			b.WriteRune('”')
		}
		open = !open
	}
	return b.String()
}

// SanitizeFilename replaces characters that are unsafe in file names.
var unsafeFilenameRe = regexp.MustCompile(`["'\s\\/:*?<>|]`)

func SanitizeFilename(name string) string {
	return unsafeFilenameRe.ReplaceAllString(name, "_")
}
