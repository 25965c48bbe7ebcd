// Package markdown splits a daily digest document into titled sections
// and normalizes their text for narration.
package markdown

import (
	"bufio"
	"strings"
)

// Section is one "## " block of the digest. Indexable marks sections
// that belong in the published timeline; boilerplate openers and
// closers keep their air time but are not indexed.
type Section struct {
	Title     string
	Content   string
	Indexable bool
}

// Boilerplate titles produced by the digest generator. They never
// correspond to a news item, so no image or timeline entry exists for
// them.
var reservedTitles = map[string]struct{}{
	"单机游戏日报": {},
	"开场":     {},
	"结束":     {},
	"结束语":    {},
}

// Reserved reports whether title names a boilerplate opener or closer.
func Reserved(title string) bool {
	_, ok := reservedTitles[strings.TrimSpace(title)]
	return ok
}

// ParseSections splits src on level-two headings. Text before the
// first heading is discarded. Sections with an empty body are kept so
// the caller can log and skip them.
func ParseSections(src string) []Section {
	var sections []Section
	var current *Section
	var body strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(body.String())
		sections = append(sections, *current)
		body.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if title, ok := headingTitle(line); ok {
			flush()
			current = &Section{
				Title:     title,
				Indexable: !Reserved(title),
			}
			continue
		}
		if current != nil {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	flush()
	return sections
}

func headingTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "##") {
		return "", false
	}
	rest := trimmed[2:]
	if strings.HasPrefix(rest, "#") {
		// Deeper headings stay inside the current section.
		return "", false
	}
	title := strings.TrimSpace(rest)
	if title == "" {
		return "", false
	}
	return title, true
}
