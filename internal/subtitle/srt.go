package subtitle

import (
	"fmt"
	"os"
	"strings"

	"newsreel/internal/timing"
)

// ToSRT renders captions as a numbered SRT document. Caption times are
// already on the global clock, so one document covers the whole batch.
func ToSRT(captions []timing.Caption) string {
	var sb strings.Builder
	for i, c := range captions {
		sb.WriteString(fmt.Sprintf("%d\n%s --> %s\n%s\n\n",
			i+1, FormatTime(c.StartMs), FormatTime(c.EndMs), c.Text))
	}
	return sb.String()
}

// SaveSRT writes the caption track to path.
func SaveSRT(path string, captions []timing.Caption) error {
	if err := os.WriteFile(path, []byte(ToSRT(captions)), 0644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}

// ParseSRT reads a caption track back into memory. Entry numbers are
// ignored; order on disk wins.
func ParseSRT(src string) ([]timing.Caption, error) {
	var captions []timing.Caption

	blocks := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// lines[0] is the sequence number, lines[1] the time range.
		timeRange := lines[1]
		parts := strings.SplitN(timeRange, "-->", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed time range %q", timeRange)
		}
		start, err := ParseTime(parts[0])
		if err != nil {
			return nil, err
		}
		end, err := ParseTime(parts[1])
		if err != nil {
			return nil, err
		}

		captions = append(captions, timing.Caption{
			Text:    strings.Join(lines[2:], "\n"),
			StartMs: start,
			EndMs:   end,
		})
	}
	return captions, nil
}

// LoadSRT reads the caption track at path.
func LoadSRT(path string) ([]timing.Caption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	return ParseSRT(string(data))
}
