// Package subtitle writes the SRT track and the section timeline
// artifact that the video stage aligns against.
package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime renders a millisecond offset as an SRT timestamp,
// HH:MM:SS,mmm.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	m := ms % 3600000 / 60000
	s := ms % 60000 / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// ParseTime reads an SRT timestamp back into milliseconds. Both the
// comma and dot millisecond separators are accepted since both appear
// in the wild.
func ParseTime(ts string) (int64, error) {
	normalized := strings.Replace(strings.TrimSpace(ts), ",", ".", 1)
	parts := strings.Split(normalized, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	h, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	m, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}

	secParts := strings.SplitN(parts[2], ".", 2)
	s, err := strconv.ParseInt(secParts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	var millis int64
	if len(secParts) == 2 {
		frac := secParts[1]
		for len(frac) < 3 {
			frac += "0"
		}
		millis, err = strconv.ParseInt(frac[:3], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
		}
	}

	return h*3600000 + m*60000 + s*1000 + millis, nil
}
