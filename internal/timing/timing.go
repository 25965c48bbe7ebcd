// Package timing converts narration text into caption intervals and keeps
// them synchronized with measured audio across a whole batch.
//
// The flow is estimate-then-calibrate: captions are first laid out on a
// provisional timeline derived from a reading-rate model, then linearly
// rescaled once the real audio duration for the section is known. Estimated
// values never leave this package.
package timing

// Unit is one caption on the estimated, section-local timeline. Times are
// seconds from the start of the section.
type Unit struct {
	Text  string
	Start float64
	End   float64
}

// Caption is one calibrated caption on the global batch clock. Times are
// integer milliseconds.
type Caption struct {
	Text    string
	StartMs int64
	EndMs   int64
}

// DurationMs returns the caption's display duration.
func (c Caption) DurationMs() int64 {
	return c.EndMs - c.StartMs
}

// TotalDuration returns the end of the last unit, which equals the section's
// estimated duration because units are contiguous from zero.
func TotalDuration(units []Unit) float64 {
	if len(units) == 0 {
		return 0
	}
	return units[len(units)-1].End
}
