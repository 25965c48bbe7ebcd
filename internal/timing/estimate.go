package timing

const (
	// DefaultCharsPerSecond matches the narration speed of the synthesis
	// voice closely enough for provisional scheduling.
	DefaultCharsPerSecond = 4.5

	// DefaultMinSeconds keeps degenerate captions visible for a
	// perceivable interval.
	DefaultMinSeconds = 0.5
)

// Estimator assigns a provisional spoken duration to caption text using a
// fixed characters-per-second model.
type Estimator struct {
	charsPerSecond float64
	minSeconds     float64
}

func NewEstimator(charsPerSecond, minSeconds float64) *Estimator {
	if charsPerSecond <= 0 {
		charsPerSecond = DefaultCharsPerSecond
	}
	if minSeconds <= 0 {
		minSeconds = DefaultMinSeconds
	}
	return &Estimator{charsPerSecond: charsPerSecond, minSeconds: minSeconds}
}

// Estimate returns the provisional duration in seconds. Only characters that
// are actually voiced count: ASCII letters, digits, and CJK ideographs.
// Punctuation and whitespace are free.
func (e *Estimator) Estimate(text string) float64 {
	count := 0
	for _, r := range text {
		if isVoiced(r) {
			count++
		}
	}

	duration := float64(count) / e.charsPerSecond
	if duration < e.minSeconds {
		return e.minSeconds
	}
	return duration
}

// BuildTimeline chains caption texts into contiguous estimated intervals
// starting at zero. The returned units always satisfy
// units[i].End == units[i+1].Start.
func (e *Estimator) BuildTimeline(texts []string) []Unit {
	units := make([]Unit, 0, len(texts))
	cursor := 0.0

	for _, text := range texts {
		duration := e.Estimate(text)
		units = append(units, Unit{
			Text:  text,
			Start: cursor,
			End:   cursor + duration,
		})
		cursor += duration
	}
	return units
}

func isVoiced(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r >= 0x4E00 && r <= 0x9FA5:
		return true
	}
	return false
}
