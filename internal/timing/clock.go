package timing

// DefaultSilenceMs is the pause inserted between sections on the master
// audio track.
const DefaultSilenceMs int64 = 1000

// Entry is one indexed section's occupancy on the global clock.
type Entry struct {
	Title   string
	StartMs int64
	EndMs   int64
}

// Clock is the single running time offset shared by every section of a
// batch. It only ever moves forward, and only when a section has fully
// succeeded: failed sections must not call Commit, so they consume no time.
type Clock struct {
	silenceMs int64
	cursorMs  int64
	entries   []Entry
}

func NewClock(silenceMs int64) *Clock {
	if silenceMs < 0 {
		silenceMs = DefaultSilenceMs
	}
	return &Clock{silenceMs: silenceMs}
}

// NowMs returns the current global offset. Captions for a section are
// calibrated against the value observed before that section's Commit.
func (c *Clock) NowMs() int64 {
	return c.cursorMs
}

// SilenceMs returns the configured inter-section pause.
func (c *Clock) SilenceMs() int64 {
	return c.silenceMs
}

// Commit records a finished section and advances the cursor by its audio
// duration, plus the inter-section silence unless the section is the last in
// the batch. The entry is added to the indexed timeline only when the
// section is indexable; reserved opener/closer sections still occupy real
// time, they are just not indexed.
func (c *Clock) Commit(title string, audioDurationMs int64, addSilence, indexable bool) Entry {
	entry := Entry{Title: title, StartMs: c.cursorMs}

	c.cursorMs += audioDurationMs
	if addSilence {
		c.cursorMs += c.silenceMs
	}
	entry.EndMs = c.cursorMs

	if indexable {
		c.entries = append(c.entries, entry)
	}
	return entry
}

// Entries returns the indexed sections in commit order.
func (c *Clock) Entries() []Entry {
	return c.entries
}
