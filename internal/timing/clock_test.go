package timing

import "testing"

func TestClockAccumulation(t *testing.T) {
	// Three sections with real audio 9s/5s/12s and 1s inter-section
	// silence: silence after sections 1 and 2 only, none after the last.
	clock := NewClock(1000)

	first := clock.Commit("one", 9000, true, true)
	second := clock.Commit("two", 5000, true, true)
	third := clock.Commit("three", 12000, false, true)

	want := []Entry{
		{Title: "one", StartMs: 0, EndMs: 10000},
		{Title: "two", StartMs: 10000, EndMs: 16000},
		{Title: "three", StartMs: 16000, EndMs: 28000},
	}

	got := []Entry{first, second, third}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if clock.NowMs() != 28000 {
		t.Errorf("final cursor = %d, want 28000", clock.NowMs())
	}
	if len(clock.Entries()) != 3 {
		t.Errorf("got %d entries, want 3", len(clock.Entries()))
	}
}

func TestClockMonotonicity(t *testing.T) {
	clock := NewClock(1000)

	durations := []int64{3000, 500, 12000, 1, 7000}
	var prev Entry
	for i, d := range durations {
		entry := clock.Commit("s", d, i < len(durations)-1, true)
		if entry.EndMs <= entry.StartMs {
			t.Errorf("section %d has non-positive span: %+v", i, entry)
		}
		if i > 0 && entry.StartMs < prev.EndMs {
			t.Errorf("section %d starts at %d before previous end %d", i, entry.StartMs, prev.EndMs)
		}
		prev = entry
	}
}

func TestClockReservedSectionsKeepTheirTime(t *testing.T) {
	clock := NewClock(1000)

	clock.Commit("开场", 4000, true, false)
	entry := clock.Commit("新闻一", 6000, true, true)
	clock.Commit("结束", 3000, false, false)

	// The opener is not indexed but its audio and silence still occupy
	// the clock.
	if entry.StartMs != 5000 {
		t.Errorf("indexed section starts at %d, want 5000", entry.StartMs)
	}

	entries := clock.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d indexed entries, want 1", len(entries))
	}
	if entries[0].Title != "新闻一" {
		t.Errorf("indexed title = %q, want %q", entries[0].Title, "新闻一")
	}
	if clock.NowMs() != 15000 {
		t.Errorf("final cursor = %d, want 15000", clock.NowMs())
	}
}

func TestClockSkippedSectionConsumesNoTime(t *testing.T) {
	clock := NewClock(1000)

	clock.Commit("ok", 2000, true, true)
	before := clock.NowMs()

	// A failed section never commits; the cursor must be untouched.
	if clock.NowMs() != before {
		t.Fatalf("cursor moved without a commit")
	}

	entry := clock.Commit("next", 4000, false, true)
	if entry.StartMs != before {
		t.Errorf("next section starts at %d, want %d", entry.StartMs, before)
	}
}
