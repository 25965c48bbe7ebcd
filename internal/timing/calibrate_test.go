package timing

import "testing"

func TestCalibrateScale(t *testing.T) {
	// Estimated total 10s, real audio 15s: factor 1.5, so a caption at
	// [2.0, 4.0) lands on [3000, 6000) before any global offset.
	units := []Unit{
		{Text: "a", Start: 0, End: 2},
		{Text: "b", Start: 2, End: 4},
		{Text: "c", Start: 4, End: 10},
	}

	captions := Calibrate(units, 15000, 0)

	if len(captions) != 3 {
		t.Fatalf("got %d captions, want 3", len(captions))
	}
	if captions[1].StartMs != 3000 || captions[1].EndMs != 6000 {
		t.Errorf("caption 1 = [%d, %d), want [3000, 6000)", captions[1].StartMs, captions[1].EndMs)
	}
	if captions[2].EndMs != 15000 {
		t.Errorf("last caption ends at %d, want 15000", captions[2].EndMs)
	}
}

func TestCalibrateGlobalOffset(t *testing.T) {
	units := []Unit{
		{Text: "a", Start: 0, End: 1},
		{Text: "b", Start: 1, End: 2},
	}

	captions := Calibrate(units, 2000, 30000)

	if captions[0].StartMs != 30000 {
		t.Errorf("first caption starts at %d, want 30000", captions[0].StartMs)
	}
	if captions[1].EndMs != 32000 {
		t.Errorf("last caption ends at %d, want 32000", captions[1].EndMs)
	}
}

func TestCalibrateSpansAudioDuration(t *testing.T) {
	tests := []struct {
		name    string
		units   []Unit
		audioMs int64
	}{
		{
			name: "stretch",
			units: []Unit{
				{Text: "a", Start: 0, End: 3.3},
				{Text: "b", Start: 3.3, End: 5.1},
				{Text: "c", Start: 5.1, End: 8.0},
			},
			audioMs: 12345,
		},
		{
			name: "shrink",
			units: []Unit{
				{Text: "a", Start: 0, End: 4.7},
				{Text: "b", Start: 4.7, End: 9.9},
			},
			audioMs: 7001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captions := Calibrate(tt.units, tt.audioMs, 0)

			var total int64
			for i, c := range captions {
				if c.EndMs <= c.StartMs {
					t.Errorf("caption %d has non-positive duration", i)
				}
				if i > 0 && captions[i-1].EndMs != c.StartMs {
					t.Errorf("captions %d and %d not contiguous", i-1, i)
				}
				total += c.DurationMs()
			}

			// Integer rounding may drift by up to 1ms per caption edge.
			drift := total - tt.audioMs
			if drift < -int64(len(captions)) || drift > int64(len(captions)) {
				t.Errorf("total caption duration %d, want %d (±%d)", total, tt.audioMs, len(captions))
			}
			if captions[len(captions)-1].EndMs != tt.audioMs {
				t.Errorf("last caption ends at %d, want %d", captions[len(captions)-1].EndMs, tt.audioMs)
			}
		})
	}
}

func TestCalibrateZeroEstimate(t *testing.T) {
	// A zero estimated total must not divide by zero; scale falls back to 1.
	units := []Unit{{Text: "a", Start: 0, End: 0}}

	captions := Calibrate(units, 5000, 100)
	if captions[0].StartMs != 100 || captions[0].EndMs != 100 {
		t.Errorf("caption = [%d, %d), want [100, 100)", captions[0].StartMs, captions[0].EndMs)
	}
}

func TestCalibrateEmpty(t *testing.T) {
	if captions := Calibrate(nil, 5000, 0); captions != nil {
		t.Errorf("expected nil, got %v", captions)
	}
}
