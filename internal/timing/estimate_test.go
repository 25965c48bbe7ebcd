package timing

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	est := NewEstimator(4.5, 0.5)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "cjkCharacters",
			text: "一二三四五六七八九", // 9 voiced chars
			want: 2.0,
		},
		{
			name: "punctuationIsFree",
			text: "一二三四五六七八九。！？，,.!?",
			want: 2.0,
		},
		{
			name: "asciiAndDigitsCount",
			text: "abc DEF 123", // 9 voiced chars
			want: 2.0,
		},
		{
			name: "minimumFloor",
			text: "好",
			want: 0.5,
		},
		{
			name: "emptyText",
			text: "",
			want: 0.5,
		},
		{
			name: "onlyPunctuation",
			text: "……！！",
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := est.Estimate(tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Estimate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewEstimatorDefaults(t *testing.T) {
	est := NewEstimator(0, 0)
	if est.charsPerSecond != DefaultCharsPerSecond {
		t.Errorf("charsPerSecond = %v, want %v", est.charsPerSecond, DefaultCharsPerSecond)
	}
	if est.minSeconds != DefaultMinSeconds {
		t.Errorf("minSeconds = %v, want %v", est.minSeconds, DefaultMinSeconds)
	}
}

func TestBuildTimeline(t *testing.T) {
	est := NewEstimator(4.5, 0.5)

	texts := []string{
		"一二三四五六七八九", // 2.0s
		"好",         // floor, 0.5s
		"一二三四五六七八九", // 2.0s
	}

	units := est.BuildTimeline(texts)

	if len(units) != 3 {
		t.Fatalf("got %d units, want 3", len(units))
	}
	if units[0].Start != 0 {
		t.Errorf("first unit starts at %v, want 0", units[0].Start)
	}

	for i, u := range units {
		if u.End <= u.Start {
			t.Errorf("unit %d has non-positive duration: [%v, %v]", i, u.Start, u.End)
		}
		if i > 0 && units[i-1].End != u.Start {
			t.Errorf("units %d and %d not contiguous: %v != %v", i-1, i, units[i-1].End, u.Start)
		}
	}

	if got := TotalDuration(units); math.Abs(got-4.5) > 1e-9 {
		t.Errorf("TotalDuration = %v, want 4.5", got)
	}
}

func TestBuildTimelineEmpty(t *testing.T) {
	est := NewEstimator(4.5, 0.5)

	if units := est.BuildTimeline(nil); len(units) != 0 {
		t.Errorf("expected no units, got %d", len(units))
	}
	if got := TotalDuration(nil); got != 0 {
		t.Errorf("TotalDuration(nil) = %v, want 0", got)
	}
}
