package timing

import "math"

// Calibrate rescales an estimated section timeline so it spans exactly the
// measured audio duration, then shifts it onto the global clock.
//
// The measured duration is ground truth; the estimate is only a scheduling
// heuristic, so each caption keeps its relative share of the section while
// the total is forced to match the audio. A zero estimated total leaves the
// proportions untouched (scale 1.0).
func Calibrate(units []Unit, audioDurationMs, offsetMs int64) []Caption {
	if len(units) == 0 {
		return nil
	}

	estTotal := TotalDuration(units)
	scale := 1.0
	if estTotal > 0 {
		scale = (float64(audioDurationMs) / 1000.0) / estTotal
	}

	captions := make([]Caption, len(units))
	for i, u := range units {
		captions[i] = Caption{
			Text:    u.Text,
			StartMs: int64(math.Round(u.Start*scale*1000)) + offsetMs,
			EndMs:   int64(math.Round(u.End*scale*1000)) + offsetMs,
		}
	}
	return captions
}
