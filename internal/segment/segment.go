// Package segment lays out the grog, peak and trough intervals that make up a
// day's ultradian schedule
package segment

import "time"

// Kind identifies the type of a segment.
type Kind string

const (
	Grog   Kind = "grog"
	Peak   Kind = "peak"
	Trough Kind = "trough"
)

// Label returns a human readable name for the segment kind.
func (k Kind) Label() string {
	switch k {
	case Grog:
		return "Morning grog"
	case Peak:
		return "Peak focus"
	case Trough:
		return "Trough recovery"
	}

	return string(k)
}

// Spec is one contiguous interval of the schedule.
type Spec struct {
	Kind Kind `json:"kind"`
	// Minutes is the length of the segment.
	Minutes int `json:"minutes"`
	// Cycle is the 1-based cycle the segment belongs to (0 for grog).
	Cycle int `json:"cycle"`
}

// Duration returns the length of the segment as a time.Duration.
func (s Spec) Duration() time.Duration {
	return time.Duration(s.Minutes) * time.Minute
}

// Build returns the grog segment followed by cycles peak/trough pairs.
// Negative inputs are treated as zero.
func Build(grog, peak, trough, cycles int) []Spec {
	grog, peak, trough, cycles = clamp(grog), clamp(peak), clamp(trough), clamp(cycles)

	segments := make([]Spec, 0, 1+2*cycles)

	segments = append(segments, Spec{Kind: Grog, Minutes: grog})

	for c := 1; c <= cycles; c++ {
		segments = append(
			segments,
			Spec{Kind: Peak, Minutes: peak, Cycle: c},
			Spec{Kind: Trough, Minutes: trough, Cycle: c},
		)
	}

	return segments
}

// Total returns the combined length of the segments in minutes.
func Total(segments []Spec) int {
	var total int

	for _, s := range segments {
		total += s.Minutes
	}

	return total
}

// Offsets returns the start offset in minutes of segment i and its end
// offset. The interval is closed-open: [start, end).
func Offsets(segments []Spec, i int) (start, end int) {
	for j := 0; j < i && j < len(segments); j++ {
		start += segments[j].Minutes
	}

	if i < len(segments) {
		end = start + segments[i].Minutes
	} else {
		end = start
	}

	return start, end
}

// Locate returns the index of the segment that contains the given minute
// offset, or -1 when the offset lies outside the schedule.
func Locate(segments []Spec, minute int) int {
	if minute < 0 && len(segments) > 0 {
		// before the anchor the schedule is still in its first segment,
		// even when that segment is empty
		return 0
	}

	var end int

	for i, s := range segments {
		end += s.Minutes

		if minute < end {
			return i
		}
	}

	return -1
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}

	return v
}
