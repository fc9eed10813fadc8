package estimation

import "log/slog"

// Diagnostics tallies the events of one maximization pass, or of one range of it.
type Diagnostics struct {
	HardFailures           int `json:"hard_failures"`           // fits that faulted or stopped with a hard-failure code
	NegativeDiscrimination int `json:"negative_discrimination"` // raw a < 0
	NegativeGuessing       int `json:"negative_guessing"`       // raw c < 0, clamped
	SlippingOutOfRange     int `json:"slipping_out_of_range"`   // raw u > 1, clamped
}

var _ slog.LogValuer = Diagnostics{}

// Add returns the element-wise sum of d and o.
func (d Diagnostics) Add(o Diagnostics) Diagnostics {
	return Diagnostics{
		HardFailures:           d.HardFailures + o.HardFailures,
		NegativeDiscrimination: d.NegativeDiscrimination + o.NegativeDiscrimination,
		NegativeGuessing:       d.NegativeGuessing + o.NegativeGuessing,
		SlippingOutOfRange:     d.SlippingOutOfRange + o.SlippingOutOfRange,
	}
}

// Counts returns the tallies in the order hard failures, negative
// discrimination, negative guessing, slipping out of range.
func (d Diagnostics) Counts() [4]int {
	return [4]int{d.HardFailures, d.NegativeDiscrimination, d.NegativeGuessing, d.SlippingOutOfRange}
}

// Total returns the sum of all tallies.
func (d Diagnostics) Total() int {
	return d.HardFailures + d.NegativeDiscrimination + d.NegativeGuessing + d.SlippingOutOfRange
}

// LogValue implements slog.LogValuer.
func (d Diagnostics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("hard_failures", d.HardFailures),
		slog.Int("negative_discrimination", d.NegativeDiscrimination),
		slog.Int("negative_guessing", d.NegativeGuessing),
		slog.Int("slipping_out_of_range", d.SlippingOutOfRange),
	)
}
