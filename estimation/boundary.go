package estimation

import "github.com/sky-flux/irt"

// applyBounds returns the proposal vector for a raw fit together with the
// boundary events it recorded. raw must have the family's parameter count.
//
//	L4:   c ← clamp(c, GuessingBounds); u ← clamp(u, SlippingBounds)
//	L3:   c ← clamp(c, GuessingBounds)
//	else: unchanged
//
// Events are counted on the raw values, before clamping.
func applyBounds(f irt.Family, raw []float64) ([]float64, Diagnostics) {
	p := append([]float64(nil), raw...)
	var d Diagnostics

	switch f {
	case irt.L4:
		if raw[0] < 0 {
			d.NegativeDiscrimination++
		}
		if raw[2] < 0 {
			d.NegativeGuessing++
		}
		if raw[3] > 1 {
			d.SlippingOutOfRange++
		}
		p[2] = irt.GuessingBounds.Clamp(raw[2])
		p[3] = irt.SlippingBounds.Clamp(raw[3])
	case irt.L3:
		if raw[0] < 0 {
			d.NegativeDiscrimination++
		}
		if raw[2] < 0 {
			d.NegativeGuessing++
		}
		p[2] = irt.GuessingBounds.Clamp(raw[2])
	case irt.L2:
		if raw[0] < 0 {
			d.NegativeDiscrimination++
		}
	}
	return p, d
}
