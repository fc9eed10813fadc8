package irt

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Family identifies an item response model family.
type Family int

const (
	L1   Family = iota + 1 // One-parameter logistic: difficulty only.
	L2                     // Two-parameter logistic: discrimination, difficulty.
	L3                     // Three-parameter logistic: adds a lower asymptote (guessing).
	L4                     // Four-parameter logistic: adds an upper asymptote (slipping).
	GPCM                   // Generalized partial credit: discrimination plus step parameters.
	PCM2                   // Partial credit without discrimination: step parameters only.
)

var (
	familyNames  = [...]string{L1: "L1", L2: "L2", L3: "L3", L4: "L4", GPCM: "GPCM", PCM2: "PCM2"}
	familyByName = map[string]Family{
		"L1":   L1,
		"L2":   L2,
		"L3":   L3,
		"L4":   L4,
		"GPCM": GPCM,
		"PCM2": PCM2,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Family(0)
	_ json.Marshaler           = Family(0)
	_ json.Unmarshaler         = (*Family)(nil)
	_ encoding.TextMarshaler   = Family(0)
	_ encoding.TextUnmarshaler = (*Family)(nil)
)

// IsValid reports whether f is a known family.
func (f Family) IsValid() bool {
	return f >= L1 && f <= PCM2
}

// IsLogistic reports whether f is one of the dichotomous logistic families.
func (f Family) IsLogistic() bool {
	return f >= L1 && f <= L4
}

// String returns the family name ("L1" .. "L4", "GPCM", "PCM2").
// For invalid values it returns "Family(n)".
func (f Family) String() string {
	if f.IsValid() {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFamily, int(f))
	}
	return []byte(familyNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	v, ok := familyByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFamily, text)
	}
	*f = v
	return nil
}

// MarshalJSON implements json.Marshaler. Family serializes as a JSON string.
func (f Family) MarshalJSON() ([]byte, error) {
	text, err := f.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (f *Family) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFamily, data)
	}
	return f.UnmarshalText([]byte(s))
}
