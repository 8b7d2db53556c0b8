package model

import "github.com/rotisserie/eris"

// Thresholds binds each band to the lower edge of its ratio interval.
// Intervals are closed on the lower edge and open on the upper, so every
// ratio maps to exactly one band. Review flags records at or above the
// Review cutoff for manual inspection; 0 disables it.
type Thresholds struct {
	Under  float64 `json:"under" yaml:"under" mapstructure:"under"`
	Near   float64 `json:"near" yaml:"near" mapstructure:"near"`
	Over   float64 `json:"over" yaml:"over" mapstructure:"over"`
	Severe float64 `json:"severe" yaml:"severe" mapstructure:"severe"`
	Review float64 `json:"review" yaml:"review" mapstructure:"review"`
}

// DefaultThresholds returns the standard band cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Under:  0,
		Near:   0.80,
		Over:   1.00,
		Severe: 1.40,
		Review: 3.0,
	}
}

// Validate checks that the cutoffs form a strictly increasing ladder so
// the band intervals cannot gap or overlap.
func (t Thresholds) Validate() error {
	if t.Under != 0 {
		return eris.Errorf("thresholds: under must be 0, got %v", t.Under)
	}
	if !(t.Under < t.Near && t.Near < t.Over && t.Over < t.Severe) {
		return eris.Errorf("thresholds: cutoffs must be strictly increasing: under=%v near=%v over=%v severe=%v",
			t.Under, t.Near, t.Over, t.Severe)
	}
	if t.Review < 0 {
		return eris.Errorf("thresholds: review cutoff must be >= 0, got %v", t.Review)
	}
	return nil
}
