// Package utilization derives per-building utilization ratios and band
// classifications. Classification is deterministic and side-effect free;
// thresholds come from configuration and default to the standard cutoffs.
package utilization

import "github.com/sells-group/schoolutil-cli/internal/model"

// Classify maps a utilization ratio to its band. Each band is closed on
// its lower cutoff and open on the next, so every ratio lands in exactly
// one band: 0.80 is Near-capacity, 1.00 is Overutilized, 1.40 is
// Severely-overutilized.
func Classify(ratio float64, t model.Thresholds) model.Band {
	switch {
	case ratio >= t.Severe:
		return model.BandSevere
	case ratio >= t.Over:
		return model.BandOver
	case ratio >= t.Near:
		return model.BandNear
	default:
		return model.BandUnder
	}
}

// Enrich recomputes Ratio, Band, and NeedsReview on each record in place.
// It assumes the normalizer has already excluded capacity <= 0, so the
// division is always defined. Records are enriched, never reordered.
func Enrich(records []model.BuildingRecord, t model.Thresholds) {
	for i := range records {
		r := &records[i]
		r.Ratio = float64(r.Enrollment) / float64(r.Capacity)
		r.Band = Classify(r.Ratio, t)
		r.NeedsReview = t.Review > 0 && r.Ratio >= t.Review
	}
}
