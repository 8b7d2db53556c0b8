package model

// Band classifies a building's utilization ratio into a severity tier.
type Band string

const (
	BandUnder  Band = "Under-utilized"
	BandNear   Band = "Near-capacity"
	BandOver   Band = "Overutilized"
	BandSevere Band = "Severely-overutilized"
)

// Bands lists all tiers in ascending severity order.
func Bands() []Band {
	return []Band{BandUnder, BandNear, BandOver, BandSevere}
}

// RejectReason identifies why a source row was excluded during normalization.
type RejectReason string

const (
	ReasonMissingField   RejectReason = "MissingField"
	ReasonNonNumeric     RejectReason = "NonNumeric"
	ReasonNegativeValue  RejectReason = "NegativeValue"
	ReasonOutOfRange     RejectReason = "OutOfRange"
	ReasonDivisionGuard  RejectReason = "DivisionGuard"
	ReasonZeroEnrollment RejectReason = "ZeroEnrollment"
)

// Rejection records one excluded source row. Rows are excluded locally and
// never abort the run; the report travels with the snapshot so the
// presentation layer can surface data quality.
type Rejection struct {
	Line       int          `json:"line"`
	BuildingID string       `json:"building_id,omitempty"`
	Reason     RejectReason `json:"reason"`
	Field      string       `json:"field,omitempty"`
	Value      string       `json:"value,omitempty"`
}

// GeoRef is a weak, identifier-based link from a building record to its
// district boundary geometry. It carries only the lookup key and the label
// anchor; the geometry itself stays with the boundary set.
type GeoRef struct {
	District int     `json:"district"`
	LabelLon float64 `json:"label_lon"`
	LabelLat float64 `json:"label_lat"`
}

// BuildingRecord is one consolidated school building with derived
// utilization fields. Ratio and Band are always recomputed from
// Enrollment/Capacity; they are never loaded from the source.
type BuildingRecord struct {
	BuildingID  string  `json:"building_id"`
	Name        string  `json:"name,omitempty"`
	District    int     `json:"district"`
	Schools     string  `json:"schools,omitempty"` // sorted, comma-joined organizations housed in the building
	Enrollment  int     `json:"enrollment"`
	Capacity    int     `json:"capacity"`
	Ratio       float64 `json:"utilization_ratio"`
	Band        Band    `json:"band,omitempty"`
	NeedsReview bool    `json:"needs_review,omitempty"`
	GeoRef      *GeoRef `json:"geo_ref,omitempty"`
}

// Overcapacity reports whether the building operates above its designated
// capacity.
func (b BuildingRecord) Overcapacity() bool {
	return b.Ratio > 1.0
}
