package model

import "time"

// MinDistrict and MaxDistrict bound the NYC community school districts.
const (
	MinDistrict = 1
	MaxDistrict = 32
)

// DistrictSummary holds the aggregate statistics for one district. It is
// recomputed in full on every run from the current set of valid building
// records; it is never mutated incrementally.
type DistrictSummary struct {
	District            int          `json:"district"`
	Borough             string       `json:"borough"`
	Neighborhoods       string       `json:"neighborhoods"`
	TotalBuildings      int          `json:"total_buildings"`
	TotalEnrollment     int          `json:"total_enrollment"`
	TotalCapacity       int          `json:"total_capacity"`
	WeightedUtilization float64      `json:"weighted_utilization"`
	BandCounts          map[Band]int `json:"band_counts"`
	Overcapacity        int          `json:"overcapacity_buildings"`
	PctOvercapacity     float64      `json:"pct_overcapacity"`
	MedianUtilization   float64      `json:"median_building_utilization"`
	MaxUtilization      float64      `json:"max_building_utilization"`
	RankByOvercapacity  int          `json:"rank_by_overcapacity"` // 1 = highest overcapacity share
}

// CitywideSummary is the degenerate district aggregate over all valid
// records, plus cross-district medians for the summary panel.
type CitywideSummary struct {
	TotalBuildings        int          `json:"total_buildings"`
	TotalEnrollment       int          `json:"total_enrollment"`
	TotalCapacity         int          `json:"total_capacity"`
	WeightedUtilization   float64      `json:"weighted_utilization"`
	BandCounts            map[Band]int `json:"band_counts"`
	Overcapacity          int          `json:"overcapacity_buildings"`
	PctOvercapacity       float64      `json:"pct_overcapacity"`
	MedianUtilization     float64      `json:"median_building_utilization"`
	MedianBuildings       float64      `json:"median_buildings_per_district"`
	MedianPctOvercapacity float64      `json:"median_district_pct_overcapacity"`
}

// Snapshot is the full output of one pipeline run: the enriched building
// records in stable order, the district and citywide aggregates, the geo
// reference map for choropleth coloring, and the rejection report.
type Snapshot struct {
	Fingerprint string                   `json:"fingerprint"`
	Year        int                      `json:"year"`
	Thresholds  Thresholds               `json:"thresholds"`
	Buildings   []BuildingRecord         `json:"buildings"`
	Districts   map[int]*DistrictSummary `json:"districts"`
	NoData      []int                    `json:"no_data_districts"` // districts in [1,32] with zero valid buildings
	Citywide    *CitywideSummary         `json:"citywide"`
	GeoRefs     map[string]*GeoRef       `json:"geo_refs"` // building_id -> boundary link; absent when the join missed
	Rejections  []Rejection              `json:"rejections"`
	CreatedAt   time.Time                `json:"created_at"`
}

// RunStatus represents the state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusCached   RunStatus = "cached"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one pipeline invocation for auditability.
type Run struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"` // dataset path or URL
	Fingerprint string     `json:"fingerprint,omitempty"`
	Status      RunStatus  `json:"status"`
	Buildings   int        `json:"buildings"`
	Rejections  int        `json:"rejections"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
