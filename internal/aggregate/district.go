// Package aggregate groups enriched building records by district and
// computes the district and citywide summary statistics. It only reads
// the records; summaries are rebuilt in full on every run.
package aggregate

import (
	"math"
	"sort"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

// Summarize groups records by district. Districts with at least one valid
// record get a DistrictSummary; districts in [1,32] with none are returned
// in the NoData list instead of a zero-valued summary, so "empty" is never
// conflated with "fully under-utilized".
func Summarize(records []model.BuildingRecord) (map[int]*model.DistrictSummary, []int) {
	byDistrict := make(map[int][]model.BuildingRecord)
	for _, r := range records {
		byDistrict[r.District] = append(byDistrict[r.District], r)
	}

	summaries := make(map[int]*model.DistrictSummary, len(byDistrict))
	pctByDistrict := make(map[int]float64, len(byDistrict))
	var noData []int

	for d := model.MinDistrict; d <= model.MaxDistrict; d++ {
		recs, ok := byDistrict[d]
		if !ok {
			noData = append(noData, d)
			continue
		}

		s := &model.DistrictSummary{
			District:      d,
			Borough:       BoroughFor(d),
			Neighborhoods: NeighborhoodsFor(d),
			BandCounts:    make(map[model.Band]int, 4),
		}

		var ratios []float64
		for _, r := range recs {
			s.TotalBuildings++
			s.TotalEnrollment += r.Enrollment
			s.TotalCapacity += r.Capacity
			s.BandCounts[r.Band]++
			if r.Overcapacity() {
				s.Overcapacity++
			}
			ratios = append(ratios, r.Ratio)
			if r.Ratio > s.MaxUtilization {
				s.MaxUtilization = r.Ratio
			}
		}

		// Weighted by summed totals, not averaged per-building ratios:
		// the two differ whenever building sizes differ.
		s.WeightedUtilization = float64(s.TotalEnrollment) / float64(s.TotalCapacity)
		s.PctOvercapacity = round2(float64(s.Overcapacity) / float64(s.TotalBuildings) * 100)
		s.MedianUtilization = median(ratios)

		summaries[d] = s
		pctByDistrict[d] = s.PctOvercapacity
	}

	for d, rank := range rankDescendingMin(pctByDistrict) {
		summaries[d].RankByOvercapacity = rank
	}

	return summaries, noData
}

// Citywide aggregates across all valid records using the same summed-total
// rule as per-district summaries, plus cross-district medians.
func Citywide(records []model.BuildingRecord, districts map[int]*model.DistrictSummary) *model.CitywideSummary {
	c := &model.CitywideSummary{
		BandCounts: make(map[model.Band]int, 4),
	}

	var ratios []float64
	for _, r := range records {
		c.TotalBuildings++
		c.TotalEnrollment += r.Enrollment
		c.TotalCapacity += r.Capacity
		c.BandCounts[r.Band]++
		if r.Overcapacity() {
			c.Overcapacity++
		}
		ratios = append(ratios, r.Ratio)
	}

	if c.TotalCapacity > 0 {
		c.WeightedUtilization = float64(c.TotalEnrollment) / float64(c.TotalCapacity)
	}
	if c.TotalBuildings > 0 {
		c.PctOvercapacity = round2(float64(c.Overcapacity) / float64(c.TotalBuildings) * 100)
	}
	c.MedianUtilization = median(ratios)

	var counts, pcts []float64
	for _, s := range districts {
		counts = append(counts, float64(s.TotalBuildings))
		pcts = append(pcts, s.PctOvercapacity)
	}
	c.MedianBuildings = median(counts)
	c.MedianPctOvercapacity = median(pcts)

	return c
}

// SortBuildings orders records by district then building ID, the stable
// presentation order for table rendering.
func SortBuildings(records []model.BuildingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].District != records[j].District {
			return records[i].District < records[j].District
		}
		return records[i].BuildingID < records[j].BuildingID
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
