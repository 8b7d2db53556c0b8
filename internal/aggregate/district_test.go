package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schoolutil-cli/internal/model"
	"github.com/sells-group/schoolutil-cli/internal/utilization"
)

func enriched(t *testing.T, records []model.BuildingRecord) []model.BuildingRecord {
	t.Helper()
	utilization.Enrich(records, model.DefaultThresholds())
	return records
}

func TestSummarize_SingleDistrict(t *testing.T) {
	records := enriched(t, []model.BuildingRecord{
		{BuildingID: "K001", District: 5, Enrollment: 1000, Capacity: 800},
		{BuildingID: "K002", District: 5, Enrollment: 200, Capacity: 1000},
	})

	summaries, noData := Summarize(records)
	require.Contains(t, summaries, 5)
	assert.Len(t, noData, 31)

	s := summaries[5]
	assert.Equal(t, 2, s.TotalBuildings)
	assert.Equal(t, 1200, s.TotalEnrollment)
	assert.Equal(t, 1800, s.TotalCapacity)
	assert.InDelta(t, 0.6667, s.WeightedUtilization, 0.0001)
	assert.Equal(t, 1, s.BandCounts[model.BandOver])
	assert.Equal(t, 1, s.BandCounts[model.BandUnder])
	assert.Equal(t, 1, s.Overcapacity)
	assert.InDelta(t, 50.0, s.PctOvercapacity, 0.001)
	assert.InDelta(t, 1.25, s.MaxUtilization, 0.0001)
	assert.Equal(t, "Manhattan", s.Borough)
}

func TestSummarize_WeightedNotMeanOfRatios(t *testing.T) {
	// A tiny full building and a huge empty one: mean of ratios says 50%,
	// the summed totals say the district is nearly empty.
	records := enriched(t, []model.BuildingRecord{
		{BuildingID: "A", District: 10, Enrollment: 10, Capacity: 10},
		{BuildingID: "B", District: 10, Enrollment: 0, Capacity: 10000},
	})

	summaries, _ := Summarize(records)
	s := summaries[10]

	meanOfRatios := (1.0 + 0.0) / 2
	assert.InDelta(t, float64(10)/float64(10010), s.WeightedUtilization, 1e-9)
	assert.Greater(t, meanOfRatios-s.WeightedUtilization, 0.4, "mean of ratios badly overstates the district")
}

func TestSummarize_NoDataDistricts(t *testing.T) {
	records := enriched(t, []model.BuildingRecord{
		{BuildingID: "K001", District: 1, Enrollment: 100, Capacity: 200},
		{BuildingID: "K002", District: 32, Enrollment: 100, Capacity: 200},
	})

	summaries, noData := Summarize(records)
	assert.Len(t, summaries, 2)
	assert.Len(t, noData, 30)
	assert.NotContains(t, noData, 1)
	assert.NotContains(t, noData, 32)
	assert.Contains(t, noData, 15)

	// Districts without data must never surface as ratio-zero summaries.
	for d := range summaries {
		assert.Greater(t, summaries[d].TotalBuildings, 0)
	}
}

func TestSummarize_MedianUtilization(t *testing.T) {
	records := enriched(t, []model.BuildingRecord{
		{BuildingID: "A", District: 2, Enrollment: 100, Capacity: 1000}, // 0.10
		{BuildingID: "B", District: 2, Enrollment: 500, Capacity: 1000}, // 0.50
		{BuildingID: "C", District: 2, Enrollment: 900, Capacity: 1000}, // 0.90
	})

	summaries, _ := Summarize(records)
	assert.InDelta(t, 0.50, summaries[2].MedianUtilization, 1e-9)
}

func TestSummarize_RankByOvercapacityTies(t *testing.T) {
	records := enriched(t, []model.BuildingRecord{
		// district 1: 100% overcapacity
		{BuildingID: "A", District: 1, Enrollment: 300, Capacity: 200},
		// districts 2 and 3: 0% each, tied
		{BuildingID: "B", District: 2, Enrollment: 100, Capacity: 200},
		{BuildingID: "C", District: 3, Enrollment: 100, Capacity: 200},
	})

	summaries, _ := Summarize(records)
	assert.Equal(t, 1, summaries[1].RankByOvercapacity)
	assert.Equal(t, 2, summaries[2].RankByOvercapacity)
	assert.Equal(t, 2, summaries[3].RankByOvercapacity, "ties share the min rank")
}

func TestCitywide_MatchesDistrictTotals(t *testing.T) {
	records := enriched(t, []model.BuildingRecord{
		{BuildingID: "A", District: 1, Enrollment: 1000, Capacity: 800},
		{BuildingID: "B", District: 1, Enrollment: 200, Capacity: 1000},
		{BuildingID: "C", District: 31, Enrollment: 700, Capacity: 500},
	})

	summaries, _ := Summarize(records)
	c := Citywide(records, summaries)

	var enroll, cap int
	for _, s := range summaries {
		enroll += s.TotalEnrollment
		cap += s.TotalCapacity
	}
	assert.Equal(t, enroll, c.TotalEnrollment)
	assert.Equal(t, cap, c.TotalCapacity)
	assert.Equal(t, 3, c.TotalBuildings)
	assert.InDelta(t, float64(enroll)/float64(cap), c.WeightedUtilization, 1e-9)
	assert.Equal(t, 2, c.Overcapacity)
}

func TestCitywide_Empty(t *testing.T) {
	c := Citywide(nil, nil)
	assert.Equal(t, 0, c.TotalBuildings)
	assert.Zero(t, c.WeightedUtilization)
	assert.Zero(t, c.PctOvercapacity)
}

func TestSortBuildings(t *testing.T) {
	records := []model.BuildingRecord{
		{BuildingID: "Z", District: 12},
		{BuildingID: "B", District: 3},
		{BuildingID: "A", District: 3},
	}
	SortBuildings(records)

	assert.Equal(t, "A", records[0].BuildingID)
	assert.Equal(t, "B", records[1].BuildingID)
	assert.Equal(t, "Z", records[2].BuildingID)
}

func TestBoroughFor_AllDistricts(t *testing.T) {
	want := map[string][]int{
		"Manhattan":     {1, 2, 3, 4, 5, 6},
		"Bronx":         {7, 8, 9, 10, 11, 12},
		"Brooklyn":      {13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 32},
		"Queens":        {24, 25, 26, 27, 28, 29, 30},
		"Staten Island": {31},
	}
	for borough, districts := range want {
		for _, d := range districts {
			assert.Equal(t, borough, BoroughFor(d), "district %d", d)
		}
	}
	assert.Empty(t, BoroughFor(0))
	assert.Empty(t, BoroughFor(33))
}

func TestNeighborhoodsFor(t *testing.T) {
	for d := model.MinDistrict; d <= model.MaxDistrict; d++ {
		assert.NotEmpty(t, NeighborhoodsFor(d), "district %d", d)
	}
	assert.Empty(t, NeighborhoodsFor(0))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 3},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, median(tt.in), 1e-9)
		})
	}
}

func TestRankDescendingMin(t *testing.T) {
	ranks := rankDescendingMin(map[int]float64{
		1: 50.0,
		2: 75.0,
		3: 50.0,
		4: 10.0,
	})
	assert.Equal(t, 1, ranks[2])
	assert.Equal(t, 2, ranks[1])
	assert.Equal(t, 2, ranks[3])
	assert.Equal(t, 4, ranks[4])
}
