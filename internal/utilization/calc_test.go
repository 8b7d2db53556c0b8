package utilization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

func TestClassify_DefaultBands(t *testing.T) {
	th := model.DefaultThresholds()

	tests := []struct {
		name  string
		ratio float64
		want  model.Band
	}{
		{"zero", 0, model.BandUnder},
		{"well under", 0.5, model.BandUnder},
		{"just under near cutoff", 0.7999, model.BandUnder},
		{"exactly 0.80 is near-capacity", 0.80, model.BandNear},
		{"just under 1.00", 0.9999, model.BandNear},
		{"exactly 1.00 is overutilized", 1.00, model.BandOver},
		{"between over and severe", 1.25, model.BandOver},
		{"just under 1.40", 1.3999, model.BandOver},
		{"exactly 1.40 is severe", 1.40, model.BandSevere},
		{"extreme ratio still classified", 3.5, model.BandSevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ratio, th))
		})
	}
}

func TestClassify_TotalAndMutuallyExclusive(t *testing.T) {
	th := model.DefaultThresholds()

	// Sweep a dense grid of ratios: every one must land in exactly one band.
	for i := 0; i <= 2000; i++ {
		ratio := float64(i) / 500 // 0 .. 4.0 in 0.002 steps
		band := Classify(ratio, th)
		assert.Contains(t, model.Bands(), band, "ratio %v", ratio)
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := model.Thresholds{Near: 0.85, Over: 1.00, Severe: 1.50}
	require.NoError(t, th.Validate())

	assert.Equal(t, model.BandUnder, Classify(0.84, th))
	assert.Equal(t, model.BandNear, Classify(0.85, th))
	assert.Equal(t, model.BandOver, Classify(1.49, th))
	assert.Equal(t, model.BandSevere, Classify(1.50, th))
}

func TestEnrich(t *testing.T) {
	th := model.DefaultThresholds()
	records := []model.BuildingRecord{
		{BuildingID: "K001", District: 5, Enrollment: 1000, Capacity: 800},
		{BuildingID: "K002", District: 5, Enrollment: 200, Capacity: 1000},
	}

	Enrich(records, th)

	assert.InDelta(t, 1.25, records[0].Ratio, 1e-9)
	assert.Equal(t, model.BandOver, records[0].Band)
	assert.InDelta(t, 0.20, records[1].Ratio, 1e-9)
	assert.Equal(t, model.BandUnder, records[1].Band)
}

func TestEnrich_ReviewFlag(t *testing.T) {
	th := model.DefaultThresholds() // review cutoff 3.0
	records := []model.BuildingRecord{
		{BuildingID: "A", District: 1, Enrollment: 3200, Capacity: 1000},
		{BuildingID: "B", District: 1, Enrollment: 1500, Capacity: 1000},
	}

	Enrich(records, th)

	assert.True(t, records[0].NeedsReview)
	assert.Equal(t, model.BandSevere, records[0].Band, "review flag does not change banding")
	assert.False(t, records[1].NeedsReview)
}

func TestEnrich_ReviewDisabled(t *testing.T) {
	th := model.DefaultThresholds()
	th.Review = 0
	records := []model.BuildingRecord{
		{BuildingID: "A", District: 1, Enrollment: 5000, Capacity: 1000},
	}

	Enrich(records, th)

	assert.False(t, records[0].NeedsReview)
}

func TestEnrich_Deterministic(t *testing.T) {
	th := model.DefaultThresholds()
	a := []model.BuildingRecord{{BuildingID: "X", District: 2, Enrollment: 777, Capacity: 913}}
	b := []model.BuildingRecord{{BuildingID: "X", District: 2, Enrollment: 777, Capacity: 913}}

	Enrich(a, th)
	Enrich(b, th)

	assert.Equal(t, a, b)
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name    string
		th      model.Thresholds
		wantErr bool
	}{
		{"defaults valid", model.DefaultThresholds(), false},
		{"non-zero under", model.Thresholds{Under: 0.1, Near: 0.8, Over: 1.0, Severe: 1.4}, true},
		{"near above over", model.Thresholds{Near: 1.1, Over: 1.0, Severe: 1.4}, true},
		{"equal cutoffs", model.Thresholds{Near: 1.0, Over: 1.0, Severe: 1.4}, true},
		{"negative review", model.Thresholds{Near: 0.8, Over: 1.0, Severe: 1.4, Review: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.th.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
