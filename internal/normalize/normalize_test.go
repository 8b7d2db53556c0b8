package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

var testHeader = []string{
	"Bldg ID", "Bldg Name", "Geo Dist", "Bldg Enroll", "Target Bldg Cap", "Organization Name", "Data As Of",
}

func row(id, name, dist, enroll, cap, org, asOf string) []string {
	return []string{id, name, dist, enroll, cap, org, asOf}
}

func TestRun_ValidRow(t *testing.T) {
	res := Run(testHeader, [][]string{
		row("K001", "PS 1", "5", "1000.0", "800.0", "P.S. 001", "06/30/2023"),
	}, Options{})

	require.Len(t, res.Records, 1)
	assert.Empty(t, res.Rejections)

	r := res.Records[0]
	assert.Equal(t, "K001", r.BuildingID)
	assert.Equal(t, "PS 1", r.Name)
	assert.Equal(t, 5, r.District)
	assert.Equal(t, 1000, r.Enrollment)
	assert.Equal(t, 800, r.Capacity)
	assert.Equal(t, "P.S. 001", r.Schools)
}

func TestRun_RejectionReasons(t *testing.T) {
	tests := []struct {
		name   string
		r      []string
		reason model.RejectReason
	}{
		{"missing building id", row("", "PS 1", "5", "100", "200", "org", ""), model.ReasonMissingField},
		{"missing district", row("K001", "PS 1", "", "100", "200", "org", ""), model.ReasonMissingField},
		{"missing enrollment", row("K001", "PS 1", "5", "", "200", "org", ""), model.ReasonMissingField},
		{"missing capacity", row("K001", "PS 1", "5", "100", "", "org", ""), model.ReasonMissingField},
		{"non-numeric district", row("K001", "PS 1", "five", "100", "200", "org", ""), model.ReasonNonNumeric},
		{"non-numeric enrollment", row("K001", "PS 1", "5", "n/a", "200", "org", ""), model.ReasonNonNumeric},
		{"non-numeric capacity", row("K001", "PS 1", "5", "100", "??", "org", ""), model.ReasonNonNumeric},
		{"negative enrollment", row("K001", "PS 1", "5", "-5", "500", "org", ""), model.ReasonNegativeValue},
		{"negative capacity", row("K001", "PS 1", "5", "100", "-200", "org", ""), model.ReasonNegativeValue},
		{"district zero", row("K001", "PS 1", "0", "100", "200", "org", ""), model.ReasonOutOfRange},
		{"district 33", row("K001", "PS 1", "33", "100", "200", "org", ""), model.ReasonOutOfRange},
		{"zero capacity guarded before division", row("K001", "PS 1", "5", "100", "0", "org", ""), model.ReasonDivisionGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(testHeader, [][]string{tt.r}, Options{})
			assert.Empty(t, res.Records)
			require.Len(t, res.Rejections, 1)
			assert.Equal(t, tt.reason, res.Rejections[0].Reason)
			assert.Equal(t, 2, res.Rejections[0].Line)
		})
	}
}

func TestRun_ZeroEnrollment(t *testing.T) {
	rows := [][]string{row("K001", "PS 1", "5", "0", "500", "org", "")}

	dropped := Run(testHeader, rows, Options{DropZeroEnrollment: true})
	assert.Empty(t, dropped.Records)
	require.Len(t, dropped.Rejections, 1)
	assert.Equal(t, model.ReasonZeroEnrollment, dropped.Rejections[0].Reason)

	kept := Run(testHeader, rows, Options{DropZeroEnrollment: false})
	require.Len(t, kept.Records, 1)
	assert.Equal(t, 0, kept.Records[0].Enrollment)
}

func TestRun_YearFilter(t *testing.T) {
	rows := [][]string{
		row("K001", "PS 1", "5", "100", "200", "org", "06/30/2023"),
		row("K002", "PS 2", "5", "100", "200", "org", "06/30/2022"),
		row("K003", "PS 3", "5", "100", "200", "org", "not a date"),
	}

	res := Run(testHeader, rows, Options{Year: 2023})
	require.Len(t, res.Records, 1)
	assert.Equal(t, "K001", res.Records[0].BuildingID)
	assert.Equal(t, 2, res.SkippedYear)
	assert.Empty(t, res.Rejections, "out-of-year rows are out of scope, not invalid")

	all := Run(testHeader, rows, Options{Year: 0})
	assert.Len(t, all.Records, 3)
}

func TestRun_ConsolidatesBuildings(t *testing.T) {
	// One row per school organization; same building repeats its totals.
	rows := [][]string{
		row("K001", "PS 1", "5", "1000", "800", "M.S. 131", ""),
		row("K001", "PS 1", "5", "1000", "800", "Charter One", ""),
		row("K001", "PS 1", "5", "1000", "800", "M.S. 131", ""),
	}

	res := Run(testHeader, rows, Options{})
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, 1000, r.Enrollment, "building totals counted once")
	assert.Equal(t, "Charter One, M.S. 131", r.Schools, "sorted, de-duplicated")
}

func TestRun_StableDistrictOrder(t *testing.T) {
	rows := [][]string{
		row("X300", "PS 30", "12", "100", "200", "org", ""),
		row("K001", "PS 1", "3", "100", "200", "org", ""),
		row("K005", "PS 5", "3", "100", "200", "org", ""),
		row("A002", "PS 2", "3", "100", "200", "org", ""),
	}

	res := Run(testHeader, rows, Options{})
	require.Len(t, res.Records, 4)

	var got []string
	for _, r := range res.Records {
		got = append(got, r.BuildingID)
	}
	assert.Equal(t, []string{"A002", "K001", "K005", "X300"}, got)
}

func TestRun_HeaderMatchingIsForgiving(t *testing.T) {
	header := []string{"  bldg id ", "BLDG NAME", "geo dist", "Bldg Enroll", "target bldg cap", "Organization Name", "Data As Of"}
	res := Run(header, [][]string{
		row("K001", "PS 1", "5", "100", "200", "org", ""),
	}, Options{})

	require.Len(t, res.Records, 1)
}

func TestRun_CommaSeparatedThousands(t *testing.T) {
	res := Run(testHeader, [][]string{
		row("K001", "PS 1", "5", "1,250", "1,000", "org", ""),
	}, Options{})

	require.Len(t, res.Records, 1)
	assert.Equal(t, 1250, res.Records[0].Enrollment)
}

func TestRun_Idempotent(t *testing.T) {
	rows := [][]string{
		row("K001", "PS 1", "5", "1000", "800", "org a", ""),
		row("K002", "PS 2", "7", "-5", "500", "org b", ""),
		row("K003", "PS 3", "40", "100", "200", "org c", ""),
	}

	first := Run(testHeader, rows, Options{})
	second := Run(testHeader, rows, Options{})
	assert.Equal(t, first, second)
}
