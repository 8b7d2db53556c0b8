// Package normalize turns raw enrollment/capacity rows into well-typed
// building records plus a rejection report. It is a pure transform: the
// same header and rows always produce the same result, and a bad row is
// recorded and excluded rather than coerced or silently dropped.
package normalize

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

// asOfLayout matches the source's "Data As Of" date format.
const asOfLayout = "01/02/2006"

// Options sets the normalization policy.
type Options struct {
	// Year keeps only rows whose "Data As Of" date falls in the given
	// reporting year. 0 disables the filter. Rows outside the year (or
	// with an unreadable date while the filter is active) are out of
	// scope, not invalid; they are counted but not rejected.
	Year int

	// DropZeroEnrollment excludes buildings reporting zero enrollment.
	// These are typically closed or not-yet-opened buildings.
	DropZeroEnrollment bool
}

// Result is the normalizer output.
type Result struct {
	Records     []model.BuildingRecord `json:"records"`
	Rejections  []model.Rejection      `json:"rejections"`
	SkippedYear int                    `json:"skipped_year"`
}

// candidate accumulates per-building state while consolidating rows that
// share a building ID (one source row per school organization).
type candidate struct {
	record model.BuildingRecord
	orgs   map[string]struct{}
}

// Run validates and consolidates raw rows. The header row is line 1; data
// rows are numbered from 2 for the rejection report.
func Run(header []string, rows [][]string, opts Options) Result {
	colIdx := mapColumns(header)

	var res Result
	byBuilding := make(map[string]*candidate)
	var order []string

	for i, row := range rows {
		line := i + 2

		if opts.Year != 0 {
			asOf, err := time.Parse(asOfLayout, getCol(row, colIdx, colAsOf))
			if err != nil || asOf.Year() != opts.Year {
				res.SkippedYear++
				continue
			}
		}

		bldgID := getCol(row, colIdx, colBuildingID)
		if bldgID == "" {
			res.Rejections = append(res.Rejections, model.Rejection{
				Line: line, Reason: model.ReasonMissingField, Field: colBuildingID,
			})
			continue
		}

		district, rej := parseDistrict(row, colIdx, line, bldgID)
		if rej != nil {
			res.Rejections = append(res.Rejections, *rej)
			continue
		}

		enrollment, rej := parseCount(row, colIdx, colEnrollment, line, bldgID)
		if rej != nil {
			res.Rejections = append(res.Rejections, *rej)
			continue
		}

		capacity, rej := parseCount(row, colIdx, colCapacity, line, bldgID)
		if rej != nil {
			res.Rejections = append(res.Rejections, *rej)
			continue
		}
		if capacity == 0 {
			// Guard before division: a zero capacity can never produce a
			// utilization ratio.
			res.Rejections = append(res.Rejections, model.Rejection{
				Line: line, BuildingID: bldgID, Reason: model.ReasonDivisionGuard,
				Field: colCapacity, Value: "0",
			})
			continue
		}

		if opts.DropZeroEnrollment && enrollment == 0 {
			res.Rejections = append(res.Rejections, model.Rejection{
				Line: line, BuildingID: bldgID, Reason: model.ReasonZeroEnrollment,
				Field: colEnrollment, Value: "0",
			})
			continue
		}

		c, ok := byBuilding[bldgID]
		if !ok {
			c = &candidate{
				record: model.BuildingRecord{
					BuildingID: bldgID,
					Name:       getCol(row, colIdx, colBuildingName),
					District:   district,
					Enrollment: enrollment,
					Capacity:   capacity,
				},
				orgs: make(map[string]struct{}),
			}
			byBuilding[bldgID] = c
			order = append(order, bldgID)
		}
		if org := getCol(row, colIdx, colOrganization); org != "" {
			c.orgs[org] = struct{}{}
		}
	}

	res.Records = make([]model.BuildingRecord, 0, len(order))
	for _, id := range order {
		c := byBuilding[id]
		c.record.Schools = joinSorted(c.orgs)
		res.Records = append(res.Records, c.record)
	}

	// Stable output order for reproducible table rendering.
	sort.Slice(res.Records, func(i, j int) bool {
		a, b := res.Records[i], res.Records[j]
		if a.District != b.District {
			return a.District < b.District
		}
		return a.BuildingID < b.BuildingID
	})

	return res
}

// parseDistrict reads and bounds-checks the district column.
func parseDistrict(row []string, colIdx map[string]int, line int, bldgID string) (int, *model.Rejection) {
	raw := getCol(row, colIdx, colDistrict)
	if raw == "" {
		return 0, &model.Rejection{
			Line: line, BuildingID: bldgID, Reason: model.ReasonMissingField, Field: colDistrict,
		}
	}
	d, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.Rejection{
			Line: line, BuildingID: bldgID, Reason: model.ReasonNonNumeric, Field: colDistrict, Value: raw,
		}
	}
	if d < model.MinDistrict || d > model.MaxDistrict {
		return 0, &model.Rejection{
			Line: line, BuildingID: bldgID, Reason: model.ReasonOutOfRange, Field: colDistrict, Value: raw,
		}
	}
	return d, nil
}

// parseCount reads a non-negative integer column that the source may
// encode as a float (e.g. "1000.0").
func parseCount(row []string, colIdx map[string]int, col string, line int, bldgID string) (int, *model.Rejection) {
	raw := getCol(row, colIdx, col)
	if raw == "" {
		return 0, &model.Rejection{
			Line: line, BuildingID: bldgID, Reason: model.ReasonMissingField, Field: col,
		}
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &model.Rejection{
			Line: line, BuildingID: bldgID, Reason: model.ReasonNonNumeric, Field: col, Value: raw,
		}
	}
	if f < 0 {
		return 0, &model.Rejection{
			Line: line, BuildingID: bldgID, Reason: model.ReasonNegativeValue, Field: col, Value: raw,
		}
	}
	return int(math.Round(f)), nil
}

func joinSorted(set map[string]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
