package normalize

import "strings"

// Source column names for the "Enrollment Capacity And Utilization
// Reports" dataset. Matching is case- and whitespace-insensitive so CSV
// and XLSX exports with cosmetic header differences both resolve.
const (
	colBuildingID   = "Bldg ID"
	colBuildingName = "Bldg Name"
	colDistrict     = "Geo Dist"
	colEnrollment   = "Bldg Enroll"
	colCapacity     = "Target Bldg Cap"
	colOrganization = "Organization Name"
	colAsOf         = "Data As Of"
)

// normalizeCol lowercases and strips surrounding whitespace for
// cross-format column matching.
func normalizeCol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapColumns builds a normalized column name -> index map from a header row.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[normalizeCol(col)] = i
	}
	return m
}

// getCol returns a trimmed column value by normalized name, or "" when the
// column is absent or the record is short.
func getCol(record []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[normalizeCol(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
