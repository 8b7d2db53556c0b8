// Package geo loads district boundary geometry from a shapefile and joins
// building records to it by district number. The join is a lookup
// relation: records reference boundaries by identifier and never own the
// geometry.
package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

// districtField is the district number attribute in the NYC school
// district shapefile (nysd).
const districtField = "SchoolDist"

// Boundary is one district's dissolved geometry plus its label anchor.
type Boundary struct {
	District int
	Geometry *geom.MultiPolygon
	LabelLon float64
	LabelLat float64
}

// BoundarySet holds all loaded district boundaries keyed by district.
type BoundarySet struct {
	byDistrict map[int]*Boundary
}

// labelOverrides pins label anchors that the raw centroid places
// illegibly (narrow or concave districts).
var labelOverrides = map[int][2]float64{
	4:  {-73.938, 40.7925},
	13: {-73.969759, 40.687},
	15: {-73.991, 40.663772},
	27: {-73.797, 40.655},
}

// LoadBoundaries reads the district boundary shapefile. Shapefile records
// sharing a district number are dissolved into one multipolygon (district
// 10 spans two records in the source). The shapefile must already be in
// EPSG:4326.
func LoadBoundaries(shpPath string) (*BoundarySet, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	// Build field name -> index map.
	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}
	districtIdx, ok := fieldIdx[strings.ToLower(districtField)]
	if !ok {
		return nil, eris.Errorf("geo: shapefile missing %s field", districtField)
	}

	bs := &BoundarySet{byDistrict: make(map[int]*Boundary)}
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		district := parseDistrictAttr(reader.Attribute(districtIdx))
		if district < model.MinDistrict || district > model.MaxDistrict {
			skipped++
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			skipped++
			continue
		}

		b, ok := bs.byDistrict[district]
		if !ok {
			b = &Boundary{
				District: district,
				Geometry: geom.NewMultiPolygon(geom.XY).SetSRID(4326),
			}
			bs.byDistrict[district] = b
		}
		if err := appendPolygon(b.Geometry, poly); err != nil {
			skipped++
			continue
		}
	}

	for district, b := range bs.byDistrict {
		b.LabelLon, b.LabelLat = labelPoint(district, b.Geometry)
	}

	if skipped > 0 {
		zap.L().Debug("geo: skipped shapefile records", zap.Int("skipped", skipped))
	}
	zap.L().Info("geo: boundaries loaded", zap.Int("districts", len(bs.byDistrict)))

	return bs, nil
}

// Boundary returns the boundary for a district, or nil when absent.
func (bs *BoundarySet) Boundary(district int) *Boundary {
	return bs.byDistrict[district]
}

// Districts returns the loaded district numbers in ascending order.
func (bs *BoundarySet) Districts() []int {
	out := make([]int, 0, len(bs.byDistrict))
	for d := model.MinDistrict; d <= model.MaxDistrict; d++ {
		if _, ok := bs.byDistrict[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// appendPolygon dissolves a shapefile polygon's parts into the district's
// multipolygon.
func appendPolygon(mp *geom.MultiPolygon, p *shp.Polygon) error {
	if p.NumParts == 0 || len(p.Points) == 0 {
		return eris.New("geo: empty polygon")
	}

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			return eris.Wrap(err, "geo: push ring")
		}
		if err := mp.Push(poly); err != nil {
			return eris.Wrap(err, "geo: push polygon")
		}
	}
	return nil
}

// labelPoint returns the label anchor for a district: the manual override
// when one exists, otherwise the geometry centroid.
func labelPoint(district int, mp *geom.MultiPolygon) (lon, lat float64) {
	if c, ok := labelOverrides[district]; ok {
		return c[0], c[1]
	}
	centroid, err := xy.Centroid(mp)
	if err != nil {
		zap.L().Debug("geo: centroid failed, using bounds center",
			zap.Int("district", district), zap.Error(err))
		b := mp.Bounds()
		return (b.Min(0) + b.Max(0)) / 2, (b.Min(1) + b.Max(1)) / 2
	}
	return centroid[0], centroid[1]
}

// parseDistrictAttr reads a district number attribute, tolerating trailing
// NUL padding from dBASE fields.
func parseDistrictAttr(raw string) int {
	raw = strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	var d int
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0
		}
		d = d*10 + int(r-'0')
	}
	if raw == "" {
		return 0
	}
	return d
}
