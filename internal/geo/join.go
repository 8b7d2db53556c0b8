package geo

import (
	"go.uber.org/zap"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

// Join attaches a GeoRef to each record whose district has a loaded
// boundary and returns the building_id -> GeoRef map used for map
// coloring. Records without a matching boundary keep a nil GeoRef; they
// are excluded from spatial rendering but never from tabular or
// statistical outputs.
func Join(records []model.BuildingRecord, bs *BoundarySet) map[string]*model.GeoRef {
	refs := make(map[string]*model.GeoRef, len(records))
	var unmatched int

	for i := range records {
		r := &records[i]
		b := bs.Boundary(r.District)
		if b == nil {
			r.GeoRef = nil
			unmatched++
			continue
		}
		ref := &model.GeoRef{
			District: b.District,
			LabelLon: b.LabelLon,
			LabelLat: b.LabelLat,
		}
		r.GeoRef = ref
		refs[r.BuildingID] = ref
	}

	if unmatched > 0 {
		zap.L().Warn("geo: buildings without boundary match", zap.Int("count", unmatched))
	}

	return refs
}
