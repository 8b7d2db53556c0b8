package geo

import (
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// FeatureCollection encodes the boundary set as a GeoJSON
// FeatureCollection with one feature per district, in ascending district
// order. The district number rides along as both the feature ID and a
// property so the choropleth can key colors by district.
func FeatureCollection(bs *BoundarySet) ([]byte, error) {
	fc := geojson.FeatureCollection{}

	for _, d := range bs.Districts() {
		b := bs.Boundary(d)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.Itoa(d),
			Geometry: b.Geometry,
			Properties: map[string]any{
				"district":  d,
				"label_lon": b.LabelLon,
				"label_lat": b.LabelLat,
			},
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "geo: marshal feature collection")
	}
	return data, nil
}
