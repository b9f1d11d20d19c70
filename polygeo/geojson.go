// Package polygeo reads polygons from GeoJSON and writes their
// triangulations back as GeoJSON.
package polygeo

import (
	"github.com/davvo/mercator"
	"github.com/jbeda/geom"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/drawing3d/polymesh"
)

// Projection maps a GeoJSON position to the plane the triangulation runs
// in.
type Projection func(lon, lat float64) geom.Coord

// Identity uses longitude as X and latitude as Y.
func Identity(lon, lat float64) geom.Coord {
	return geom.Coord{X: lon, Y: lat}
}

// Mercator projects to web mercator pixels at the given zoom level. Pixel
// Y grows northwards so ring orientation is preserved.
func Mercator(zoom int) Projection {
	return func(lon, lat float64) geom.Coord {
		x, y := mercator.LatLonToPixels(lat, lon, zoom)
		return geom.Coord{X: x, Y: y}
	}
}

// Polygon is a single GeoJSON polygon. Rings keep the original positions,
// Boundary and Holes the projected ones.
type Polygon struct {
	Boundary   []geom.Coord
	Holes      [][]geom.Coord
	Rings      [][][]float64
	Properties map[string]interface{}
}

// NewPolygon builds a Polygon from planar rings. The rings double as the
// original positions.
func NewPolygon(boundary []geom.Coord, holes ...[]geom.Coord) *Polygon {
	p := &Polygon{
		Boundary:   boundary,
		Holes:      holes,
		Properties: map[string]interface{}{},
	}
	for _, ring := range append([][]geom.Coord{boundary}, holes...) {
		raw := make([][]float64, len(ring))
		for i, c := range ring {
			raw[i] = []float64{c.X, c.Y}
		}
		p.Rings = append(p.Rings, raw)
	}
	return p
}

// Decode returns every Polygon and MultiPolygon member of a feature
// collection. Other geometries are skipped. A nil projection means
// Identity.
func Decode(data []byte, proj Projection) ([]*Polygon, error) {
	if proj == nil {
		proj = Identity
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "polygeo: decoding feature collection")
	}
	var polys []*Polygon
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		switch {
		case f.Geometry.IsPolygon():
			p, err := newPolygon(f.Geometry.Polygon, f.Properties, proj)
			if err != nil {
				return nil, errors.Wrapf(err, "polygeo: feature %d", i)
			}
			polys = append(polys, p)
		case f.Geometry.IsMultiPolygon():
			for j, rings := range f.Geometry.MultiPolygon {
				p, err := newPolygon(rings, f.Properties, proj)
				if err != nil {
					return nil, errors.Wrapf(err, "polygeo: feature %d polygon %d", i, j)
				}
				polys = append(polys, p)
			}
		}
	}
	return polys, nil
}

func newPolygon(rings [][][]float64, props map[string]interface{}, proj Projection) (*Polygon, error) {
	if len(rings) == 0 {
		return nil, errors.New("polygon without rings")
	}
	p := &Polygon{Properties: props}
	for i, ring := range rings {
		coords := make([]geom.Coord, len(ring))
		raw := make([][]float64, len(ring))
		for j, pos := range ring {
			if len(pos) < 2 {
				return nil, errors.Errorf("ring %d position %d has %d coordinates", i, j, len(pos))
			}
			coords[j] = proj(pos[0], pos[1])
			raw[j] = pos
		}
		if i == 0 {
			p.Boundary = coords
		} else {
			p.Holes = append(p.Holes, coords)
		}
		p.Rings = append(p.Rings, raw)
	}
	return p, nil
}

// Triangulate returns the triangles of the polygon as index triples into
// Positions.
func (p *Polygon) Triangulate() []int {
	return polymesh.Triangulate(p.Boundary, p.Holes...)
}

// Points returns the projected points of every ring in index order. A
// repeated closing point is dropped, matching the numbering used by
// Triangulate.
func (p *Polygon) Points() []geom.Coord {
	var points []geom.Coord
	for i := range p.Rings {
		points = append(points, p.ring(i)...)
	}
	return points
}

// Positions returns the original positions in the same order as Points.
func (p *Polygon) Positions() [][]float64 {
	var positions [][]float64
	for i, raw := range p.Rings {
		positions = append(positions, raw[:len(p.ring(i))]...)
	}
	return positions
}

func (p *Polygon) ring(i int) []geom.Coord {
	coords := p.Boundary
	if i > 0 {
		coords = p.Holes[i-1]
	}
	if n := len(coords); n > 1 && coords[0] == coords[n-1] {
		return coords[:n-1]
	}
	return coords
}

// Encode triangulates every polygon and returns a feature collection with
// one Polygon feature per triangle. Triangles use the original positions
// and carry the source properties plus "polygon", "triangle" and
// "indices".
func Encode(polys []*Polygon) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, p := range polys {
		positions := p.Positions()
		elements := p.Triangulate()
		for t := 0; t < len(elements)/3; t++ {
			a, b, c := elements[3*t], elements[3*t+1], elements[3*t+2]
			ring := [][]float64{positions[a], positions[b], positions[c], positions[a]}
			f := geojson.NewPolygonFeature([][][]float64{ring})
			for k, v := range p.Properties {
				f.SetProperty(k, v)
			}
			f.SetProperty("polygon", i)
			f.SetProperty("triangle", t)
			f.SetProperty("indices", []int{a, b, c})
			fc.AddFeature(f)
		}
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "polygeo: encoding feature collection")
	}
	return data, nil
}
