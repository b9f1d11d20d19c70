// Package render draws triangulations and meshes into images.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r3"
	"github.com/jbeda/geom"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/mazznoer/colorgrad"
	"github.com/pkg/errors"

	"github.com/drawing3d/polymesh"
)

// Style controls the look of a rendered image.
type Style struct {
	Width      int         // Image width in pixels
	Height     int         // Image height in pixels
	Padding    float64     // Margin around the drawing in pixels
	Background color.Color // Fill of the whole image
	Stroke     color.Color // Triangle outline color
	LineWidth  float64     // Triangle outline width; 0 disables outlines
	Fill       bool        // Fill triangles with gradient colors
	Gradient   colorgrad.Gradient
}

// NewStyle returns a new Style with default values.
func NewStyle() *Style {
	return &Style{
		Width:      512,
		Height:     512,
		Padding:    16,
		Background: color.White,
		Stroke:     color.RGBA{0, 0, 0, 255},
		LineWidth:  1,
		Fill:       true,
		Gradient:   colorgrad.Rainbow(),
	}
}

// Bounds returns the smallest rectangle containing points.
func Bounds(points []geom.Coord) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.ExpandToContainCoord(p)
	}
	return r
}

// viewport maps drawing coordinates to pixels, flipping Y so that up in the
// drawing is up in the image.
type viewport struct {
	bounds geom.Rect
	scale  float64
	dx, dy float64
	height float64
}

func newViewport(bounds geom.Rect, style *Style) viewport {
	w := float64(style.Width) - 2*style.Padding
	h := float64(style.Height) - 2*style.Padding
	scale := 1.0
	switch bw, bh := bounds.Width(), bounds.Height(); {
	case bw > 0 && bh > 0:
		scale = math.Min(w/bw, h/bh)
	case bw > 0:
		scale = w / bw
	case bh > 0:
		scale = h / bh
	}
	return viewport{
		bounds: bounds,
		scale:  scale,
		dx:     style.Padding + (w-bounds.Width()*scale)/2,
		dy:     style.Padding + (h-bounds.Height()*scale)/2,
		height: float64(style.Height),
	}
}

func (v viewport) apply(p geom.Coord) (float64, float64) {
	x := (p.X-v.bounds.Min.X)*v.scale + v.dx
	y := (p.Y-v.bounds.Min.Y)*v.scale + v.dy
	return x, v.height - y
}

func newCanvas(style *Style) (*image.RGBA, *draw2dimg.GraphicContext) {
	dest := image.NewRGBA(image.Rect(0, 0, style.Width, style.Height))
	gc := draw2dimg.NewGraphicContext(dest)
	gc.SetFillColor(style.Background)
	gc.BeginPath()
	gc.MoveTo(0, 0)
	gc.LineTo(float64(style.Width), 0)
	gc.LineTo(float64(style.Width), float64(style.Height))
	gc.LineTo(0, float64(style.Height))
	gc.Close()
	gc.Fill()
	gc.SetLineWidth(style.LineWidth)
	gc.SetStrokeColor(style.Stroke)
	return dest, gc
}

func drawTriangle(gc *draw2dimg.GraphicContext, v viewport, a, b, c geom.Coord, fill color.Color, style *Style) {
	gc.BeginPath()
	gc.MoveTo(v.apply(a))
	gc.LineTo(v.apply(b))
	gc.LineTo(v.apply(c))
	gc.Close()
	switch {
	case fill != nil && style.LineWidth > 0:
		gc.SetFillColor(fill)
		gc.FillStroke()
	case fill != nil:
		gc.SetFillColor(fill)
		gc.Fill()
	case style.LineWidth > 0:
		gc.Stroke()
	}
}

// Triangles draws the triangles listed by elements, one index triple per
// triangle into points. Filled triangles cycle through the gradient.
func Triangles(points []geom.Coord, elements []int, style *Style) (*image.RGBA, error) {
	if style == nil {
		style = NewStyle()
	}
	if len(elements)%3 != 0 {
		return nil, errors.Errorf("render: index count %d is not a multiple of 3", len(elements))
	}
	for _, idx := range elements {
		if idx < 0 || idx >= len(points) {
			return nil, errors.Errorf("render: index %d out of range [0, %d)", idx, len(points))
		}
	}

	dest, gc := newCanvas(style)
	v := newViewport(Bounds(points), style)
	n := len(elements) / 3
	var colors []color.Color
	if style.Fill && n > 0 {
		colors = style.Gradient.Colors(uint(n))
	}
	for i := 0; i < n; i++ {
		var fill color.Color
		if colors != nil {
			fill = colors[i]
		}
		drawTriangle(gc, v, points[elements[3*i]], points[elements[3*i+1]], points[elements[3*i+2]], fill, style)
	}
	return dest, nil
}

// Wireframe draws m seen from above (+Z). Filled triangles are colored by
// their mean height.
func Wireframe(m *polymesh.Mesh, style *Style) (*image.RGBA, error) {
	if style == nil {
		style = NewStyle()
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "render: invalid mesh")
	}

	points := make([]geom.Coord, len(m.Positions))
	minZ, maxZ := 0.0, 0.0
	for i, p := range m.Positions {
		points[i] = geom.Coord{X: p.X, Y: p.Y}
		if i == 0 || p.Z < minZ {
			minZ = p.Z
		}
		if i == 0 || p.Z > maxZ {
			maxZ = p.Z
		}
	}

	dest, gc := newCanvas(style)
	v := newViewport(Bounds(points), style)
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		var fill color.Color
		if style.Fill {
			fill = style.Gradient.At(normalize(meanZ(m.Positions[a], m.Positions[b], m.Positions[c]), minZ, maxZ))
		}
		drawTriangle(gc, v, points[a], points[b], points[c], fill, style)
	}
	return dest, nil
}

func meanZ(a, b, c r3.Vector) float64 {
	return (a.Z + b.Z + c.Z) / 3
}

func normalize(x, min, max float64) float64 {
	if max <= min {
		return 0.5
	}
	return (x - min) / (max - min)
}

// SavePNG writes img to a PNG file.
func SavePNG(path string, img image.Image) error {
	if err := draw2dimg.SaveToPngFile(path, img); err != nil {
		return errors.Wrapf(err, "render: saving %s", path)
	}
	return nil
}
