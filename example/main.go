// +build example

package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/jbeda/geom"

	"github.com/drawing3d/polymesh"
)

const (
	screenWidth  = 320
	screenHeight = 240
)

var (
	points   []geom.Coord
	elements []int
	white    *ebiten.Image
)

func update(screen *ebiten.Image) error {
	if ebiten.IsDrawingSkipped() {
		return nil
	}
	screen.Fill(color.RGBA{0x20, 0x20, 0x30, 0xff})

	vs := make([]ebiten.Vertex, len(points))
	for i, p := range points {
		vs[i] = ebiten.Vertex{
			DstX:   float32(screenWidth/2 + p.X*20),
			DstY:   float32(screenHeight/2 - p.Y*20),
			SrcX:   1,
			SrcY:   1,
			ColorR: 0.4,
			ColorG: 0.7,
			ColorB: float32(i%3) / 2,
			ColorA: 1,
		}
	}
	is := make([]uint16, len(elements))
	for i, e := range elements {
		is[i] = uint16(e)
	}
	screen.DrawTriangles(vs, is, white, nil)
	return nil
}

func main() {
	cache := polymesh.NewCircleCache()
	boundary := cache.RegularPolygon(geom.Coord{}, 5, 24)
	holes := [][]geom.Coord{
		cache.RegularPolygon(geom.Coord{X: -2, Y: 0}, 1, 8),
		cache.RegularPolygon(geom.Coord{X: 2, Y: 1}, 1.2, 5),
	}
	points = append(points, boundary...)
	for _, h := range holes {
		points = append(points, h...)
	}
	elements = polymesh.Triangulate(boundary, holes...)
	for i := 0; i < len(elements)/3; i++ {
		a, b, c := points[elements[3*i]], points[elements[3*i+1]], points[elements[3*i+2]]
		fmt.Printf("(%.1f, %.1f), (%.1f, %.1f), (%.1f, %.1f)\n", a.X, a.Y, b.X, b.Y, c.X, c.Y)
	}

	var err error
	white, err = ebiten.NewImage(16, 16, ebiten.FilterDefault)
	if err != nil {
		panic(err)
	}
	white.Fill(color.White)
	if err := ebiten.Run(update, screenWidth, screenHeight, 2, "polymesh"); err != nil {
		panic(err)
	}
}
