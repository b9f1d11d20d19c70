package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/jbeda/geom"

	"github.com/drawing3d/polymesh"
	"github.com/drawing3d/polymesh/polygeo"
	"github.com/drawing3d/polymesh/render"
)

var (
	input       string = "-"
	output      string = "-"
	pngFile     string = ""
	useMercator bool   = false
	zoom        int    = 0
	demo        bool   = false
	demoSides   int    = 64
)

func init() {
	flag.StringVar(&input, "in", input, "GeoJSON input file, - for stdin")
	flag.StringVar(&output, "out", output, "GeoJSON output file, - for stdout")
	flag.StringVar(&pngFile, "png", pngFile, "also render the triangles to this PNG file")
	flag.BoolVar(&useMercator, "mercator", useMercator, "project positions to web mercator before triangulating")
	flag.IntVar(&zoom, "zoom", zoom, "mercator zoom level")
	flag.BoolVar(&demo, "demo", demo, "triangulate a built-in disk with holes instead of reading input")
	flag.IntVar(&demoSides, "sides", demoSides, "number of sides of the demo disk")
}

// demoPolygon is a disk with three round holes.
func demoPolygon() *polygeo.Polygon {
	cache := polymesh.NewCircleCache()
	var holes [][]geom.Coord
	for _, c := range []geom.Coord{{X: -4, Y: 0}, {X: 3, Y: 3}, {X: 3, Y: -4}} {
		holes = append(holes, cache.RegularPolygon(c, 2, demoSides/4))
	}
	p := polygeo.NewPolygon(cache.RegularPolygon(geom.Coord{}, 10, demoSides), holes...)
	p.Properties["name"] = "demo"
	return p
}

func readInput() ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(input)
}

func main() {
	flag.Parse()

	var polys []*polygeo.Polygon
	if demo {
		polys = append(polys, demoPolygon())
	} else {
		data, err := readInput()
		if err != nil {
			log.Fatal(err)
		}
		var proj polygeo.Projection
		if useMercator {
			proj = polygeo.Mercator(zoom)
		}
		polys, err = polygeo.Decode(data, proj)
		if err != nil {
			log.Fatal(err)
		}
	}

	data, err := polygeo.Encode(polys)
	if err != nil {
		log.Fatal(err)
	}
	if output == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatal(err)
		}
	} else if err := os.WriteFile(output, data, 0644); err != nil {
		log.Fatal(err)
	}

	if pngFile == "" || len(polys) == 0 {
		return
	}
	// The image shows the first polygon in its projected plane.
	p := polys[0]
	img, err := render.Triangles(p.Points(), p.Triangulate(), render.NewStyle())
	if err != nil {
		log.Fatal(err)
	}
	if err := render.SavePNG(pngFile, img); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", pngFile)
}
