package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/drawing3d/polymesh"
	"github.com/drawing3d/polymesh/render"
	"github.com/drawing3d/polymesh/terrain"
)

var (
	seed           int64         = 12345
	numPoints      int           = 20000
	target         int           = 0
	ratio          float64       = 0.1
	aggressiveness float64       = polymesh.DefaultAggressiveness
	lossless       bool          = false
	verbose        bool          = false
	timeout        time.Duration = 0
	pngFile        string        = ""
	fill           bool          = true
)

func init() {
	flag.Int64Var(&seed, "seed", seed, "the terrain seed")
	flag.IntVar(&numPoints, "num_points", numPoints, "number of terrain samples")
	flag.IntVar(&target, "target", target, "target triangle count, overrides -ratio")
	flag.Float64Var(&ratio, "ratio", ratio, "target triangle count as a fraction of the input")
	flag.Float64Var(&aggressiveness, "aggressiveness", aggressiveness, "threshold growth exponent")
	flag.BoolVar(&lossless, "lossless", lossless, "only collapse edges without visible error")
	flag.BoolVar(&verbose, "verbose", verbose, "log every round")
	flag.DurationVar(&timeout, "timeout", timeout, "abort after this long, 0 for no limit")
	flag.StringVar(&pngFile, "png", pngFile, "render the simplified mesh to this PNG file")
	flag.BoolVar(&fill, "fill", fill, "fill triangles by height in the PNG")
}

func main() {
	flag.Parse()

	cfg := terrain.NewConfig()
	cfg.Seed = seed
	cfg.NumPoints = numPoints
	m, err := terrain.Generate(cfg)
	if err != nil {
		log.Fatal(err)
	}

	opts := polymesh.NewOptions()
	opts.TargetTriangleCount = target
	if target <= 0 {
		opts.TargetTriangleCount = int(float64(m.TriangleCount()) * ratio)
	}
	opts.Aggressiveness = aggressiveness
	opts.Lossless = lossless
	opts.Verbose = verbose

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := polymesh.SimplifyContext(ctx, m, opts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("simplified %d -> %d triangles, %d -> %d vertices in %v",
		m.TriangleCount(), out.TriangleCount(), len(m.Positions), len(out.Positions), time.Since(start))

	if pngFile == "" {
		return
	}
	style := render.NewStyle()
	style.Fill = fill
	img, err := render.Wireframe(out, style)
	if err != nil {
		log.Fatal(err)
	}
	if err := render.SavePNG(pngFile, img); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s", pngFile)
}
