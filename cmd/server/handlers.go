package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/drawing3d/polymesh"
	"github.com/drawing3d/polymesh/polygeo"
	"github.com/drawing3d/polymesh/render"
	"github.com/drawing3d/polymesh/terrain"
)

// meshJSON is the wire form of a mesh.
type meshJSON struct {
	Positions [][3]float64 `json:"positions"`
	Indices   []int        `json:"indices"`
}

func (mj *meshJSON) mesh() *polymesh.Mesh {
	m := &polymesh.Mesh{
		Positions: make([]r3.Vector, len(mj.Positions)),
		Indices:   mj.Indices,
	}
	for i, p := range mj.Positions {
		m.Positions[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return m
}

func newMeshJSON(m *polymesh.Mesh) *meshJSON {
	mj := &meshJSON{
		Positions: make([][3]float64, len(m.Positions)),
		Indices:   m.Indices,
	}
	for i, p := range m.Positions {
		mj.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return mj
}

func writeData(res http.ResponseWriter, contentType string, data []byte) {
	res.Header().Set("Content-Type", contentType)
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	res.Write(data)
}

func queryInt(req *http.Request, key string, def int) (int, error) {
	v := req.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parameter %s", key)
	}
	return i, nil
}

func queryFloat(req *http.Request, key string, def float64) (float64, error) {
	v := req.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parameter %s", key)
	}
	return f, nil
}

// simplifyOptions reads target, aggressiveness and lossless from the query.
func simplifyOptions(req *http.Request, triangleCount int) (*polymesh.Options, error) {
	opts := polymesh.NewOptions()
	target, err := queryInt(req, "target", triangleCount/2)
	if err != nil {
		return nil, err
	}
	opts.TargetTriangleCount = target
	if opts.Aggressiveness, err = queryFloat(req, "aggressiveness", opts.Aggressiveness); err != nil {
		return nil, err
	}
	opts.Lossless = req.URL.Query().Get("lossless") == "true"
	return opts, nil
}

// triangulateHandler reads a GeoJSON feature collection and answers with
// the triangles of its polygons.
func triangulateHandler(res http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	var proj polygeo.Projection
	if req.URL.Query().Get("mercator") == "true" {
		zoom, err := queryInt(req, "zoom", 0)
		if err != nil {
			http.Error(res, err.Error(), http.StatusBadRequest)
			return
		}
		proj = polygeo.Mercator(zoom)
	}
	polys, err := polygeo.Decode(data, proj)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := encodeTriangles(polys)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	writeData(res, "application/json", out)
}

// encodeTriangles turns a triangulator panic on malformed rings, such as a
// hole crossing the boundary, into an error.
func encodeTriangles(polys []*polygeo.Polygon) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, errors.Errorf("invalid polygon: %v", r)
		}
	}()
	return polygeo.Encode(polys)
}

// simplifyHandler reads a JSON mesh and answers with the simplified mesh.
func simplifyHandler(res http.ResponseWriter, req *http.Request) {
	var in meshJSON
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	m := in.mesh()
	if err := m.Validate(); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := simplifyOptions(req, m.TriangleCount())
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := polymesh.SimplifyContext(req.Context(), m, opts)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := json.Marshal(newMeshJSON(out))
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeData(res, "application/json", data)
}

// terrainHandler renders a simplified noise terrain.
func terrainHandler(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	seed, err := strconv.ParseInt(vars["seed"], 10, 64)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	cfg := terrain.NewConfig()
	cfg.Seed = seed
	if cfg.NumPoints, err = queryInt(req, "points", cfg.NumPoints); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	if cfg.NumPoints > maxPoints {
		http.Error(res, "too many points", http.StatusBadRequest)
		return
	}
	m, err := terrain.Generate(cfg)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := simplifyOptions(req, m.TriangleCount())
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := polymesh.SimplifyContext(req.Context(), m, opts)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	img, err := render.Wireframe(out, render.NewStyle())
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeData(res, "image/png", buf.Bytes())
}
