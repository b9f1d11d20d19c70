package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

var (
	addr      string = ":3333"
	maxPoints int    = 200000
)

func init() {
	flag.StringVar(&addr, "addr", addr, "listen address")
	flag.IntVar(&maxPoints, "max_points", maxPoints, "largest terrain a request may generate")
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/triangulate", triangulateHandler).Methods(http.MethodPost)
	router.HandleFunc("/simplify", simplifyHandler).Methods(http.MethodPost)
	router.HandleFunc("/terrain/{seed}.png", terrainHandler).Methods(http.MethodGet)
	return router
}

func main() {
	flag.Parse()
	log.Printf("listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, newRouter()))
}
