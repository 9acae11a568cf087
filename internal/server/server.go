// Package server exposes the query and ingest surface over HTTP
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/jobeland/hexastore/pkg/store"
)

// Server represents the HTTP endpoint for a triple store
type Server struct {
	store           *store.TripleStore
	addr            string
	defaultPageSize int
}

// NewServer creates a new HTTP server over a triple store
func NewServer(ts *store.TripleStore, addr string, defaultPageSize int) *Server {
	return &Server{
		store:           ts,
		addr:            addr,
		defaultPageSize: defaultPageSize,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /stores/{id}/query", s.handleQuery)
	mux.HandleFunc("POST /stores/{id}/triples", s.handleInsert)
	mux.HandleFunc("DELETE /stores/{id}/triples", s.handleRemove)
	mux.HandleFunc("GET /stores/{id}/count", s.handleCount)

	server := &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting hexastore endpoint at http://%s/", s.addr)
	return server.ListenAndServe()
}
