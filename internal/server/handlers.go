package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jobeland/hexastore/pkg/graph"
	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/query"
	"github.com/jobeland/hexastore/pkg/store"
)

// tripleRow is the wire shape of one triple in ingest requests
type tripleRow struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	IsID      bool   `json:"is_id,omitempty"`
}

func (r tripleRow) toTriple() *hexa.Triple {
	if r.IsID {
		return hexa.NewEdgeTriple(r.Subject, r.Predicate, r.Object)
	}
	return hexa.NewDataTriple(r.Subject, r.Predicate, r.Object)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")

	var model query.ObjectQueryModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query body: "+err.Error())
		return
	}

	g := graph.New(s.store, storeID)
	exec := query.NewExecutorWithPageSize(g, s.defaultPageSize)

	resp, err := exec.Execute(&model)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	s.handleIngest(w, r, func(g *graph.Graph, triples []*hexa.Triple) error {
		return g.InsertBatch(triples)
	})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.handleIngest(w, r, func(g *graph.Graph, triples []*hexa.Triple) error {
		return g.RemoveBatch(triples)
	})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request, apply func(*graph.Graph, []*hexa.Triple) error) {
	storeID := r.PathValue("id")

	var rows []tripleRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid triple body: "+err.Error())
		return
	}

	triples := make([]*hexa.Triple, 0, len(rows))
	for _, row := range rows {
		if row.Subject == "" || row.Predicate == "" {
			writeError(w, http.StatusBadRequest, "subject and predicate must be non-empty")
			return
		}
		triples = append(triples, row.toTriple())
	}

	if err := apply(graph.New(s.store, storeID), triples); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": len(triples)})
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")

	count, err := graph.New(s.store, storeID).Count()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// statusFor maps the error taxonomy onto HTTP statuses: validation errors
// are the client's, everything else is the store's
func statusFor(err error) int {
	switch {
	case errors.Is(err, query.ErrAtLeastOneFilter),
		errors.Is(err, query.ErrPathEmpty),
		errors.Is(err, query.ErrUnknownComparator):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrCorruptTriple),
		errors.Is(err, store.ErrStoreUnavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
