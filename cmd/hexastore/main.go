package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jobeland/hexastore/internal/config"
	"github.com/jobeland/hexastore/internal/encoding"
	"github.com/jobeland/hexastore/internal/server"
	"github.com/jobeland/hexastore/internal/storage"
	"github.com/jobeland/hexastore/pkg/graph"
	"github.com/jobeland/hexastore/pkg/hexa"
	"github.com/jobeland/hexastore/pkg/query"
	"github.com/jobeland/hexastore/pkg/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: hexastore <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo                - Run a demo with sample data")
		fmt.Println("  serve [config.yaml] - Start the HTTP endpoint")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		runDemo()
	case "serve":
		cfg := config.Default()
		if len(os.Args) >= 3 {
			loaded, err := config.Load(os.Args[2])
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
			cfg = loaded
		}
		runServer(cfg)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func runDemo() {
	fmt.Println("=== Hexastore Demo ===")
	fmt.Println()

	cfg := config.Default()
	fmt.Printf("Opening database at: %s\n", cfg.Storage.DataDir)

	badgerStorage, err := storage.NewBadgerStorage(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("Failed to create storage: %v", err)
	}
	defer badgerStorage.Close()

	tripleStore := store.NewTripleStore(badgerStorage, encoding.NewCodec())
	g := graph.New(tripleStore, "demo")
	fmt.Println("Triple store initialized")
	fmt.Println()

	fmt.Println("Inserting sample data...")
	triples := []*hexa.Triple{
		hexa.NewDataTriple("alice", "name", "Alice"),
		hexa.NewDataTriple("alice", "age", "30"),
		hexa.NewEdgeTriple("alice", "knows", "bob"),

		hexa.NewDataTriple("bob", "name", "Bob"),
		hexa.NewDataTriple("bob", "age", "25"),
		hexa.NewEdgeTriple("bob", "knows", "carol"),

		hexa.NewDataTriple("carol", "name", "Carol"),
		hexa.NewDataTriple("carol", "age", "28"),
	}

	if err := g.InsertBatch(triples); err != nil {
		log.Fatalf("Failed to insert triples: %v", err)
	}
	for _, t := range triples {
		fmt.Printf("  %s\n", t)
	}

	count, err := g.Count()
	if err != nil {
		log.Fatalf("Failed to count triples: %v", err)
	}
	fmt.Printf("\nTotal triples stored: %d\n", count)

	fmt.Println()
	fmt.Println("=== Querying Data ===")
	fmt.Println()

	exec := query.NewExecutor(g)

	fmt.Println("Everyone older than 26:")
	resp, err := exec.Execute(&query.ObjectQueryModel{
		Filter: map[string]query.QueryUnit{
			"age": {Operator: query.OpGt, Value: "26"},
		},
	})
	if err != nil {
		log.Fatalf("Failed to execute query: %v", err)
	}
	for _, t := range resp.Values {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println()
	fmt.Println("People named Alice who reach Carol within two hops:")
	resp, err = exec.Execute(&query.ObjectQueryModel{
		Filter: map[string]query.QueryUnit{
			"name": {Operator: query.OpEq, Value: "Alice"},
		},
		HasObject: []query.LinkQuery{
			{
				Level: 2,
				Target: &query.ObjectQueryModel{
					Filter: map[string]query.QueryUnit{
						"name": {Operator: query.OpEq, Value: "Carol"},
					},
				},
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to execute query: %v", err)
	}
	for _, t := range resp.Values {
		fmt.Printf("  %s\n", t)
	}

	fmt.Println("\n=== Demo Complete ===")
}

func runServer(cfg *config.Config) {
	fmt.Printf("Opening database at: %s\n", cfg.Storage.DataDir)

	badgerStorage, err := storage.NewBadgerStorage(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer badgerStorage.Close()

	tripleStore := store.NewTripleStore(badgerStorage, encoding.NewCodec())

	srv := server.NewServer(tripleStore, cfg.Server.ListenAddr, cfg.Query.DefaultPageSize)
	fmt.Printf("Hexastore endpoint starting at http://%s/\n", cfg.Server.ListenAddr)
	fmt.Printf("Press Ctrl+C to stop\n\n")

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
