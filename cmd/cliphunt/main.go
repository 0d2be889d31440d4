package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cliphunt/internal/api"
	"cliphunt/internal/blueprint"
	"cliphunt/internal/catalog"
	"cliphunt/internal/pipeline"
	"cliphunt/internal/search"
	"cliphunt/shared/ai"
	"cliphunt/shared/config"
	"cliphunt/shared/email"
	"cliphunt/shared/monitoring"
	"cliphunt/shared/scheduler"
	"cliphunt/shared/storage"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API server")
	once := flag.Bool("once", false, "generate one blueprint and exit")
	topic := flag.String("topic", "", "topic for --once mode")
	ideators := flag.Int("ideators", 0, "ideator count for --once mode (0 uses the configured default)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service, store, monitor := buildService(cfg)

	switch {
	case *once:
		if *topic == "" {
			log.Fatal("--once requires -topic")
		}
		record, structure, err := service.Generate(ctx, *topic, *ideators)
		if err != nil {
			log.Fatalf("Failed to generate blueprint: %v", err)
		}
		log.Printf("Run %s archived: %d segments, %d concept fallbacks",
			record.RunID, record.SegmentCount, record.ConceptFallback)

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(structure); err != nil {
			log.Fatalf("Failed to print blueprint: %v", err)
		}

	case *serve:
		server := api.NewServer(service, store, monitor, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil {
			log.Fatalf("API server failed: %v", err)
		}

	default:
		fmt.Println("Starting scheduler...")
		s := scheduler.New(cfg.Schedule, monitor, service)
		if err := s.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("Scheduler failed: %v", err)
		}
	}
}

// buildService wires the pipeline and its surroundings from config.
// Missing optional credentials disable their capability instead of
// aborting startup.
func buildService(cfg *config.Config) (*blueprint.Service, *storage.RunStore, *monitoring.Monitor) {
	generator, err := ai.NewGenerator(&cfg.AI)
	if err != nil {
		log.Fatalf("Failed to create AI generator: %v", err)
	}

	var cat pipeline.Catalog
	ytClient, err := catalog.NewClient(&cfg.YouTube)
	if err != nil {
		log.Printf("Warning: video catalog disabled: %v", err)
	} else {
		cat = ytClient
	}

	registry := search.DefaultRegistry(
		search.NewTavilyClient(cfg.Search.TavilyAPIKey),
		search.NewDuckDuckGoClient(),
	)

	pipe := pipeline.New(generator, generator, cat, registry, pipeline.Options{
		MaxVideosAnalyzed: cfg.Pipeline.MaxVideosAnalyzed,
		CatalogMaxResults: cfg.Pipeline.CatalogMaxResults,
		CallTimeout:       cfg.Pipeline.CallTimeout,
	})

	store, err := storage.NewRunStore(cfg.Storage.DataDir, cfg.Storage.RunMaxAge)
	if err != nil {
		log.Fatalf("Failed to open run store: %v", err)
	}

	var sender *email.Sender
	if cfg.EmailEnabled() {
		sender = email.NewSender(&cfg.Email)
	}

	return blueprint.NewService(pipe, store, sender, cfg), store, monitoring.NewMonitor()
}
