// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/inngest/inngestgo"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/social"
	"github.com/brandpulse-ai/brandpulse-workflows/services"
	"github.com/brandpulse-ai/brandpulse-workflows/workflows"
)

func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, "postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("dev.env"); err != nil {
			log.Printf("Note: No .env or dev.env file loaded: %v", err)
		} else {
			log.Printf("Loaded dev.env file for local development")
		}
	} else {
		log.Printf("Loaded .env file")
	}

	cfg := config.Load()

	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Port: %s", cfg.Port)
	log.Printf("Database Host: %s", cfg.Database.Host)
	log.Printf("Database Name: %s", cfg.Database.Name)

	if cfg.OpenAIAPIKey == "" {
		log.Printf("WARNING: OpenAI API key not loaded!")
	}
	if cfg.DeepResearchAPIKey == "" {
		log.Printf("WARNING: Deep research API key not loaded, async strategy disabled")
	}
	if cfg.Social.APIKey == "" {
		log.Printf("WARNING: Social listening API key not loaded, enrichment disabled")
	}

	ctx := context.Background()
	db, err := connectDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Printf("Successfully connected to database")

	reportStore := services.NewReportStore(db)
	if err := reportStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure report schema: %v", err)
	}

	if cfg.Environment == "development" || cfg.Environment == "" {
		os.Unsetenv("INNGEST_SIGNING_KEY")
		cfg.InngestSigningKey = ""
		log.Printf("Running in development mode - signing key verification disabled")
	}

	log.Println("Attempting to initialize Qdrant client...")
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Qdrant.Host,
		Port: cfg.Qdrant.Port,
	})
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	log.Println("Attempting to initialize Typesense client...")
	typesenseClient := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("http://%s:%d", cfg.Typesense.Host, cfg.Typesense.Port)),
		typesense.WithAPIKey(cfg.Typesense.APIKey),
	)

	openAIClient := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	indexService := services.NewIndexService(qdrantClient, typesenseClient, &openAIClient)
	if err := indexService.EnsureCollections(ctx); err != nil {
		log.Fatalf("Failed to ensure index collections: %v", err)
	}
	log.Printf("Report index collections are ready")

	// Provider and enrichment clients are constructed once here and
	// injected; nothing is lazily initialized per request.
	costService := services.NewCostService()
	availableProviders := providers.NewAvailable(cfg, costService)

	var enricher services.Enricher
	if cfg.Social.APIKey != "" {
		socialClient := social.NewClient(cfg.Social.APIKey, cfg.Social.BaseURL)
		enricher = social.NewManager(socialClient)
		log.Printf("Social listening enrichment enabled")
	}

	researchService := services.NewResearchService(availableProviders, enricher)
	log.Printf("Research service initialized with %d providers", len(availableProviders))

	client, err := inngestgo.NewClient(
		inngestgo.ClientOpts{
			AppID:    "brandpulse-workflows",
			EventKey: inngestgo.StrPtr(cfg.InngestEventKey),
			Env:      inngestgo.StrPtr(cfg.Environment),
		},
	)
	if err != nil {
		log.Fatalf("Failed to create Inngest client: %v", err)
	}

	log.Printf("Initializing NewReportProcessor workflow...")
	reportProcessor := workflows.NewReportProcessor(researchService, reportStore, indexService, cfg)
	reportProcessor.SetClient(client)
	reportProcessor.GenerateReport()

	log.Printf("All processors initialized and functions registered")

	h := client.Serve()
	mux := http.NewServeMux()
	mux.Handle("/api/inngest", h)

	// Root endpoint for ALB health check
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"service":"brandpulse-workflows","status":"running"}`))
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	mux.HandleFunc("/test/trigger-report", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		evt := inngestgo.Event{
			Name: "report.generate",
			Data: map[string]interface{}{
				"brand":        "Acme Outdoor Co",
				"category":     "outdoor apparel",
				"purpose":      "manual pipeline test",
				"provider":     "openai",
				"triggered_by": "manual_test",
			},
		}
		result, err := client.Send(r.Context(), evt)
		if err != nil {
			log.Printf("Failed to send test event: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(fmt.Sprintf(`{"error":"Failed to send event: %v"}`, err)))
			return
		}
		log.Printf("Test event sent successfully: %+v", result)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(fmt.Sprintf(`{"status":"success","event_ids":["%s"]}`, result)))
	})

	port := cfg.Port
	log.Printf("Starting BrandPulse Workflows service on port %s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}
