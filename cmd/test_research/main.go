// Command test_research runs one research request end-to-end from the
// command line: provider call, extraction, fallback, enrichment. Useful for
// smoke testing provider credentials without standing up the full service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/config"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/providers"
	"github.com/brandpulse-ai/brandpulse-workflows/internal/social"
	"github.com/brandpulse-ai/brandpulse-workflows/services"
)

func main() {
	brand := flag.String("brand", "", "brand to research (required)")
	category := flag.String("category", "", "brand category (required)")
	provider := flag.String("provider", "openai", "provider kind: openai, anthropic, perplexity, deep_research, manual")
	timeframe := flag.String("timeframe", "last 90 days", "research timeframe")
	markets := flag.String("markets", "", "comma-separated target markets")
	rawFile := flag.String("raw", "", "path to a raw result file to extract instead of calling a provider")
	out := flag.String("out", "", "write the result JSON to this file instead of stdout")
	flag.Parse()

	fmt.Println("🧪 Brand Research Test Script")

	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️  No .env file found, using environment variables")
	} else {
		fmt.Println("✅ Loaded .env file")
	}

	if *brand == "" || *category == "" {
		fmt.Println("❌ -brand and -category are required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Load()
	costService := services.NewCostService()
	available := providers.NewAvailable(cfg, costService)

	var enricher services.Enricher
	if cfg.Social.APIKey != "" {
		enricher = social.NewManager(social.NewClient(cfg.Social.APIKey, cfg.Social.BaseURL))
		fmt.Println("✅ Social enrichment enabled")
	} else {
		fmt.Println("⚠️  No social API key, enrichment section will carry the default payload")
	}

	researchService := services.NewResearchService(available, enricher)

	req := &models.ResearchRequest{
		RequestID: uuid.New(),
		Brand:     *brand,
		Category:  *category,
		Timeframe: *timeframe,
		Purpose:   "command line smoke test",
		Provider:  models.ProviderKind(*provider),
	}
	if *markets != "" {
		for _, m := range strings.Split(*markets, ",") {
			req.Markets = append(req.Markets, strings.TrimSpace(m))
		}
	}
	if *rawFile != "" {
		data, err := os.ReadFile(*rawFile)
		if err != nil {
			fmt.Printf("❌ Failed to read raw result file: %v\n", err)
			os.Exit(1)
		}
		req.RawResult = string(data)
		fmt.Printf("📄 Using raw result from %s (%d bytes)\n", *rawFile, len(data))
	}

	fmt.Printf("\n🎯 Researching %q (%s) via %s\n\n", req.Brand, req.Category, *provider)

	start := time.Now()
	result, err := researchService.GenerateReport(context.Background(), req)
	if err != nil {
		fmt.Printf("❌ Request rejected: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Completed in %v\n", time.Since(start))

	if result.IsManual() {
		fmt.Println("\n📋 Manual workflow prepared:")
		fmt.Printf("   Provider URL: %s\n", result.Manual.ProviderURL)
		for i, step := range result.Manual.Instructions {
			fmt.Printf("   %d. %s\n", i+1, step)
		}
		fmt.Println("\n--- Prompt ---")
		fmt.Println(result.Manual.Prompt)
		return
	}

	fmt.Printf("   Source: %s", result.Source)
	if result.Strategy != "" {
		fmt.Printf(" (%s)", result.Strategy)
	}
	fmt.Println()
	fmt.Printf("   Cost: $%.6f\n", result.Cost)
	fmt.Printf("   Social metrics: %s\n", result.Report.SocialMetrics.Source)

	data, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		fmt.Printf("❌ Failed to marshal report: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, data, 0644); err != nil {
			fmt.Printf("❌ Failed to save %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("💾 Saved report to %s\n", *out)
		return
	}

	fmt.Println("\n--- Report ---")
	fmt.Println(string(data))
}
