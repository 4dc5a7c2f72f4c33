package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arealens-org/arealens/config"
	"github.com/arealens-org/arealens/dataset"
	"github.com/arealens-org/arealens/engine"
	"github.com/arealens-org/arealens/server"
	"github.com/arealens-org/arealens/summarizer"
)

// ============================================================================
// AREALENS CLI — ask questions of a real-estate dataset, or serve the API
// ============================================================================

const version = "0.1.0"

func main() {
	dataPath := flag.String("data", "", "Path to dataset file (overrides DATA_PATH)")
	source := flag.String("source", "", "Data source: excel, csv, postgres (overrides DATA_SOURCE)")
	queryStr := flag.String("query", "", "Natural language query to execute")
	serve := flag.Bool("serve", false, "Run the HTTP API server")
	addr := flag.String("addr", "", "Listen address for --serve (overrides LISTEN_ADDR)")
	format := flag.String("format", "json", "Output format: json, pretty, text")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Arealens — ask questions of a real-estate dataset

Usage:
  arealens --data market.xlsx --query "price trend for Wakad 2019 to 2023"
  arealens --data market.csv --source csv --query "demand in Pune" --format text
  arealens --serve --addr :8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment (.env supported):
  DATA_PATH, DATA_SOURCE       Dataset location and backend
  GEMINI_API_KEY               Optional: enables summary rewriting
  LISTEN_ADDR, ALLOWED_ORIGIN  HTTP server settings

Formats:
  json      Full result bundle (default)
  pretty    Pretty-printed JSON
  text      Summary and ranked localities only
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("arealens %s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}
	if *source != "" {
		cfg.DataSource = *source
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	store := dataset.NewStore(newSource(cfg), dataset.DefaultFieldMapping())

	opts := []engine.Option{
		engine.WithTableLimit(cfg.TableLimit),
		engine.WithSummarizer(summarizer.FromConfig(summarizer.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		}, time.Duration(cfg.SummaryTimeoutMs)*time.Millisecond)),
	}

	if *serve {
		srv := server.New(store, cfg.AllowedOrigin, opts...)
		if err := srv.Run(cfg.ListenAddr); err != nil {
			fatalf("Server failed: %v", err)
		}
		return
	}

	if *queryStr == "" {
		fmt.Fprintln(os.Stderr, "Error: either --query or --serve is required")
		flag.Usage()
		os.Exit(1)
	}

	ds, err := store.Load()
	if err != nil {
		fatalf("Dataset load failed: %v", err)
	}

	result := engine.Execute(ds, *queryStr, opts...)

	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	switch *format {
	case "text":
		fmt.Fprintln(writer, result.Summary)
		for i, r := range result.Insights.RankedAreas {
			fmt.Fprintf(writer, "%d. %-30s %.1f/10\n", i+1, r.Area, r.InvestmentScore)
		}
	case "pretty":
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fatalf("Failed to encode result: %v", err)
		}
	default:
		if err := json.NewEncoder(writer).Encode(result); err != nil {
			fatalf("Failed to encode result: %v", err)
		}
	}
}

func newSource(cfg *config.Config) dataset.Source {
	switch strings.ToLower(cfg.DataSource) {
	case "csv":
		return dataset.NewCSVSource(cfg.DataPath)
	case "postgres":
		return dataset.NewPostgresSource(cfg.DSN(), cfg.PostgresTable)
	default:
		return dataset.NewExcelSource(cfg.DataPath)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
