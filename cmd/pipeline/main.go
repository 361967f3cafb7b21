package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"filing_harvest/pkg/core/ingest"
	"filing_harvest/pkg/core/pipeline"
	"filing_harvest/pkg/core/prices"
	"filing_harvest/pkg/core/report"
	"filing_harvest/pkg/core/store"
	"filing_harvest/pkg/models"
)

// fileConfig is the optional YAML config; any flag passed on the command
// line overrides its counterpart here.
type fileConfig struct {
	Ticker   string `yaml:"ticker"`
	Filings  int    `yaml:"filings"`
	Output   string `yaml:"output"`
	Report   string `yaml:"report"`
	CacheDir string `yaml:"cache_dir"`
}

// mergeConfig resolves effective settings. Precedence: explicitly-set
// flags, then the config file, then flag defaults. set holds the flag
// names the user actually passed, so -cache "" can disable caching even
// when the config file names a cache_dir.
func mergeConfig(file, flags fileConfig, set map[string]bool) fileConfig {
	out := flags
	if file.Ticker != "" && !set["ticker"] {
		out.Ticker = file.Ticker
	}
	if file.Filings != 0 && !set["n"] {
		out.Filings = file.Filings
	}
	if file.Output != "" && !set["out"] {
		out.Output = file.Output
	}
	if file.Report != "" && !set["report"] {
		out.Report = file.Report
	}
	if file.CacheDir != "" && !set["cache"] {
		out.CacheDir = file.CacheDir
	}
	return out
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	configPath := flag.String("config", "", "Optional YAML config file")
	ticker := flag.String("ticker", "", "Stock ticker, e.g. AMZN")
	filings := flag.Int("n", 3, "Number of recent 10-Q filings to harvest")
	output := flag.String("out", "filing_facts.csv", "CSV output path (overwritten each run)")
	reportPath := flag.String("report", "", "Optional HTML report output path")
	cacheDir := flag.String("cache", ".cache", "Filing HTML cache directory (empty to disable)")
	useDB := flag.Bool("db", false, "Also persist the batch to Postgres (DATABASE_URL)")
	flag.Parse()

	fileCfg := fileConfig{}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("Error reading config %s: %v", *configPath, err)
		}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			log.Fatalf("Error parsing config %s: %v", *configPath, err)
		}
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := mergeConfig(fileCfg, fileConfig{
		Ticker:   *ticker,
		Filings:  *filings,
		Output:   *output,
		Report:   *reportPath,
		CacheDir: *cacheDir,
	}, set)
	if cfg.Ticker == "" {
		log.Fatal("Error: a ticker is required (-ticker or config file).")
	}

	ctx := context.Background()

	client := ingest.NewEDGARClient()
	fetcher := ingest.NewSECDocumentFetcher(cfg.CacheDir)
	priceClient := prices.NewClient()
	sink := store.NewCSVSink(cfg.Output)

	orch := pipeline.NewOrchestrator(client, fetcher, priceClient, sink)
	records, err := orch.Run(ctx, pipeline.Config{Ticker: cfg.Ticker, MaxFilings: cfg.Filings})
	if err != nil {
		log.Fatalf("Harvest failed: %v", err)
	}

	if *useDB {
		if err := store.InitDB(ctx, os.Getenv("DATABASE_URL")); err != nil {
			log.Fatalf("Database init failed: %v", err)
		}
		defer store.Close()
		if err := store.NewFilingRepo().WriteAll(ctx, cfg.Ticker, records); err != nil {
			log.Fatalf("Database write failed: %v", err)
		}
		fmt.Println("Batch persisted to Postgres.")
	}

	if cfg.Report != "" {
		html, err := report.RenderHTML(cfg.Ticker, records)
		if err != nil {
			log.Fatalf("Report rendering failed: %v", err)
		}
		if err := os.WriteFile(cfg.Report, []byte(html), 0644); err != nil {
			log.Fatalf("Report write failed: %v", err)
		}
		fmt.Printf("Report written to %s\n", cfg.Report)
	}

	printSummary(records)
	fmt.Printf("Saved %d records to %s\n", len(records), cfg.Output)
}

// printSummary mirrors the CSV layout on the console.
func printSummary(records []models.FilingRecord) {
	fmt.Printf("\n%-12s | %14s | %10s | %20s | %10s\n",
		"Filing Date", "Net Income", "Pref Div", "Wtd Avg Shares", "Close")
	for _, r := range records {
		fmt.Printf("%-12s | %14s | %10.2f | %20s | %10s\n",
			r.FilingDate,
			fmtOpt(r.Facts.NetIncome),
			r.Facts.PreferredDividends,
			fmtOpt(r.Facts.WeightedAvgShares),
			fmtOpt(r.ClosePrice),
		)
	}
	fmt.Println()
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
