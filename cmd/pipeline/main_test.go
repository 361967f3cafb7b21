package main

import (
	"testing"
)

func TestMergeConfig(t *testing.T) {
	file := fileConfig{
		Ticker:   "AMZN",
		Filings:  3,
		Output:   "harvest.csv",
		CacheDir: "/var/cache/filings",
	}
	defaults := fileConfig{
		Filings:  3,
		Output:   "filing_facts.csv",
		CacheDir: ".cache",
	}

	t.Run("Config file fills unset flags", func(t *testing.T) {
		got := mergeConfig(file, defaults, map[string]bool{})
		if got.Ticker != "AMZN" {
			t.Errorf("Ticker = %q, want AMZN", got.Ticker)
		}
		if got.Output != "harvest.csv" {
			t.Errorf("Output = %q, want harvest.csv", got.Output)
		}
		if got.CacheDir != "/var/cache/filings" {
			t.Errorf("CacheDir = %q, want /var/cache/filings", got.CacheDir)
		}
	})

	t.Run("Explicit flags beat the config file", func(t *testing.T) {
		flags := fileConfig{Ticker: "MSFT", Filings: 5, Output: "out.csv", CacheDir: ".cache"}
		set := map[string]bool{"ticker": true, "n": true, "out": true}

		got := mergeConfig(file, flags, set)
		if got.Ticker != "MSFT" {
			t.Errorf("Ticker = %q, want MSFT", got.Ticker)
		}
		if got.Filings != 5 {
			t.Errorf("Filings = %d, want 5", got.Filings)
		}
		if got.Output != "out.csv" {
			t.Errorf("Output = %q, want out.csv", got.Output)
		}
		// -cache not passed: config still wins over the flag default.
		if got.CacheDir != "/var/cache/filings" {
			t.Errorf("CacheDir = %q, want config value", got.CacheDir)
		}
	})

	t.Run("Explicit empty -cache disables caching despite config", func(t *testing.T) {
		flags := defaults
		flags.CacheDir = ""
		got := mergeConfig(file, flags, map[string]bool{"cache": true})
		if got.CacheDir != "" {
			t.Errorf("CacheDir = %q, want empty", got.CacheDir)
		}
	})

	t.Run("Flag defaults survive an empty config", func(t *testing.T) {
		got := mergeConfig(fileConfig{}, defaults, map[string]bool{})
		if got.Filings != 3 || got.Output != "filing_facts.csv" || got.CacheDir != ".cache" {
			t.Errorf("got %+v, want flag defaults", got)
		}
	})
}
