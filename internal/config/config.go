package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names read at invocation start
const (
	EnvSnapshotPrice    = "SNAPSHOT_PRICE"
	EnvDryRun           = "DRY_RUN"
	EnvRegion           = "AWS_REGION"
	EnvMetricsNamespace = "METRICS_NAMESPACE"
)

// Defaults applied when the corresponding variable is unset
const (
	DefaultSnapshotPrice = 0.05
	DefaultDryRun        = true
)

// Config holds the settings for one audit run
type Config struct {
	// SnapshotPrice is the monthly cost per GB in USD
	SnapshotPrice float64
	// DryRun disables deletion
	DryRun bool
	// Region is empty when the SDK default chain should decide
	Region string
	// MetricsNamespace enables CloudWatch publishing when non-empty
	MetricsNamespace string
}

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Load builds a Config from the given lookup function
func Load(lookup LookupFunc) (Config, error) {
	cfg := Config{
		SnapshotPrice: DefaultSnapshotPrice,
		DryRun:        DefaultDryRun,
	}

	if v, ok := lookup(EnvSnapshotPrice); ok {
		price, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Config{}, fmt.Errorf("error parsing %s %q: %w", EnvSnapshotPrice, v, err)
		}
		cfg.SnapshotPrice = price
	}

	// A set but empty DRY_RUN disables dry-run, only an unset variable keeps the default.
	if v, ok := lookup(EnvDryRun); ok {
		cfg.DryRun = ParseDryRun(v)
	}

	if v, ok := lookup(EnvRegion); ok {
		cfg.Region = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvMetricsNamespace); ok {
		cfg.MetricsNamespace = strings.TrimSpace(v)
	}

	return cfg, nil
}

// FromEnv builds a Config from the process environment
func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// ParseDryRun returns true only for a case-insensitive "true"
func ParseDryRun(v string) bool {
	return strings.ToLower(v) == "true"
}
