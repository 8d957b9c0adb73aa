package config

import "testing"

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(lookupFrom(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SnapshotPrice != DefaultSnapshotPrice {
		t.Fatalf("expected default price %v, got %v", DefaultSnapshotPrice, cfg.SnapshotPrice)
	}
	if !cfg.DryRun {
		t.Fatalf("expected dry-run to default to true")
	}
	if cfg.Region != "" || cfg.MetricsNamespace != "" {
		t.Fatalf("unexpected optional fields: %#v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(lookupFrom(map[string]string{
		EnvSnapshotPrice:    "0.10",
		EnvDryRun:           "False",
		EnvRegion:           " ap-northeast-2 ",
		EnvMetricsNamespace: "SnapSweep",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SnapshotPrice != 0.10 {
		t.Fatalf("expected price 0.10, got %v", cfg.SnapshotPrice)
	}
	if cfg.DryRun {
		t.Fatalf("expected dry-run disabled")
	}
	if cfg.Region != "ap-northeast-2" {
		t.Fatalf("expected trimmed region, got %q", cfg.Region)
	}
	if cfg.MetricsNamespace != "SnapSweep" {
		t.Fatalf("unexpected namespace %q", cfg.MetricsNamespace)
	}
}

func TestLoadDryRunValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "unset", env: nil, want: true},
		{name: "lower", env: map[string]string{EnvDryRun: "true"}, want: true},
		{name: "upper", env: map[string]string{EnvDryRun: "TRUE"}, want: true},
		{name: "false", env: map[string]string{EnvDryRun: "false"}, want: false},
		{name: "empty", env: map[string]string{EnvDryRun: ""}, want: false},
		{name: "yes", env: map[string]string{EnvDryRun: "yes"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(lookupFrom(tt.env))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.DryRun != tt.want {
				t.Fatalf("expected DryRun=%v, got %v", tt.want, cfg.DryRun)
			}
		})
	}
}

func TestLoadInvalidPrice(t *testing.T) {
	if _, err := Load(lookupFrom(map[string]string{EnvSnapshotPrice: "cheap"})); err == nil {
		t.Fatalf("expected error for unparseable price")
	}
	if _, err := Load(lookupFrom(map[string]string{EnvSnapshotPrice: ""})); err == nil {
		t.Fatalf("expected error for empty price")
	}
}
