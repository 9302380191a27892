package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Database.Driver != "sqlite" || c.Database.DSN != "./qlint.db" {
		t.Fatalf("unexpected database defaults: %+v", c.Database)
	}
	if c.Analysis.SeverityThreshold != "info" || c.Analysis.Workers != 4 {
		t.Fatalf("unexpected analysis defaults: %+v", c.Analysis)
	}
	if c.API.Addr != ":8080" || c.API.SessionHours != 12 {
		t.Fatalf("unexpected api defaults: %+v", c.API)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "qlint.yaml")
	content := `
database:
  dsn: /var/lib/qlint/scan.db
analysis:
  severity_threshold: high
  disabled_rules: [ES005, PUBSUB005]
rules:
  packs: [packs/sql.yaml]
`
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Database.DSN != "/var/lib/qlint/scan.db" {
		t.Fatalf("dsn not applied: %q", c.Database.DSN)
	}
	if c.Analysis.SeverityThreshold != "high" || len(c.Analysis.DisabledRules) != 2 {
		t.Fatalf("analysis overrides not applied: %+v", c.Analysis)
	}
	if len(c.Rules.Packs) != 1 || c.Rules.Packs[0] != "packs/sql.yaml" {
		t.Fatalf("packs not applied: %v", c.Rules.Packs)
	}
	// Untouched sections keep their defaults.
	if c.API.Addr != ":8080" {
		t.Fatalf("unrelated defaults clobbered: %+v", c.API)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("QLINT_DB_DSN", "/tmp/env.db")
	t.Setenv("QLINT_WORKERS", "9")
	t.Setenv("QLINT_LOG_FORMAT", "text")

	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Database.DSN != "/tmp/env.db" {
		t.Fatalf("env dsn not applied: %q", c.Database.DSN)
	}
	if c.Analysis.Workers != 9 {
		t.Fatalf("env workers not applied: %d", c.Analysis.Workers)
	}
	if c.Logging.Format != "text" {
		t.Fatalf("env log format not applied: %q", c.Logging.Format)
	}

	t.Setenv("QLINT_WORKERS", "not-a-number")
	c, _ = LoadConfig("")
	if c.Analysis.Workers != 4 {
		t.Fatalf("invalid worker count should fall back to the default, got %d", c.Analysis.Workers)
	}
}
