package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./qlint.db"
	} `yaml:"database"`

	Analysis struct {
		Sources           []string `yaml:"sources"`
		Extensions        []string `yaml:"extensions"`         // default: common app languages
		SeverityThreshold string   `yaml:"severity_threshold"` // "info" (default)
		DisabledRules     []string `yaml:"disabled_rules"`
		Workers           int      `yaml:"workers"`     // 4 (default)
		MaxFileKB         int      `yaml:"max_file_kb"` // 1024 (default)
	} `yaml:"analysis"`

	Rules struct {
		Packs []string `yaml:"packs"` // custom YAML rule packs
	} `yaml:"rules"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	API struct {
		Addr           string   `yaml:"addr"` // ":8080"
		AllowedOrigins []string `yaml:"allowed_origins"`
		SessionHours   int      `yaml:"session_hours"` // 12 (default)
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./qlint.db"
	c.Analysis.SeverityThreshold = "info"
	c.Analysis.Workers = 4
	c.Analysis.MaxFileKB = 1024
	c.Reporting.OutDir = "./reports"
	c.API.Addr = ":8080"
	c.API.SessionHours = 12
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("QLINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("QLINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("QLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("QLINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("QLINT_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("QLINT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analysis.Workers = n
		}
	}
	return c, nil
}
