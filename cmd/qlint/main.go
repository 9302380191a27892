package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codewithboateng/qlint/internal/api"
	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/reporting"
	"github.com/codewithboateng/qlint/internal/rules"
	"github.com/codewithboateng/qlint/internal/rulesdsl"
	"github.com/codewithboateng/qlint/internal/scan"
	"github.com/codewithboateng/qlint/internal/security"
	"github.com/codewithboateng/qlint/internal/shared"
	"github.com/codewithboateng/qlint/internal/storage"
	"github.com/codewithboateng/qlint/internal/walker"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "analyze":
		analyzeCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "seed-user":
		seedUserCmd(os.Args[2:])
	case "version":
		fmt.Println("qlint engine:", scan.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `qlint – query & messaging anti-pattern analyzer

Usage:
  qlint analyze   --path <source-dir> --out <reports-dir> [--db ./qlint.db] [--severity medium] [--config ./configs/qlint.yaml]
  qlint report    --run <run-id>      --out <reports-dir> [--db ./qlint.db] [--config ./configs/qlint.yaml]
  qlint diff      --base <run-id> --head <run-id> --out <reports-dir> [--db ./qlint.db]
  qlint serve     [--addr :8080] [--db ./qlint.db] [--config ./configs/qlint.yaml]
  qlint seed-user --username <name> --password <pw> [--role admin] [--db ./qlint.db]
  qlint version
`)
}

// buildRegistry assembles built-in domains plus any configured DSL packs.
func buildRegistry(cfg shared.Config) (*engine.Registry, error) {
	reg := rules.DefaultRegistry()
	if len(cfg.Rules.Packs) > 0 {
		n, err := rulesdsl.LoadAndRegister(reg, cfg.Rules.Packs)
		if err != nil {
			return nil, err
		}
		slog.Info("loaded custom rule packs", "rules", n, "packs", len(cfg.Rules.Packs))
	}
	return reg, nil
}

func analyzeCmd(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to source directory")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	severity := fs.String("severity", "", "Minimum severity to report (critical|high|medium|low|info)")
	workers := fs.Int("workers", 0, "Concurrent file workers")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *inPath == "" && len(cfg.Analysis.Sources) > 0 {
		*inPath = cfg.Analysis.Sources[0]
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *severity == "" {
		*severity = cfg.Analysis.SeverityThreshold
	}
	if *workers == 0 {
		*workers = cfg.Analysis.Workers
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "analyze: --path (or analysis.sources in config) is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "analyze: cannot create out dir:", err)
		os.Exit(1)
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		slog.Error("rule pack error", "err", err)
		os.Exit(1)
	}

	// Collect
	files, warnings := walker.Collect(walker.Options{
		Roots:        []string{*inPath},
		Extensions:   cfg.Analysis.Extensions,
		MaxFileBytes: int64(cfg.Analysis.MaxFileKB) * 1024,
	})
	if len(warnings) > 0 {
		slog.Warn("walk warnings", "warnings", warnings)
	}
	if len(files) == 0 {
		slog.Warn("no source files found", "path", *inPath)
	}

	// Scan
	run, err := scan.Scan(reg, files, filepath.Clean(*inPath), scan.Settings{
		SeverityThreshold: finding.ParseSeverity(*severity),
		DisabledRules:     cfg.Analysis.DisabledRules,
		Workers:           *workers,
	})
	if err != nil {
		slog.Error("scan error", "err", err)
		os.Exit(1)
	}

	// Persist & report
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	// Active waivers suppress findings before persistence.
	if ws, err := db.ListWaivers(true); err == nil && len(ws) > 0 {
		matchers := make([]scan.Waiver, 0, len(ws))
		for _, w := range ws {
			matchers = append(matchers, scan.Waiver{RuleID: w.RuleID, PathSub: w.PathSub, PatternSub: w.PatternSub})
		}
		kept, waived := scan.ApplyWaivers(run.Findings, matchers)
		run.Findings = kept
		run.Context.WaivedCount = waived
	}

	if err := db.SaveRun(&run); err != nil {
		slog.Error("db save run error", "err", err)
		os.Exit(1)
	}

	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	slog.Info("analyze complete",
		"run", run.ID,
		"files", len(run.Files),
		"findings", len(run.Findings),
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(*dbPath),
	)
	fmt.Printf("Analyze OK\n  Run: %s\n  Files: %d  Findings: %d\n  JSON: %s\n  HTML: %s\n  DB: %s\n",
		run.ID, len(run.Files), len(run.Findings), jsonPath, htmlPath, filepath.Clean(*dbPath))
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("write diff error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Diff OK\n  %s\n", path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		slog.Error("rule pack error", "err", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Registry:        reg,
		Logger:          logger,
		AllowedOrigins:  cfg.API.AllowedOrigins,
		SessionDuration: time.Duration(cfg.API.SessionHours) * time.Hour,
	}
	slog.Info("api listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func seedUserCmd(args []string) {
	fs := flag.NewFlagSet("seed-user", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	role := fs.String("role", "viewer", "Role (viewer|admin)")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "seed-user: --username and --password are required")
		os.Exit(2)
	}
	if r := strings.ToLower(*role); r != "viewer" && r != "admin" {
		fmt.Fprintln(os.Stderr, "seed-user: --role must be viewer or admin")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, strings.ToLower(*role))
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d  Username: %s  Role: %s\n", id, *username, strings.ToLower(*role))
}
