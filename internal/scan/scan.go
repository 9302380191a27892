// Package scan orchestrates analyzers over a set of files and assembles a
// Run. Each file is self-contained work, so files fan out over a bounded
// worker pool while results keep deterministic file order.
package scan

import (
	"fmt"
	"hash/crc32"
	"strings"
	"sync"
	"time"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/walker"
)

type Settings struct {
	SeverityThreshold finding.Severity
	DisabledRules     []string
	Workers           int
}

// AnalyzeFile runs every registered domain over one file's content and
// filters by the settings. Findings are sorted (line_start, rule_id): rule
// emission order is an engine-internal convention, reports want line order.
func AnalyzeFile(analyzers []*engine.Analyzer, content, path string, s Settings) []finding.Finding {
	disabled := disabledSet(s.DisabledRules)
	minRank := s.SeverityThreshold.Rank()

	var out []finding.Finding
	for _, a := range analyzers {
		for _, f := range a.Analyze(content, path) {
			if disabled[strings.ToUpper(f.RuleID)] {
				continue
			}
			if f.Severity.Rank() < minRank {
				continue
			}
			out = append(out, f)
		}
	}
	finding.Sort(out)
	return out
}

// Scan analyzes every file and returns a Run. Worker count is clamped to
// [1, len(files)]; per-file results land in a positional slice so output
// order never depends on scheduling.
func Scan(reg *engine.Registry, files []walker.File, source string, s Settings) (Run, error) {
	analyzers, err := reg.Analyzers()
	if err != nil {
		return Run{}, err
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	results := make([][]finding.Finding, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = AnalyzeFile(analyzers, files[i].Content, files[i].Path, s)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	run := Run{
		ID:            fmt.Sprintf("run-%d", time.Now().Unix()),
		StartedAt:     time.Now().UTC(),
		Source:        source,
		EngineVersion: Version,
		Context: Context{
			SeverityThreshold: s.SeverityThreshold,
			DisabledRules:     s.DisabledRules,
		},
	}
	seen := make(map[string]struct{})
	for i, fr := range files {
		fs := results[i]
		for k := range fs {
			fs[k].Key = uniqueKey(seen, fs[k])
		}
		run.Files = append(run.Files, FileResult{Path: fr.Path, Findings: len(fs)})
		run.Findings = append(run.Findings, fs...)
	}
	return run, nil
}

// uniqueKey derives a stable run-local identity for diffing: rule + location
// hash, with a sequence suffix on collision.
func uniqueKey(seen map[string]struct{}, f finding.Finding) string {
	base := fmt.Sprintf("%s|%s|%d|%s", f.RuleID, f.FilePath, f.LineStart, f.CodeSnippet)
	key := fmt.Sprintf("%s-%08x", f.RuleID, crc32.ChecksumIEEE([]byte(base)))
	for seq := 2; ; seq++ {
		if _, dup := seen[key]; !dup {
			break
		}
		key = fmt.Sprintf("%s-%08x-%d", f.RuleID, crc32.ChecksumIEEE([]byte(base)), seq)
	}
	seen[key] = struct{}{}
	return key
}

func disabledSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	return m
}
