package golden

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/rules"
	"github.com/codewithboateng/qlint/internal/scan"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected.json"

const sampleShop = `const results = await client.search({
  index: "orders",
  from: 15000,
  size: 20,
  timeout: "2s",
})

db.orders.find({ $where: "this.total > 100" }).limit(10)

for (const e of events) {
  topic.publish(e)
}`

type snapItem struct {
	RuleID    string `json:"rule_id"`
	Severity  string `json:"severity"`
	FilePath  string `json:"file_path"`
	LineStart int    `json:"line_start"`
}

type snapshot struct {
	Source   string     `json:"source"`
	Findings []snapItem `json:"findings"`
}

// normalize keeps only the stable fields; keys and timestamps are volatile.
func normalize(source string, fs []finding.Finding) snapshot {
	out := snapshot{Source: source}
	for _, f := range fs {
		out.Findings = append(out.Findings, snapItem{
			RuleID:    f.RuleID,
			Severity:  string(f.Severity),
			FilePath:  f.FilePath,
			LineStart: f.LineStart,
		})
	}
	return out
}

func TestGolden_ShopSampleSnapshot(t *testing.T) {
	analyzers, err := rules.DefaultRegistry().Analyzers()
	if err != nil {
		t.Fatalf("analyzers: %v", err)
	}
	fs := scan.AnalyzeFile(analyzers, sampleShop, "sample.js", scan.Settings{
		SeverityThreshold: finding.SeverityInfo,
	})

	got, err := json.MarshalIndent(normalize("samples/shop", fs), "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_ShopSampleSnapshot -args -update", goldenFile, err)
	}
	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.json")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -count=1 -args -update", goldenFile, tmp)
	}
}
