package scan

import (
	"reflect"
	"strings"
	"testing"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/rules"
	"github.com/codewithboateng/qlint/internal/walker"
)

const mixedSample = `db.users.find({ $where: "f()" }).limit(1)
const r = await client.search({ from: 20000, timeout: "1s" })`

func defaultAnalyzers(t *testing.T) []*engine.Analyzer {
	t.Helper()
	as, err := rules.DefaultRegistry().Analyzers()
	if err != nil {
		t.Fatalf("Analyzers: %v", err)
	}
	return as
}

func TestAnalyzeFile_SortsByLineAcrossDomains(t *testing.T) {
	got := AnalyzeFile(defaultAnalyzers(t), mixedSample, "mixed.js", Settings{})
	if len(got) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(got), got)
	}
	// MONGO004 is on line 1, ES002 on line 2; line order wins even though
	// the elastic domain runs first.
	if got[0].RuleID != "MONGO004" || got[0].LineStart != 1 {
		t.Fatalf("expected MONGO004 on line 1 first, got %+v", got[0])
	}
	if got[1].RuleID != "ES002" || got[1].LineStart != 2 {
		t.Fatalf("expected ES002 on line 2 second, got %+v", got[1])
	}
}

func TestAnalyzeFile_SeverityThreshold(t *testing.T) {
	got := AnalyzeFile(defaultAnalyzers(t), mixedSample, "mixed.js", Settings{
		SeverityThreshold: finding.SeverityCritical,
	})
	if len(got) != 1 || got[0].RuleID != "MONGO004" {
		t.Fatalf("critical threshold should keep only MONGO004, got %v", got)
	}
}

func TestAnalyzeFile_DisabledRulesCaseInsensitive(t *testing.T) {
	got := AnalyzeFile(defaultAnalyzers(t), mixedSample, "mixed.js", Settings{
		DisabledRules: []string{"mongo004"},
	})
	if len(got) != 1 || got[0].RuleID != "ES002" {
		t.Fatalf("disabling mongo004 should leave only ES002, got %v", got)
	}
}

func TestScan_AssemblesRunInFileOrder(t *testing.T) {
	files := []walker.File{
		{Path: "a.js", Content: `db.sessions.deleteMany({})`},
		{Path: "b.js", Content: `emitter.publish(x)`},
	}
	run, err := Scan(rules.DefaultRegistry(), files, "samples/shop", Settings{Workers: 4})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if run.Source != "samples/shop" || run.EngineVersion != Version {
		t.Fatalf("unexpected run header: %+v", run)
	}
	if len(run.Files) != 2 || run.Files[0].Path != "a.js" || run.Files[1].Path != "b.js" {
		t.Fatalf("expected per-file rows in input order, got %v", run.Files)
	}
	if run.Files[0].Findings != 1 {
		t.Fatalf("expected 1 finding in a.js, got %d", run.Files[0].Findings)
	}
	if len(run.Findings) == 0 || run.Findings[0].RuleID != "MONGO006" {
		t.Fatalf("expected a.js findings first, got %v", run.Findings)
	}
	for _, f := range run.Findings {
		if f.Key == "" || !strings.HasPrefix(f.Key, f.RuleID+"-") {
			t.Fatalf("finding key should be rule-prefixed, got %q", f.Key)
		}
	}
}

func TestScan_KeysAreUnique(t *testing.T) {
	// Identical content in two files and repeated lines within one.
	content := `emitter.publish(x)
emitter.publish(x)`
	files := []walker.File{
		{Path: "a.js", Content: content},
		{Path: "b.js", Content: content},
	}
	run, err := Scan(rules.DefaultRegistry(), files, "dup", Settings{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	seen := map[string]bool{}
	for _, f := range run.Findings {
		if seen[f.Key] {
			t.Fatalf("duplicate key %q in %v", f.Key, run.Findings)
		}
		seen[f.Key] = true
	}
}

func TestScan_DeterministicAcrossWorkerCounts(t *testing.T) {
	files := []walker.File{
		{Path: "a.js", Content: mixedSample},
		{Path: "b.js", Content: `emitter.publish(x)`},
		{Path: "c.js", Content: `const q = { "query": { "match_all": {} } }`},
		{Path: "d.js", Content: `db.orders.find({}).skip(40000).limit(20)`},
	}
	reg := rules.DefaultRegistry()

	base, err := Scan(reg, files, "sweep", Settings{Workers: 1})
	if err != nil {
		t.Fatalf("Scan workers=1: %v", err)
	}
	for _, workers := range []int{2, 4, 16} {
		run, err := Scan(reg, files, "sweep", Settings{Workers: workers})
		if err != nil {
			t.Fatalf("Scan workers=%d: %v", workers, err)
		}
		// IDs and timestamps are volatile; findings and per-file rows are not.
		if !reflect.DeepEqual(base.Findings, run.Findings) || !reflect.DeepEqual(base.Files, run.Files) {
			t.Fatalf("workers=%d changed the output:\nbase: %v\ngot:  %v", workers, base.Findings, run.Findings)
		}
	}
}
