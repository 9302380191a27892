package engine

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/codewithboateng/qlint/internal/finding"
)

// substringRule emits one finding per line containing token.
func substringRule(id, token string, sev finding.Severity) Rule {
	return Rule{
		ID:       id,
		Summary:  "lines containing " + token,
		Severity: sev,
		Check: func(content, path string, lines []string) []finding.Finding {
			var out []finding.Finding
			for i, line := range lines {
				if !strings.Contains(line, token) {
					continue
				}
				out = append(out, finding.Finding{
					RuleID:      id,
					Severity:    sev,
					Message:     "found " + token,
					FilePath:    path,
					LineStart:   i + 1,
					CodeSnippet: strings.TrimSpace(line),
				})
			}
			return out
		},
	}
}

func testDomain() Domain {
	return Domain{
		Tag:        "toy",
		Indicators: []string{"alpha", "beta"},
		Rules: []Rule{
			substringRule("TOY001", "alpha", finding.SeverityMedium),
			substringRule("TOY002", "beta", finding.SeverityHigh),
		},
	}
}

func TestNewAnalyzer_Validation(t *testing.T) {
	if _, err := NewAnalyzer(Domain{Tag: "  "}); err == nil {
		t.Fatalf("expected error for blank tag")
	}
	if _, err := NewAnalyzer(Domain{Tag: "d", Rules: []Rule{{ID: "", Check: func(string, string, []string) []finding.Finding { return nil }}}}); err == nil {
		t.Fatalf("expected error for rule without ID")
	}
	if _, err := NewAnalyzer(Domain{Tag: "d", Rules: []Rule{{ID: "R1"}}}); err == nil {
		t.Fatalf("expected error for rule without Check")
	}

	dup := testDomain()
	dup.Rules = append(dup.Rules, substringRule("TOY001", "gamma", finding.SeverityLow))
	if _, err := NewAnalyzer(dup); err == nil {
		t.Fatalf("expected error for duplicate rule IDs")
	}
}

func TestAnalyzer_GateRejectsUnrelatedContent(t *testing.T) {
	a, err := NewAnalyzer(testDomain())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	if a.Applicable("SELECT * FROM users") {
		t.Fatalf("content without indicators should not be applicable")
	}
	if got := a.Analyze("SELECT * FROM users", "q.sql"); got != nil {
		t.Fatalf("expected nil findings for inapplicable content, got %v", got)
	}
}

func TestAnalyzer_DeclarationOrder(t *testing.T) {
	a, err := NewAnalyzer(testDomain())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	// beta appears before alpha in the content; emission still follows
	// rule order, not line order.
	got := a.Analyze("beta here\nalpha there", "f.txt")
	if len(got) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(got), got)
	}
	if got[0].RuleID != "TOY001" || got[1].RuleID != "TOY002" {
		t.Fatalf("expected rule-declaration order [TOY001 TOY002], got [%s %s]", got[0].RuleID, got[1].RuleID)
	}
	if got[0].LineStart != 2 || got[1].LineStart != 1 {
		t.Fatalf("unexpected line numbers: %v", got)
	}
}

func TestAnalyzer_Idempotent(t *testing.T) {
	a, err := NewAnalyzer(testDomain())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	content := "alpha\nbeta\nalpha beta"
	first := a.Analyze(content, "f.txt")
	second := a.Analyze(content, "f.txt")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated analysis diverged:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestAnalyzer_ConcurrentCallsAreIsolated(t *testing.T) {
	a, err := NewAnalyzer(testDomain())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	content := "alpha\nbeta\nalpha beta"
	baseline := a.Analyze(content, "f.txt")

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				if got := a.Analyze(content, "f.txt"); !reflect.DeepEqual(got, baseline) {
					errs <- "concurrent result diverged from baseline"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	if msg, ok := <-errs; ok {
		t.Fatal(msg)
	}
}

func TestRegistry_RegisterAndOrder(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("b", testDomain); err != nil {
		t.Fatalf("register b: %v", err)
	}
	if err := r.Register("a", testDomain); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if err := r.Register("a", testDomain); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if got := r.Tags(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("expected registration order [b a], got %v", got)
	}
	if _, err := r.Analyzer("missing"); err == nil {
		t.Fatalf("expected unknown-domain error")
	}
}

func TestRegistry_BuildsOnce(t *testing.T) {
	builds := 0
	r := NewRegistry()
	if err := r.Register("toy", func() Domain {
		builds++
		return testDomain()
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Analyzer("toy"); err != nil {
				t.Errorf("analyzer: %v", err)
			}
		}()
	}
	wg.Wait()

	if builds != 1 {
		t.Fatalf("expected exactly one domain build, got %d", builds)
	}

	// A broken domain reports the same construction error every time.
	if err := r.Register("bad", func() Domain { return Domain{Tag: ""} }); err != nil {
		t.Fatalf("register bad: %v", err)
	}
	if _, err := r.Analyzer("bad"); err == nil {
		t.Fatalf("expected construction error")
	}
	if _, err := r.Analyzer("bad"); err == nil {
		t.Fatalf("construction error should persist on retry")
	}
}

func TestRegistry_AnalyzersInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("z", func() Domain { d := testDomain(); d.Tag = "z"; return d })
	_ = r.Register("m", func() Domain { d := testDomain(); d.Tag = "m"; return d })

	as, err := r.Analyzers()
	if err != nil {
		t.Fatalf("Analyzers: %v", err)
	}
	if len(as) != 2 || as[0].Tag() != "z" || as[1].Tag() != "m" {
		t.Fatalf("expected analyzers in registration order [z m], got %v", []string{as[0].Tag(), as[1].Tag()})
	}
}
