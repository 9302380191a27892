package mongo

import (
	"testing"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
)

func analyze(t *testing.T, content string) []finding.Finding {
	t.Helper()
	a, err := engine.NewAnalyzer(Domain())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return a.Analyze(content, "repo.js")
}

func TestGate_RejectsUnrelatedContent(t *testing.T) {
	if got := analyze(t, "redis.get(key).then(render)"); got != nil {
		t.Fatalf("expected no findings for non-MongoDB content, got %v", got)
	}
}

func TestMONGO001_UnboundedFind(t *testing.T) {
	fired := `const docs = await db.orders.find({ status: "open" })`
	got := analyze(t, fired)
	if len(got) != 1 || got[0].RuleID != "MONGO001" || got[0].Severity != finding.SeverityMedium {
		t.Fatalf("expected a single MONGO001/medium finding, got %v", got)
	}
	if got[0].LineEnd != 1 {
		t.Fatalf("one-line call should report line_end 1, got %d", got[0].LineEnd)
	}

	bounded := `const docs = await db.orders.find({ status: "open" }).limit(50)`
	if got := analyze(t, bounded); len(got) != 0 {
		t.Fatalf("limit in the call chain should suppress MONGO001, got %v", got)
	}
}

func TestMONGO002_LeadingWildcardRegex(t *testing.T) {
	fired := `db.users.find({ name: { $regex: ".*smith" } }).limit(10)`
	got := analyze(t, fired)
	if len(got) != 1 || got[0].RuleID != "MONGO002" || got[0].Severity != finding.SeverityHigh {
		t.Fatalf("expected a single MONGO002/high finding, got %v", got)
	}

	anchored := `db.users.find({ name: { $regex: "^smith" } }).limit(10)`
	if got := analyze(t, anchored); len(got) != 0 {
		t.Fatalf("prefix-anchored regex should not fire, got %v", got)
	}
}

func TestMONGO003_LargeSkip(t *testing.T) {
	fired := `db.orders.find({}).skip(15000).limit(20)`
	got := analyze(t, fired)
	if len(got) != 1 || got[0].RuleID != "MONGO003" || got[0].Severity != finding.SeverityHigh {
		t.Fatalf("expected a single MONGO003/high finding, got %v", got)
	}
	if v, ok := got[0].Metadata["skip_value"].(int); !ok || v != 15000 {
		t.Fatalf("expected skip_value metadata 15000, got %v", got[0].Metadata)
	}

	shallow := `db.orders.find({}).skip(500).limit(20)`
	if got := analyze(t, shallow); len(got) != 0 {
		t.Fatalf("skip 500 should not fire, got %v", got)
	}
}

func TestMONGO004_WhereClause_FiresRegardlessOfContext(t *testing.T) {
	content := `db.users.find({ $where: "this.credits > this.debits" }).limit(5)`
	got := analyze(t, content)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %v", len(got), got)
	}
	if got[0].RuleID != "MONGO004" || got[0].Severity != finding.SeverityCritical {
		t.Fatalf("$where must always be critical, got %s/%s", got[0].RuleID, got[0].Severity)
	}
}

func TestMONGO005_SortWithoutLimit(t *testing.T) {
	fired := `const c = db.scores.aggregate([{ $match: { game: id } }])
c.sort({ score: -1 })`
	got := analyze(t, fired)
	if len(got) != 1 || got[0].RuleID != "MONGO005" || got[0].LineStart != 2 {
		t.Fatalf("expected a single MONGO005 finding on line 2, got %v", got)
	}

	bounded := `const c = db.scores.aggregate([{ $match: { game: id } }])
c.sort({ score: -1 })
c.limit(25)`
	if got := analyze(t, bounded); len(got) != 0 {
		t.Fatalf("limit near the sort should suppress MONGO005, got %v", got)
	}
}

func TestMONGO006_EmptyFilterWrite(t *testing.T) {
	fired := `await db.sessions.deleteMany({})`
	got := analyze(t, fired)
	if len(got) != 1 || got[0].RuleID != "MONGO006" || got[0].Severity != finding.SeverityCritical {
		t.Fatalf("expected a single MONGO006/critical finding, got %v", got)
	}

	filtered := `await db.sessions.deleteMany({ expired: true })`
	if got := analyze(t, filtered); len(got) != 0 {
		t.Fatalf("explicit filter should not fire, got %v", got)
	}

	update := `await db.users.updateMany({}, { $set: { active: false } })`
	got = analyze(t, update)
	if len(got) != 1 || got[0].RuleID != "MONGO006" {
		t.Fatalf("updateMany({}) should fire too, got %v", got)
	}
}

func TestMONGO007_LookupWithoutBound(t *testing.T) {
	fired := `db.orders.aggregate([
  { $lookup: { localField: "id", foreignField: "oid", as: "items" } },
  { $project: { total: 1 } },
])`
	got := analyze(t, fired)
	if len(got) != 1 || got[0].RuleID != "MONGO007" || got[0].LineStart != 2 {
		t.Fatalf("expected a single MONGO007 finding on line 2, got %v", got)
	}

	bounded := `db.orders.aggregate([
  { $lookup: { localField: "id", foreignField: "oid", as: "items" } },
  { $limit: 100 },
])`
	if got := analyze(t, bounded); len(got) != 0 {
		t.Fatalf("$limit after the lookup should suppress MONGO007, got %v", got)
	}
}
