package perf

import (
	"strings"
	"testing"

	"github.com/codewithboateng/qlint/internal/rules"
	"github.com/codewithboateng/qlint/internal/scan"
	"github.com/codewithboateng/qlint/internal/walker"
)

const benchSample = `const results = await client.search({
  index: "orders",
  from: 15000,
  size: 20,
})

db.orders.find({ status: "open" }).sort({ created: -1 })

@PubSubEvent("order.created")
async function onOrderCreated(msg) {
  for (const e of msg.items) {
    topic.publish(e)
  }
}`

func BenchmarkAnalyzeFile_Small(b *testing.B) {
	analyzers, err := rules.DefaultRegistry().Analyzers()
	if err != nil {
		b.Fatalf("analyzers: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fs := scan.AnalyzeFile(analyzers, benchSample, "bench.js", scan.Settings{})
		if len(fs) == 0 {
			b.Fatal("expected findings")
		}
	}
}

func BenchmarkAnalyzeFile_Large(b *testing.B) {
	// ~2000 lines with a rule hit every 50 lines.
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString(benchSample)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("const x = compute()\n", 36))
	}
	content := sb.String()

	analyzers, err := rules.DefaultRegistry().Analyzers()
	if err != nil {
		b.Fatalf("analyzers: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = scan.AnalyzeFile(analyzers, content, "bench.js", scan.Settings{})
	}
}

func BenchmarkScan_WorkerPool(b *testing.B) {
	files := make([]walker.File, 64)
	for i := range files {
		files[i] = walker.File{Path: "bench.js", Content: benchSample}
	}
	reg := rules.DefaultRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := scan.Scan(reg, files, "bench", scan.Settings{Workers: 8}); err != nil {
			b.Fatal(err)
		}
	}
}
