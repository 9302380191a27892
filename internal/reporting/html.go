package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"

	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/scan"
)

func WriteHTML(runID, outDir string, run *scan.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Totals by severity and by rule
	bySev := map[finding.Severity]int{}
	byRule := map[string]int{}
	for _, fd := range run.Findings {
		bySev[fd.Severity]++
		byRule[fd.RuleID]++
	}

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>qlint report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Findings: %d</p>", len(run.Files), len(run.Findings))
	fmt.Fprintf(f, "<p><b>By severity</b>: critical=%d &nbsp; high=%d &nbsp; medium=%d &nbsp; low=%d &nbsp; info=%d</p>",
		bySev[finding.SeverityCritical], bySev[finding.SeverityHigh], bySev[finding.SeverityMedium],
		bySev[finding.SeverityLow], bySev[finding.SeverityInfo])

	// Threshold/waiver banner
	fmt.Fprintf(f, "<p class='dim'>Severity threshold: %s", html.EscapeString(string(run.Context.SeverityThreshold)))
	if n := len(run.Context.DisabledRules); n > 0 {
		fmt.Fprintf(f, " &nbsp; Disabled rules: %d", n)
	}
	if run.Context.WaivedCount > 0 {
		fmt.Fprintf(f, " &nbsp; Waived findings: %d", run.Context.WaivedCount)
	}
	fmt.Fprint(f, "</p>")

	// Per-rule counts, worst rules first by volume
	if len(byRule) > 0 {
		type rc struct {
			id string
			n  int
		}
		var rcs []rc
		for id, n := range byRule {
			rcs = append(rcs, rc{id, n})
		}
		sort.Slice(rcs, func(i, j int) bool {
			if rcs[i].n == rcs[j].n {
				return rcs[i].id < rcs[j].id
			}
			return rcs[i].n > rcs[j].n
		})
		fmt.Fprint(f, "<h2>By Rule</h2><table><tr><th>Rule</th><th>Count</th></tr>")
		for _, r := range rcs {
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td></tr>", html.EscapeString(r.id), r.n)
		}
		fmt.Fprint(f, "</table>")
	}

	// All findings, line-ordered per file
	if len(run.Findings) > 0 {
		fds := make([]finding.Finding, len(run.Findings))
		copy(fds, run.Findings)
		sort.SliceStable(fds, func(i, j int) bool {
			if fds[i].FilePath != fds[j].FilePath {
				return fds[i].FilePath < fds[j].FilePath
			}
			if fds[i].LineStart != fds[j].LineStart {
				return fds[i].LineStart < fds[j].LineStart
			}
			return fds[i].RuleID < fds[j].RuleID
		})
		fmt.Fprint(f, "<h2>All Findings</h2><table><tr><th>Severity</th><th>Rule</th><th>Location</th><th>Message</th><th>Suggestion</th></tr>")
		for _, fd := range fds {
			loc := fmt.Sprintf("%s:%d", fd.FilePath, fd.LineStart)
			if fd.LineEnd > 0 {
				loc = fmt.Sprintf("%s:%d-%d", fd.FilePath, fd.LineStart, fd.LineEnd)
			}
			fmt.Fprintf(f, "<tr><td>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(string(fd.Severity)),
				html.EscapeString(fd.RuleID),
				html.EscapeString(loc),
				html.EscapeString(fd.Message),
				html.EscapeString(fd.Suggestion),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Findings</h2><p class='dim'>No findings at or above the configured threshold.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
