package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/scan"
)

type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffFinding `json:"new"`
	Removed []diffFinding `json:"removed"`
	Changed []diffChanged `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	RemovedCount int `json:"removed"`
	ChangedCount int `json:"changed"`
}

type diffFinding struct {
	RuleID    string           `json:"rule_id"`
	FilePath  string           `json:"file_path"`
	LineStart int              `json:"line_start"`
	Severity  finding.Severity `json:"severity,omitempty"`
	Message   string           `json:"message,omitempty"`
}

type diffChanged struct {
	Key     string      `json:"key"`
	Base    diffFinding `json:"base"`
	Head    diffFinding `json:"head"`
	Changed []string    `json:"fields_changed"`
}

// WriteDiffJSON compares two runs. Findings are keyed by rule, path and
// snippet rather than line number, so unrelated edits shifting code down a
// file do not read as new findings.
func WriteDiffJSON(baseID, headID, outDir string, base, head *scan.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	bm := map[string]finding.Finding{}
	hm := map[string]finding.Finding{}
	for _, f := range base.Findings {
		bm[keyOf(f)] = f
	}
	for _, f := range head.Findings {
		hm[keyOf(f)] = f
	}

	var added []diffFinding
	var removed []diffFinding
	var changed []diffChanged

	for k, hf := range hm {
		bf, ok := bm[k]
		if !ok {
			added = append(added, asDiff(hf))
			continue
		}
		var fields []string
		if bf.Severity != hf.Severity {
			fields = append(fields, "severity")
		}
		if strings.TrimSpace(bf.Message) != strings.TrimSpace(hf.Message) {
			fields = append(fields, "message")
		}
		if bf.LineStart != hf.LineStart {
			fields = append(fields, "line_start")
		}
		if len(fields) > 0 {
			changed = append(changed, diffChanged{
				Key:     k,
				Base:    asDiff(bf),
				Head:    asDiff(hf),
				Changed: fields,
			})
		}
	}
	for k, bf := range bm {
		if _, ok := hm[k]; !ok {
			removed = append(removed, asDiff(bf))
		}
	}

	// stable sort
	sort.Slice(added, func(i, j int) bool { return lessDiff(added[i], added[j]) })
	sort.Slice(removed, func(i, j int) bool { return lessDiff(removed[i], removed[j]) })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			RemovedCount: len(removed),
			ChangedCount: len(changed),
		},
		New:     added,
		Removed: removed,
		Changed: changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func keyOf(f finding.Finding) string {
	sb := strings.Builder{}
	sb.WriteString(strings.ToUpper(f.RuleID))
	sb.WriteByte('|')
	sb.WriteString(f.FilePath)
	sb.WriteByte('|')
	// snippet drives logical identity; line numbers move too easily
	sb.WriteString(strings.TrimSpace(f.CodeSnippet))
	return sb.String()
}

func asDiff(f finding.Finding) diffFinding {
	return diffFinding{
		RuleID:    f.RuleID,
		FilePath:  f.FilePath,
		LineStart: f.LineStart,
		Severity:  f.Severity,
		Message:   f.Message,
	}
}

func lessDiff(a, b diffFinding) bool {
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	if a.FilePath != b.FilePath {
		return a.FilePath < b.FilePath
	}
	return a.LineStart < b.LineStart
}
