package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/codewithboateng/qlint/internal/finding"
)

// ListRuns returns a lightweight list of runs with counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.engine_version,
		       (SELECT COUNT(1) FROM findings f WHERE f.run_id = r.id) AS findings
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.EngineVersion, &rr.Findings); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListFindings returns a run's findings at or above a minimum severity,
// ordered worst-first then by location.
func (db *DB) ListFindings(runID string, minSeverity finding.Severity) ([]finding.Finding, error) {
	const q = `
		SELECT key, rule_id, severity, message, file_path, line_start, line_end, code_snippet, suggestion, metadata_json
		  FROM findings
		 WHERE run_id = ?
		   AND (CASE severity WHEN 'critical' THEN 5 WHEN 'high' THEN 4 WHEN 'medium' THEN 3 WHEN 'low' THEN 2 ELSE 1 END)
		       >= (CASE ? WHEN 'critical' THEN 5 WHEN 'high' THEN 4 WHEN 'medium' THEN 3 WHEN 'low' THEN 2 ELSE 1 END)
		 ORDER BY
		       (CASE severity WHEN 'critical' THEN 5 WHEN 'high' THEN 4 WHEN 'medium' THEN 3 WHEN 'low' THEN 2 ELSE 1 END) DESC,
		       file_path, line_start, rule_id, key`
	rows, err := db.conn.Query(q, runID, string(minSeverity))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []finding.Finding
	for rows.Next() {
		var (
			f    finding.Finding
			sev  string
			meta sql.NullString
		)
		if err := rows.Scan(&f.Key, &f.RuleID, &sev, &f.Message, &f.FilePath, &f.LineStart, &f.LineEnd, &f.CodeSnippet, &f.Suggestion, &meta); err != nil {
			return nil, err
		}
		f.Severity = finding.Severity(sev)
		if meta.Valid && meta.String != "" {
			_ = json.Unmarshal([]byte(meta.String), &f.Metadata)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// HasRun reports whether a run exists.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
