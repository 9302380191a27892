// Package rulesdsl loads custom text-rule packs from YAML and compiles them
// into an analyzer domain. Regexes are compiled at load time so a malformed
// pack fails fast, before any file is scanned.
package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/qlint/internal/engine"
	"github.com/codewithboateng/qlint/internal/finding"
	"github.com/codewithboateng/qlint/internal/textscan"
)

type dslPack struct {
	Domain     string    `yaml:"domain"`
	Indicators []string  `yaml:"indicators"`
	Rules      []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID         string `yaml:"id"`
	Summary    string `yaml:"summary"`
	Severity   string `yaml:"severity"` // critical|high|medium|low|info
	Message    string `yaml:"message"`
	Suggestion string `yaml:"suggestion"`

	Match      string `yaml:"match"`        // regex, required
	Absent     string `yaml:"absent"`       // optional companion token; its presence suppresses
	Window     int    `yaml:"window"`       // radius for the absent check, default 5
	MaxPerFile int    `yaml:"max_per_file"` // 0 = unlimited
}

// Load reads one pack and returns its compiled domain.
func Load(path string) (engine.Domain, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return engine.Domain{}, fmt.Errorf("read rules pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return engine.Domain{}, fmt.Errorf("parse yaml: %w", err)
	}
	if strings.TrimSpace(pack.Domain) == "" {
		return engine.Domain{}, fmt.Errorf("pack %s: domain is required", path)
	}
	d := engine.Domain{Tag: pack.Domain, Indicators: pack.Indicators}
	for _, r := range pack.Rules {
		rule, err := compile(r)
		if err != nil {
			return engine.Domain{}, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		d.Rules = append(d.Rules, rule)
	}
	return d, nil
}

// LoadAndRegister loads every pack into reg, returning the rule count.
func LoadAndRegister(reg *engine.Registry, paths []string) (int, error) {
	n := 0
	for _, p := range paths {
		d, err := Load(p)
		if err != nil {
			return n, err
		}
		if err := reg.Register(d.Tag, func() engine.Domain { return d }); err != nil {
			return n, err
		}
		n += len(d.Rules)
	}
	return n, nil
}

func compile(r dslRule) (engine.Rule, error) {
	if r.ID == "" || r.Message == "" || r.Match == "" {
		return engine.Rule{}, fmt.Errorf("missing required fields (id/message/match)")
	}
	re, err := regexp.Compile(r.Match)
	if err != nil {
		return engine.Rule{}, fmt.Errorf("match regex: %w", err)
	}
	sev := finding.ParseSeverity(r.Severity)
	window := r.Window
	if window <= 0 {
		window = 5
	}
	id, summary := r.ID, r.Summary
	absent, maxPerFile := r.Absent, r.MaxPerFile
	msg, sugg := r.Message, r.Suggestion

	check := func(content, path string, lines []string) []finding.Finding {
		var out []finding.Finding
		for i, line := range lines {
			if maxPerFile > 0 && len(out) >= maxPerFile {
				break
			}
			if !re.MatchString(line) {
				continue
			}
			if absent != "" && strings.Contains(textscan.Window(lines, i, window, window), absent) {
				continue
			}
			out = append(out, finding.Finding{
				RuleID:      id,
				Severity:    sev,
				Message:     msg,
				FilePath:    path,
				LineStart:   i + 1,
				CodeSnippet: strings.TrimSpace(line),
				Suggestion:  sugg,
			})
		}
		return out
	}
	return engine.Rule{ID: id, Summary: summary, Severity: sev, Check: check}, nil
}
