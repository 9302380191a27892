// Package walker collects source files for analysis. The engine itself never
// touches the filesystem; everything is read here and handed over as decoded
// text plus a path label.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is one collected source file.
type File struct {
	Path    string
	Content string
}

type Options struct {
	Roots        []string
	Extensions   []string // lowercase, with dot; empty = default set
	MaxFileBytes int64    // files above this are skipped; 0 = default 1 MiB
}

// DefaultExtensions covers the application languages the built-in rules
// target.
var DefaultExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".java", ".kt", ".py", ".rb", ".go", ".cs", ".scala"}

const defaultMaxFileBytes = 1 << 20

// Collect walks every root and returns matching files in walk order.
// Unreadable entries are skipped, not fatal: a repo scan should not abort on
// one bad symlink.
func Collect(opts Options) ([]File, []string) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxFileBytes
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	var files []File
	var warnings []string
	for _, root := range opts.Roots {
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				warnings = append(warnings, "walk "+p+": "+err.Error())
				return nil
			}
			if d.IsDir() {
				if name := d.Name(); name == ".git" || name == "node_modules" || name == "vendor" {
					return fs.SkipDir
				}
				return nil
			}
			if !extSet[strings.ToLower(filepath.Ext(p))] {
				return nil
			}
			if info, err := d.Info(); err != nil || info.Size() > maxBytes {
				if err == nil {
					warnings = append(warnings, "skip "+p+": too large")
				}
				return nil
			}
			b, err := os.ReadFile(p)
			if err != nil {
				warnings = append(warnings, "read "+p+": "+err.Error())
				return nil
			}
			files = append(files, File{Path: p, Content: string(b)})
			return nil
		})
		if err != nil {
			warnings = append(warnings, "walk "+root+": "+err.Error())
		}
	}
	return files, warnings
}
