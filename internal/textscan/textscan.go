package textscan

import "strings"

// Lines splits content into its lines. Line numbers reported to callers are
// 1-based; indices into the returned slice are 0-based.
func Lines(content string) []string {
	return strings.Split(content, "\n")
}

// Window returns the joined text of lines[center-before : center+after],
// clamped to the slice bounds. It never panics on edge indices.
func Window(lines []string, center, before, after int) string {
	if len(lines) == 0 {
		return ""
	}
	lo := center - before
	if lo < 0 {
		lo = 0
	}
	hi := center + after
	if hi > len(lines) {
		hi = len(lines)
	}
	if lo >= hi {
		return ""
	}
	return strings.Join(lines[lo:hi], "\n")
}

// Block approximates the function/handler body starting at line index start
// by counting literal braces. Accumulation stops at the end of the line on
// which the running depth returns to <=0 after having gone positive, or
// after maxLines lines. It returns the joined block text and the 0-based
// index of its last line.
//
// This is a heuristic, not a parser: braces inside string or template
// literals and comments are counted like any other, so such inputs can
// mis-scope the block.
func Block(lines []string, start, maxLines int) (string, int) {
	if start < 0 || start >= len(lines) {
		return "", start
	}
	if maxLines <= 0 {
		maxLines = 1
	}
	depth := 0
	opened := false
	end := start
	for i := start; i < len(lines) && i < start+maxLines; i++ {
		end = i
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			break
		}
	}
	return strings.Join(lines[start:end+1], "\n"), end
}
