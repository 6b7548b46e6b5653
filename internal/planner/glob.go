package planner

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher tests repository-relative file paths against one configured
// pattern.
//
// A pattern without a slash matches the file name at any depth. A pattern
// with a slash is anchored at the repository root and must match the whole
// path, one segment at a time, where "**" spans zero or more directories.
// A directory matching the pattern does not select the files below it.
// Brace alternatives such as "*.{js,ts}" are expanded before compilation.
type Matcher struct {
	pattern      string
	alternatives []alternative
}

type alternative struct {
	basename bool
	// segments holds one compiled name pattern per path segment; nil marks "**".
	segments []gitignore.Pattern
}

// NewMatcher compiles pattern.
func NewMatcher(pattern string) *Matcher {
	expanded := expandBraces(strings.TrimSpace(pattern))
	m := &Matcher{pattern: pattern, alternatives: make([]alternative, 0, len(expanded))}
	for _, alt := range expanded {
		m.alternatives = append(m.alternatives, compileAlternative(alt))
	}
	return m
}

func compileAlternative(pattern string) alternative {
	if !strings.Contains(pattern, "/") {
		return alternative{basename: true, segments: []gitignore.Pattern{gitignore.ParsePattern(pattern, nil)}}
	}

	parts := strings.Split(strings.TrimPrefix(pattern, "/"), "/")
	segments := make([]gitignore.Pattern, 0, len(parts))
	for _, part := range parts {
		if part == "**" {
			segments = append(segments, nil)
			continue
		}
		segments = append(segments, gitignore.ParsePattern(part, nil))
	}
	return alternative{segments: segments}
}

// Pattern returns the pattern the matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether the "/"-separated file path matches.
func (m *Matcher) Match(path string) bool {
	path = strings.Trim(path, "/")
	if path == "" {
		return false
	}
	parts := strings.Split(path, "/")

	for _, alt := range m.alternatives {
		if alt.basename {
			if matchSegment(alt.segments[0], parts[len(parts)-1]) {
				return true
			}
			continue
		}
		if matchSegments(alt.segments, parts) {
			return true
		}
	}
	return false
}

// matchSegments reports whether segments consume every element of parts.
func matchSegments(segments []gitignore.Pattern, parts []string) bool {
	if len(segments) == 0 {
		return len(parts) == 0
	}
	if segments[0] == nil {
		if len(segments) == 1 {
			return len(parts) > 0
		}
		if matchSegments(segments[1:], parts) {
			return true
		}
		return len(parts) > 0 && matchSegments(segments, parts[1:])
	}
	if len(parts) == 0 || !matchSegment(segments[0], parts[0]) {
		return false
	}
	return matchSegments(segments[1:], parts[1:])
}

func matchSegment(p gitignore.Pattern, name string) bool {
	return p.Match([]string{name}, false) != gitignore.NoMatch
}

// expandBraces expands the first top-level "{a,b}" group in pattern,
// recursively, so "src/*.{js,ts}" yields "src/*.js" and "src/*.ts".
// Unbalanced braces and groups without a comma are kept literally.
func expandBraces(pattern string) []string {
	open, closing, ok := findBraceGroup(pattern)
	if !ok {
		return []string{pattern}
	}

	prefix, body, suffix := pattern[:open], pattern[open+1:closing], pattern[closing+1:]
	var expanded []string
	for _, alt := range splitTopLevel(body) {
		for _, rest := range expandBraces(alt + suffix) {
			expanded = append(expanded, prefix+rest)
		}
	}
	return expanded
}

// findBraceGroup locates the first balanced brace group containing a
// top-level comma.
func findBraceGroup(pattern string) (int, int, bool) {
	for start := 0; start < len(pattern); start++ {
		if pattern[start] != '{' || isEscaped(pattern, start) {
			continue
		}
		depth := 0
		hasComma := false
		for i := start; i < len(pattern); i++ {
			if isEscaped(pattern, i) {
				continue
			}
			switch pattern[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					if hasComma {
						return start, i, true
					}
					i = len(pattern)
				}
			case ',':
				if depth == 1 {
					hasComma = true
				}
			}
		}
	}
	return 0, 0, false
}

// splitTopLevel splits body on commas outside nested braces.
func splitTopLevel(body string) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(body); i++ {
		if isEscaped(body, i) {
			continue
		}
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, body[last:])
}

func isEscaped(s string, i int) bool {
	backslashes := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		backslashes++
	}
	return backslashes%2 == 1
}
