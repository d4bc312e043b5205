// Package pathfilter builds path predicates from declarative rule sets.
package pathfilter

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scanwalk/dirscan/internal/types"
)

// Rules is a compiled path predicate. A path is allowed when it matches
// no ignore pattern and, if an extension allowlist is present, carries
// one of the allowed extensions. Rules satisfies the shape of
// walker.Filter through IsAllowed.
type Rules struct {
	patterns   []pattern
	extensions []string
}

type pattern struct {
	re *regexp.Regexp
	// Patterns without a slash match the last path element only,
	// gitignore style; patterns with a slash match the whole path.
	baseOnly bool
}

// Files compiles the file rules of rs: the ignore patterns plus the
// extension allowlist. An empty rule set allows every file.
func Files(rs types.RuleSet) *Rules {
	r := &Rules{patterns: compile(rs.IgnorePatterns)}
	for _, ext := range rs.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.extensions = append(r.extensions, strings.ToLower(ext))
	}
	return r
}

// Dirs compiles the directory rules of rs: the skip patterns. An empty
// rule set allows every directory.
func Dirs(rs types.RuleSet) *Rules {
	return &Rules{patterns: compile(rs.SkipDirs)}
}

// Empty reports whether r has no rules at all, so it would allow any
// path. Callers can pass nil to the walker instead of an empty Rules to
// avoid a no-op filtering pass.
func (r *Rules) Empty() bool {
	return len(r.patterns) == 0 && len(r.extensions) == 0
}

// IsAllowed checks path against the compiled rules.
func (r *Rules) IsAllowed(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	base := normalized
	if idx := strings.LastIndex(normalized, "/"); idx != -1 {
		base = normalized[idx+1:]
	}

	for _, p := range r.patterns {
		target := normalized
		if p.baseOnly {
			target = base
		}
		if p.re.MatchString(target) {
			return false
		}
	}

	if len(r.extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(base))
		found := false
		for _, allowed := range r.extensions {
			if ext == allowed {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// compile translates glob patterns to anchored regexps: ** matches
// anything, * matches within one path element, ? matches one non-slash
// character.
func compile(globs []string) []pattern {
	var patterns []pattern
	for _, glob := range globs {
		normalized := strings.ReplaceAll(glob, "\\", "/")

		regexPattern := regexp.QuoteMeta(normalized)
		regexPattern = strings.ReplaceAll(regexPattern, `\*\*`, ".*")
		regexPattern = strings.ReplaceAll(regexPattern, `\*`, "[^/]*")
		regexPattern = strings.ReplaceAll(regexPattern, `\?`, "[^/]")
		regexPattern = "^" + regexPattern + "$"

		patterns = append(patterns, pattern{
			re:       regexp.MustCompile(regexPattern),
			baseOnly: !strings.Contains(normalized, "/"),
		})
	}
	return patterns
}
