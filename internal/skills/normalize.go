// Package skills canonicalizes free-form skill tokens and extracts skill
// lists from delimited strings or free text.
package skills

import (
	"regexp"
	"strings"
)

// synonyms folds common skill name variants onto one canonical token.
var synonyms = map[string]string{
	"js":      "javascript",
	"reactjs": "react",
	"node.js": "node",
	"ts":      "typescript",
	"sklearn": "scikit-learn",
	"tf":      "tensorflow",
	"sql":     "sql",
	"pyspark": "spark",
}

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9+#.\- ]+`)
	splitRe      = regexp.MustCompile(`\s*[;,/]|\]|\[|\(|\)\s*`)
)

// Normalize canonicalizes a single skill token: lowercase, trimmed, stripped
// of characters outside [a-z0-9+#.- ], with synonym folding. It is pure and
// total; unparseable input normalizes to a best-effort (possibly empty)
// string. Normalize(Normalize(x)) == Normalize(x) for all x.
func Normalize(token string) string {
	s := strings.ToLower(strings.TrimSpace(token))
	s = invalidChars.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "structured query language", "sql")
	if canonical, ok := synonyms[s]; ok {
		s = canonical
	}
	return s
}

// Parse splits a delimited skill string into normalized tokens, deduplicated
// while preserving first-seen order. Empty input yields an empty list.
func Parse(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := splitRe.Split(raw, -1)
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		s := Normalize(p)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
