// Package fuzzy provides a bounded token-set similarity ratio between two
// texts, used as a vocabulary-independent lexical fallback signal.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// tokenize splits text into a set of lowercase tokens, treating + # . as
// word characters so tech terms like c++, c# and node.js survive intact.
func tokenize(text string) map[string]bool {
	set := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			set[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return set
}

// TokenSetRatio computes a token-set similarity ratio in [0,1] between two
// texts. Token order and multiplicity are ignored. A subset relation between
// the two token sets scores 1.0; disjoint sets score 0.
//
// The score follows the token_set_ratio decomposition: with s0 the sorted
// intersection string and s1, s2 the intersection joined with each side's
// remainder, the best pairwise ratio reduces to character-length ratios
// because s0 is a common prefix of s1 and s2.
func TokenSetRatio(a, b string) float64 {
	sa, sb := tokenize(a), tokenize(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 0
	}

	var inter, diffA, diffB []string
	for t := range sa {
		if sb[t] {
			inter = append(inter, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for t := range sb {
		if !sa[t] {
			diffB = append(diffB, t)
		}
	}
	sort.Strings(inter)
	sort.Strings(diffA)
	sort.Strings(diffB)

	l0 := joinedLen(inter, nil)
	l1 := joinedLen(inter, diffA)
	l2 := joinedLen(inter, diffB)
	if l0 == 0 {
		return 0
	}

	best := ratio(l0, l1)
	if r := ratio(l0, l2); r > best {
		best = r
	}
	if r := 2 * float64(l0) / float64(l1+l2); r > best {
		best = r
	}
	return best
}

// joinedLen is the rune length of the space-joined concatenation of the two
// sorted token groups.
func joinedLen(head, tail []string) int {
	n := 0
	for _, t := range head {
		n += len([]rune(t)) + 1
	}
	for _, t := range tail {
		n += len([]rune(t)) + 1
	}
	if n > 0 {
		n-- // no trailing separator
	}
	return n
}

func ratio(shorter, longer int) float64 {
	if longer == 0 {
		return 0
	}
	return 2 * float64(shorter) / float64(shorter+longer)
}
