// Package index provides a TF-IDF vector space over a document corpus with
// cosine similarity against every indexed document.
package index

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxVocab bounds the fitted vocabulary size. When the corpus produces more
// terms, the most frequent ones are kept (ties broken alphabetically so a
// refit over the same corpus is bit-reproducible).
const maxVocab = 50000

// Index is an immutable TF-IDF vector space fitted over a corpus of
// unigrams and bigrams. It must be refitted whenever the corpus changes;
// fitting is explicit, never automatic.
type Index struct {
	vocab map[string]int
	idf   []float64
	rows  []map[int]float64 // L2-normalized tf-idf rows, one per document
}

// Fit builds the vector space over the corpus. An empty corpus returns nil.
func Fit(corpus []string) *Index {
	if len(corpus) == 0 {
		return nil
	}

	docs := make([]map[string]int, len(corpus))
	df := make(map[string]int)
	total := make(map[string]int)
	for i, text := range corpus {
		counts := termCounts(text)
		docs[i] = counts
		for term, c := range counts {
			df[term]++
			total[term] += c
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocab {
		terms = terms[:maxVocab]
	}

	idx := &Index{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
		rows:  make([]map[int]float64, len(corpus)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		idx.vocab[term] = i
		// Smoothed idf; +1 keeps terms present in every document from
		// vanishing entirely.
		idx.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for i, counts := range docs {
		idx.rows[i] = idx.vectorize(counts)
	}
	return idx
}

// Size returns the number of indexed documents.
func (x *Index) Size() int {
	if x == nil {
		return 0
	}
	return len(x.rows)
}

// Similarity transforms the query into the fitted vector space and returns
// cosine similarity against every indexed document, in corpus order.
// A nil (unfitted) index returns nil.
func (x *Index) Similarity(query string) []float64 {
	if x == nil {
		return nil
	}
	qv := x.vectorize(termCounts(query))
	sims := make([]float64, len(x.rows))
	for i, row := range x.rows {
		// Iterate the smaller map.
		a, b := qv, row
		if len(b) < len(a) {
			a, b = b, a
		}
		var dot float64
		for term, w := range a {
			dot += w * b[term]
		}
		sims[i] = dot
	}
	return sims
}

// vectorize maps term counts into an L2-normalized tf-idf vector over the
// fitted vocabulary. Out-of-vocabulary terms are dropped.
func (x *Index) vectorize(counts map[string]int) map[int]float64 {
	vec := make(map[int]float64, len(counts))
	var norm float64
	for term, c := range counts {
		i, ok := x.vocab[term]
		if !ok {
			continue
		}
		w := float64(c) * x.idf[i]
		vec[i] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// termCounts tokenizes text into lowercase alphanumeric runs of length >= 2
// and counts unigrams plus adjacent-pair bigrams.
func termCounts(text string) map[string]int {
	var tokens []string
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		if len([]rune(w)) >= 2 {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	counts := make(map[string]int, 2*len(tokens))
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}
