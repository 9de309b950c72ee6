// Package keywords ranks the salient terms of a text and provides the TF-IDF
// vector space used for similarity.
package keywords

import (
	"errors"
	"sort"
	"strings"

	"github.com/okian/screener/internal/domain/textnorm"
)

// Extract returns up to topN keywords of text, most salient first. Terms are
// weighted by TF-IDF over the stopword-filtered text; ties keep their first
// occurrence order. Text that filters down to nothing falls back to raw word
// frequency over the normalized text.
func Extract(text string, topN int) []string {
	if topN <= 0 {
		return []string{}
	}
	normalized := textnorm.Normalize(text)
	tokens := textnorm.Tokens(textnorm.RemoveStopwords(normalized))

	space, err := Fit(tokens)
	if errors.Is(err, ErrEmptyVocabulary) {
		return byFrequency(strings.Fields(normalized), topN)
	}

	vocab := space.Vocabulary()
	weights := space.Vector(0)
	order := make([]int, len(vocab))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	out := make([]string, len(order))
	for i, idx := range order {
		out[i] = vocab[idx]
	}
	return out
}

func byFrequency(words []string, topN int) []string {
	counts := make(map[string]int, len(words))
	var seen []string
	for _, w := range words {
		if counts[w] == 0 {
			seen = append(seen, w)
		}
		counts[w]++
	}
	sort.SliceStable(seen, func(a, b int) bool {
		return counts[seen[a]] > counts[seen[b]]
	})
	if len(seen) > topN {
		seen = seen[:topN]
	}
	if seen == nil {
		return []string{}
	}
	return seen
}

// Overlap returns |a ∩ b| / |b|, or 0 when b is empty.
func Overlap(a, b []string) float64 {
	if len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, k := range a {
		set[k] = struct{}{}
	}
	var hits int
	for _, k := range b {
		if _, ok := set[k]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(b))
}
