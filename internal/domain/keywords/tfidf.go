package keywords

import "math"

// Space is a TF-IDF vector space fitted over a fixed set of documents.
// Term frequencies are raw counts, IDF is smoothed as ln((1+n)/(1+df))+1 and
// every document vector is L2-normalized, so the cosine of two documents is
// their dot product. A Space is not shared between callers.
type Space struct {
	vocab   []string
	index   map[string]int
	vectors [][]float64
}

// Fit builds a space over tokenized documents. The vocabulary is ordered by
// first occurrence across the documents in order.
func Fit(docs ...[]string) (*Space, error) {
	s := &Space{index: make(map[string]int)}
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := s.index[term]; !ok {
				s.index[term] = len(s.vocab)
				s.vocab = append(s.vocab, term)
			}
		}
	}
	if len(s.vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	df := make([]int, len(s.vocab))
	counts := make([][]float64, len(docs))
	for d, doc := range docs {
		counts[d] = make([]float64, len(s.vocab))
		for _, term := range doc {
			i := s.index[term]
			if counts[d][i] == 0 {
				df[i]++
			}
			counts[d][i]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(s.vocab))
	for i, f := range df {
		idf[i] = math.Log((1+n)/(1+float64(f))) + 1
	}

	s.vectors = make([][]float64, len(docs))
	for d, tf := range counts {
		v := tf
		var norm float64
		for i := range v {
			v[i] *= idf[i]
			norm += v[i] * v[i]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for i := range v {
				v[i] /= norm
			}
		}
		s.vectors[d] = v
	}
	return s, nil
}

// Vocabulary returns the terms of the space in first-occurrence order.
func (s *Space) Vocabulary() []string { return s.vocab }

// Vector returns the weights of document d aligned with Vocabulary.
func (s *Space) Vector(d int) []float64 { return s.vectors[d] }

// Cosine returns the cosine similarity of documents a and b, or 0 when
// either vector is all zero.
func (s *Space) Cosine(a, b int) float64 {
	return Cosine(s.vectors[a], s.vectors[b])
}

// Cosine returns the cosine similarity of two equal-length vectors, or 0 when
// either has zero magnitude.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
