package engine

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

var errEmptyVocabulary = errors.New("tfidf: empty vocabulary")

// tokenize lowercases the text and extracts runs of letters, digits and
// underscores at least two runes long. Single-character tokens are dropped,
// matching the vectorizer the similarity scores were calibrated against.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) >= 2 {
			tokens = append(tokens, string(current))
		}
		current = current[:0]
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current = append(current, r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// tfidfVectors fits a term-frequency/inverse-document-frequency space over the
// documents and returns one l2-normalized vector per document. The idf is
// smoothed: ln((1+n)/(1+df)) + 1. Returns errEmptyVocabulary when no document
// yields a token.
func tfidfVectors(docs []string) ([][]float64, error) {
	vocab := make(map[string]int)
	docTokens := make([][]string, len(docs))
	for i, doc := range docs {
		tokens := tokenize(doc)
		docTokens[i] = tokens
		for _, tok := range tokens {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return nil, errEmptyVocabulary
	}

	df := make([]int, len(vocab))
	for _, tokens := range docTokens {
		seen := make(map[int]bool, len(tokens))
		for _, tok := range tokens {
			seen[vocab[tok]] = true
		}
		for idx := range seen {
			df[idx]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i, tokens := range docTokens {
		vec := make([]float64, len(vocab))
		for _, tok := range tokens {
			vec[vocab[tok]]++
		}
		for j := range vec {
			vec[j] *= idf[j]
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors, nil
}

func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// cosine returns the cosine similarity of two equal-length vectors.
func cosine(a, b []float64) float64 {
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
