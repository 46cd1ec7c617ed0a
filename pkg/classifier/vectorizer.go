// Package classifier maps free-text legal queries to a domain label with
// a confidence score. It combines a naive bayes posterior over TF-IDF
// features with cosine similarity against labeled example vectors; the
// fitted model lives in an immutable snapshot swapped atomically on
// retrain.
package classifier

import (
	"math"
	"strings"
	"unicode"
)

// Vector is a sparse term-weight vector indexed by vocabulary position.
type Vector map[int]float64

// Vectorizer converts text into L2-normalized TF-IDF vectors over a
// vocabulary learned at fit time. A fitted vectorizer is immutable.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`

	stopWords map[string]struct{}
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		Vocabulary: make(map[string]int),
		stopWords:  defaultStopWords(),
	}
}

// Fit learns the vocabulary and inverse document frequencies from the
// given documents.
func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, token := range v.tokenize(doc) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			df[token]++
		}
	}

	v.Vocabulary = make(map[string]int, len(df))
	for term := range df {
		v.Vocabulary[term] = len(v.Vocabulary)
	}

	// Smoothed IDF: log((1+N)/(1+df)) + 1, so terms seen in every
	// document still carry non-zero weight.
	n := float64(len(docs))
	v.IDF = make([]float64, len(v.Vocabulary))
	for term, idx := range v.Vocabulary {
		v.IDF[idx] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform converts text into a sparse, L2-normalized TF-IDF vector.
// Out-of-vocabulary terms are dropped.
func (v *Vectorizer) Transform(text string) Vector {
	counts := make(map[int]float64)
	for _, token := range v.tokenize(text) {
		if idx, ok := v.Vocabulary[token]; ok {
			counts[idx]++
		}
	}

	vec := make(Vector, len(counts))
	var norm float64
	for idx, tf := range counts {
		w := tf * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// Size returns the vocabulary size.
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}

// restore rebuilds unserialized internals after a snapshot load.
func (v *Vectorizer) restore() {
	if v.stopWords == nil {
		v.stopWords = defaultStopWords()
	}
}

// tokenize splits text into lowercase tokens, removing punctuation and
// stop words.
func (v *Vectorizer) tokenize(text string) []string {
	text = strings.ToLower(text)

	tokens := make([]string, 0, len(text)/4)
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		if _, isStop := v.stopWords[token]; !isStop {
			tokens = append(tokens, token)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func defaultStopWords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could",
		"should", "may", "might", "shall", "can", "need", "dare", "ought",
		"used", "to", "of", "in", "for", "on", "with", "at", "by", "from",
		"as", "into", "through", "during", "before", "after", "above", "below",
		"between", "out", "off", "over", "under", "again", "further", "then",
		"once", "and", "but", "or", "nor", "not", "so", "yet", "both",
		"either", "neither", "each", "every", "all", "any", "few", "more",
		"most", "other", "some", "such", "no", "only", "own", "same", "than",
		"too", "very", "just", "because", "if", "when", "where", "how", "what",
		"which", "who", "whom", "this", "that", "these", "those", "i", "me",
		"my", "myself", "we", "our", "ours", "ourselves", "you", "your",
		"yours", "yourself", "yourselves", "he", "him", "his", "himself",
		"she", "her", "hers", "herself", "it", "its", "itself", "they",
		"them", "their", "theirs", "themselves",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
