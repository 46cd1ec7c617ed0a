package classifier

import (
	"math"

	"github.com/lexroute/lexroute/pkg/routes"
)

// ExampleIndex holds labeled example vectors for nearest-neighbor
// similarity scoring. Immutable once built.
type ExampleIndex struct {
	Vectors []Vector        `json:"vectors"`
	Labels  []routes.Domain `json:"labels"`
}

// NewExampleIndex builds an index from parallel vector/label slices.
func NewExampleIndex(vectors []Vector, labels []routes.Domain) *ExampleIndex {
	return &ExampleIndex{Vectors: vectors, Labels: labels}
}

// Similarities returns the mean cosine similarity between the query
// vector and each domain's examples, clamped to be non-negative.
func (idx *ExampleIndex) Similarities(vec Vector) map[routes.Domain]float64 {
	sums := make(map[routes.Domain]float64)
	counts := make(map[routes.Domain]int)

	for i, example := range idx.Vectors {
		domain := idx.Labels[i]
		sums[domain] += cosineSimilarity(vec, example)
		counts[domain]++
	}

	scores := make(map[routes.Domain]float64, len(sums))
	for domain, sum := range sums {
		scores[domain] = math.Max(0, sum/float64(counts[domain]))
	}
	return scores
}

// Len returns the number of indexed examples.
func (idx *ExampleIndex) Len() int {
	return len(idx.Vectors)
}

// cosineSimilarity calculates the cosine similarity between two sparse
// vectors.
func cosineSimilarity(a, b Vector) float64 {
	// Iterate the smaller vector.
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for idx, av := range a {
		if bv, ok := b[idx]; ok {
			dot += av * bv
		}
	}

	var normA, normB float64
	for _, av := range a {
		normA += av * av
	}
	for _, bv := range b {
		normB += bv * bv
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
