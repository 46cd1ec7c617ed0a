package classifier

import (
	"math"
	"testing"
)

func TestVectorizer_FitTransform(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{
		"divorce custody child support",
		"arrest bail criminal defense",
		"divorce proceedings and alimony",
	})

	if v.Size() == 0 {
		t.Fatal("expected non-empty vocabulary")
	}

	vec := v.Transform("divorce custody")
	if len(vec) != 2 {
		t.Fatalf("expected 2 active features, got %d", len(vec))
	}

	// L2 norm must be 1 for non-empty vectors.
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("expected unit norm, got %v", math.Sqrt(norm))
	}
}

func TestVectorizer_Transform_OutOfVocabulary(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"divorce custody"})

	vec := v.Transform("quantum entanglement")
	if len(vec) != 0 {
		t.Errorf("expected empty vector for out-of-vocabulary text, got %v", vec)
	}
}

func TestVectorizer_StopWordsRemoved(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"the divorce is a process"})

	if _, ok := v.Vocabulary["the"]; ok {
		t.Error("expected stop word 'the' to be excluded")
	}
	if _, ok := v.Vocabulary["divorce"]; !ok {
		t.Error("expected 'divorce' in vocabulary")
	}
}

func TestVectorizer_TokenizePunctuation(t *testing.T) {
	v := NewVectorizer()
	tokens := v.tokenize("Landlord won't fix; tenant's rights?")

	for _, tok := range tokens {
		if tok == "won't" || tok == "tenant's" {
			t.Errorf("expected punctuation to split tokens, got %q", tok)
		}
	}
}

func TestVectorizer_IDFWeighting(t *testing.T) {
	v := NewVectorizer()
	// "divorce" appears in every doc, "alimony" in one.
	v.Fit([]string{
		"divorce filing",
		"divorce alimony",
		"divorce custody",
	})

	rare := v.IDF[v.Vocabulary["alimony"]]
	common := v.IDF[v.Vocabulary["divorce"]]
	if rare <= common {
		t.Errorf("expected rare term IDF (%v) > common term IDF (%v)", rare, common)
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := Vector{0: 1, 1: 0}
	b := Vector{0: 1, 1: 0}
	if sim := cosineSimilarity(a, b); math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("identical vectors: expected 1.0, got %v", sim)
	}

	c := Vector{2: 1}
	if sim := cosineSimilarity(a, c); sim != 0 {
		t.Errorf("orthogonal vectors: expected 0, got %v", sim)
	}

	if sim := cosineSimilarity(a, Vector{}); sim != 0 {
		t.Errorf("empty vector: expected 0, got %v", sim)
	}
}
