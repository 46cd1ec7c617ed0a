package classifier

import "github.com/lexroute/lexroute/pkg/routes"

// ScoringStrategy produces per-domain scores for a query vector against
// a model snapshot. Implementations must be safe for concurrent use.
type ScoringStrategy interface {
	Score(snap *Snapshot, vec Vector) map[routes.Domain]float64
	Name() string
}

// PosteriorStrategy scores with the naive bayes posterior alone.
type PosteriorStrategy struct{}

func (PosteriorStrategy) Score(snap *Snapshot, vec Vector) map[routes.Domain]float64 {
	return snap.Model.Posterior(vec)
}

func (PosteriorStrategy) Name() string { return "posterior" }

// SimilarityStrategy scores with mean cosine similarity to labeled
// examples alone.
type SimilarityStrategy struct{}

func (SimilarityStrategy) Score(snap *Snapshot, vec Vector) map[routes.Domain]float64 {
	return snap.Examples.Similarities(vec)
}

func (SimilarityStrategy) Name() string { return "similarity" }

// BlendedStrategy combines the posterior and similarity scores with a
// weighted sum. Weight is the posterior's share in [0,1].
type BlendedStrategy struct {
	Weight float64
}

func (s BlendedStrategy) Score(snap *Snapshot, vec Vector) map[routes.Domain]float64 {
	w := s.Weight
	if w < 0 {
		w = 0
	} else if w > 1 {
		w = 1
	}

	posterior := snap.Model.Posterior(vec)
	similarity := snap.Examples.Similarities(vec)

	scores := make(map[routes.Domain]float64, len(posterior))
	for domain, p := range posterior {
		scores[domain] = w * p
	}
	for domain, sim := range similarity {
		scores[domain] += (1 - w) * sim
	}
	return scores
}

func (s BlendedStrategy) Name() string { return "blended" }
