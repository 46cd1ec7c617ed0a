package classifier

import (
	"math"

	"github.com/lexroute/lexroute/pkg/routes"
)

// BayesModel is a multinomial naive bayes classifier over TF-IDF
// features with Lidstone smoothing. A trained model is immutable.
type BayesModel struct {
	Alpha   float64         `json:"alpha"`
	Classes []routes.Domain `json:"classes"`

	// ClassLogPrior holds log P(class) per class.
	ClassLogPrior []float64 `json:"class_log_prior"`

	// FeatureLogProb holds log P(term|class) per class, dense over the
	// vocabulary.
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// NewBayesModel creates an untrained model with the given smoothing
// constant.
func NewBayesModel(alpha float64) *BayesModel {
	if alpha <= 0 {
		alpha = 0.1
	}
	return &BayesModel{Alpha: alpha}
}

// Train fits the model on vectors with class-index labels. nFeatures is
// the vocabulary size of the vectorizer that produced the vectors.
func (m *BayesModel) Train(vectors []Vector, labels []int, classes []routes.Domain, nFeatures int) {
	m.Classes = classes
	nClasses := len(classes)

	classCounts := make([]float64, nClasses)
	featureCounts := make([][]float64, nClasses)
	featureTotals := make([]float64, nClasses)
	for c := 0; c < nClasses; c++ {
		featureCounts[c] = make([]float64, nFeatures)
	}

	for i, vec := range vectors {
		c := labels[i]
		classCounts[c]++
		for idx, w := range vec {
			featureCounts[c][idx] += w
			featureTotals[c] += w
		}
	}

	total := float64(len(vectors))
	m.ClassLogPrior = make([]float64, nClasses)
	m.FeatureLogProb = make([][]float64, nClasses)
	for c := 0; c < nClasses; c++ {
		// Unseen classes get the smoothing pseudo-count only.
		count := classCounts[c]
		if count == 0 {
			count = m.Alpha
		}
		m.ClassLogPrior[c] = math.Log(count / math.Max(total, 1))

		denom := featureTotals[c] + m.Alpha*float64(nFeatures)
		m.FeatureLogProb[c] = make([]float64, nFeatures)
		for f := 0; f < nFeatures; f++ {
			m.FeatureLogProb[c][f] = math.Log((featureCounts[c][f] + m.Alpha) / denom)
		}
	}
}

// Posterior returns P(class|vector) per domain, normalized to sum to 1
// over the model's classes.
func (m *BayesModel) Posterior(vec Vector) map[routes.Domain]float64 {
	scores := make(map[routes.Domain]float64, len(m.Classes))
	if len(m.Classes) == 0 {
		return scores
	}

	logJoint := make([]float64, len(m.Classes))
	maxLog := math.Inf(-1)
	for c := range m.Classes {
		ll := m.ClassLogPrior[c]
		for idx, w := range vec {
			if idx < len(m.FeatureLogProb[c]) {
				ll += w * m.FeatureLogProb[c][idx]
			}
		}
		logJoint[c] = ll
		if ll > maxLog {
			maxLog = ll
		}
	}

	// Log-sum-exp normalization.
	var sum float64
	for c := range m.Classes {
		logJoint[c] = math.Exp(logJoint[c] - maxLog)
		sum += logJoint[c]
	}
	for c, domain := range m.Classes {
		scores[domain] = logJoint[c] / sum
	}
	return scores
}
