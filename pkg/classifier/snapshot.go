package classifier

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/lexroute/lexroute/pkg/routes"
)

// Example is a labeled training example.
type Example struct {
	Text   string        `json:"text"`
	Domain routes.Domain `json:"domain"`
}

// Snapshot is an immutable, versioned bundle of fitted model state. The
// classifier publishes snapshots with an atomic pointer swap; in-flight
// classifications keep using the snapshot they loaded.
type Snapshot struct {
	Version     int64         `json:"version"`
	CreatedAt   time.Time     `json:"created_at"`
	Fingerprint string        `json:"fingerprint"`
	Accuracy    float64       `json:"accuracy"`
	Vectorizer  *Vectorizer   `json:"vectorizer"`
	Model       *BayesModel   `json:"model"`
	Examples    *ExampleIndex `json:"examples"`
}

// Marshal serializes the snapshot for persistence.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot deserializes a persisted snapshot and restores the
// unserialized internals.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model snapshot: %w", err)
	}
	if s.Vectorizer == nil || s.Model == nil || s.Examples == nil {
		return nil, fmt.Errorf("model snapshot missing components")
	}
	s.Vectorizer.restore()
	return &s, nil
}

// fingerprint computes a stable hash over the training set, independent
// of example order.
func fingerprint(examples []Example) string {
	lines := make([]string, len(examples))
	for i, ex := range examples {
		lines[i] = string(ex.Domain) + "\t" + ex.Text
	}
	sort.Strings(lines)

	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
