package engine

// Status is a point-in-time view of the engine for health endpoints.
type Status struct {
	Running          bool    `json:"running"`
	ModelVersion     int64   `json:"model_version"`
	ModelAccuracy    float64 `json:"model_accuracy"`
	ModelFingerprint string  `json:"model_fingerprint"`
	PolicyVersion    int64   `json:"policy_version"`
	PendingExamples  int     `json:"pending_examples"`
	Retraining       bool    `json:"retraining"`
}

// Running reports whether Start has been called without a matching Stop.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Status returns the current engine status.
func (e *Engine) Status() Status {
	snap := e.classifier.Snapshot()
	return Status{
		Running:          e.running.Load(),
		ModelVersion:     snap.Version,
		ModelAccuracy:    snap.Accuracy,
		ModelFingerprint: snap.Fingerprint,
		PolicyVersion:    e.policyVersion.Load(),
		PendingExamples:  e.queue.Len(),
		Retraining:       e.retraining.Load(),
	}
}
