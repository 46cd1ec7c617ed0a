package classifier

import "errors"

var (
	// ErrInvalidInput indicates an empty or whitespace-only query.
	ErrInvalidInput = errors.New("classifier: invalid input")

	// ErrTrainingFailed indicates a retrain was rejected, usually because
	// holdout accuracy regressed below the configured floor.
	ErrTrainingFailed = errors.New("classifier: training failed")

	// ErrNoSnapshot indicates the classifier has no active model snapshot.
	ErrNoSnapshot = errors.New("classifier: no active snapshot")

	// ErrInsufficientExamples indicates the training set is too small to
	// hold out a validation split.
	ErrInsufficientExamples = errors.New("classifier: insufficient training examples")
)
