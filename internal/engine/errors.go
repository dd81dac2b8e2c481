package engine

import "selectd/pkg/types"

// uninitializedError signals Recommend was called before a successful
// Initialize.
type uninitializedError struct{}

func (uninitializedError) Error() string {
	return "selection engine not initialized: call Initialize first"
}

// ErrUninitialized constructs an uninitializedError.
func ErrUninitialized() error { return uninitializedError{} }

// IsUninitialized reports whether err indicates a missing Initialize.
func IsUninitialized(err error) bool {
	_, ok := err.(uninitializedError)
	return ok
}

// noSuitableModelsError signals that filtering emptied the candidate set.
// Carries the category for diagnostics.
type noSuitableModelsError struct{ category types.Category }

func (e noSuitableModelsError) Error() string {
	return "no suitable models for category: " + string(e.category)
}

// ErrNoSuitableModels constructs a noSuitableModelsError.
func ErrNoSuitableModels(category types.Category) error {
	return noSuitableModelsError{category: category}
}

// IsNoSuitableModels reports whether err indicates an empty candidate set.
func IsNoSuitableModels(err error) bool {
	_, ok := err.(noSuitableModelsError)
	return ok
}
