package embedding

import "context"

// Task types passed to providers that distinguish query and document vectors.
const (
	TaskQuery    = "RETRIEVAL_QUERY"
	TaskDocument = "RETRIEVAL_DOCUMENT"
)

// Provider defines the interface for generating text embeddings.
// Implementations must honor the context deadline; embedding is the only
// suspending call in the search path and a hung provider must not hang the
// caller.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
