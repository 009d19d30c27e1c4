package embedding

import "context"

// Embedder turns a text span into a fixed-length vector. Dimensionality and
// distance metric are fixed by configuration - no negotiation happens here.
// Implementations map failures onto docModel.ErrRateLimited or
// docModel.ErrModelUnavailable.
type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}
