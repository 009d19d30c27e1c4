package vectorDB

import (
	"context"

	"github.com/doclane/ragapi/internal/domain/docModel"
)

// NeighborRow is one nearest-neighbor hit as the store reports it, ordered by
// ascending cosine distance.
type NeighborRow struct {
	Text       string
	SourceKey  string
	ChunkIndex int
	Distance   float64
}

// ChunkStore is the vector-capable row store holding chunk text and
// embeddings.
type ChunkStore interface {
	// ReplaceChunks removes every stored chunk for key and inserts the full
	// new set. Writes are waited on so a completed call is durable.
	ReplaceChunks(ctx context.Context, key string, chunks []docModel.DocChunk) error
	NearestNeighbors(ctx context.Context, vector []float32, k int) ([]NeighborRow, error)
}

// Storage is the full surface the pipelines consume: chunk rows plus the
// per-document metadata that drives idempotent re-processing.
type Storage interface {
	ChunkStore

	// GetDocumentHash returns the stored content hash for key; ok is false
	// when the document is unknown or a previous replace never completed.
	GetDocumentHash(ctx context.Context, key string) (hash string, ok bool, err error)
	UpsertDocument(ctx context.Context, doc docModel.Document) error
}
