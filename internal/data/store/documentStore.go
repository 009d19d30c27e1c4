package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doclane/ragapi/internal/config"
	"github.com/doclane/ragapi/internal/data/redisStore"
	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/rag/vectorDB"
	"github.com/doclane/ragapi/pkg/logger_i"
)

const (
	docKeyPrefix    = "doc:"
	markerKeyPrefix = "doc-replacing:"
)

// DocumentStorage is the composite vectorDB.Storage implementation: chunk
// rows and vectors live in the chunk store, per-document metadata in redis.
//
// There is no cross-store transaction, so the replace follows a write-ahead
// marker protocol: the marker is set before the chunk rows are touched and
// cleared only after the metadata row is written. While the marker exists the
// stored hash is reported as absent, which voids the short-circuit and forces
// a clean re-ingest after a crash mid-replace - a reader can never act on a
// hash whose chunks may be torn.
type DocumentStorage struct {
	meta   *redisStore.Store
	chunks vectorDB.ChunkStore
	logger *logger_i.Logger
}

func NewDocumentStorage(meta *redisStore.Store, chunks vectorDB.ChunkStore) *DocumentStorage {
	return &DocumentStorage{
		meta:   meta,
		chunks: chunks,
		logger: logger_i.NewLogger("DocumentStorage"),
	}
}

func (s *DocumentStorage) GetDocumentHash(ctx context.Context, key string) (string, bool, error) {
	replacing, err := s.meta.Exists(ctx, markerKeyPrefix+key)
	if err != nil {
		return "", false, fmt.Errorf("%w: marker lookup for %s: %v", docModel.ErrStorage, key, err)
	}
	if replacing {
		s.logger.Warn("Incomplete replace detected, voiding stored hash", "key", key)
		return "", false, nil
	}

	val, err := s.meta.Get(ctx, docKeyPrefix+key)
	if s.meta.IsNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: document lookup for %s: %v", docModel.ErrStorage, key, err)
	}

	var doc docModel.Document
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return "", false, fmt.Errorf("%w: corrupt document row for %s: %v", docModel.ErrStorage, key, err)
	}
	return doc.ContentHash, true, nil
}

func (s *DocumentStorage) ReplaceChunks(ctx context.Context, key string, chunks []docModel.DocChunk) error {
	if err := s.meta.Set(ctx, markerKeyPrefix+key, "1", config.RedisDocumentStoreTTL); err != nil {
		return fmt.Errorf("%w: setting replace marker for %s: %v", docModel.ErrStorage, key, err)
	}
	return s.chunks.ReplaceChunks(ctx, key, chunks)
}

func (s *DocumentStorage) UpsertDocument(ctx context.Context, doc docModel.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: marshalling document row %s: %v", docModel.ErrStorage, doc.Name, err)
	}
	if err := s.meta.Set(ctx, docKeyPrefix+doc.Name, data, config.RedisDocumentStoreTTL); err != nil {
		return fmt.Errorf("%w: writing document row %s: %v", docModel.ErrStorage, doc.Name, err)
	}

	// chunks and metadata are both durable - the replace is complete
	if err := s.meta.Del(ctx, markerKeyPrefix+doc.Name); err != nil {
		return fmt.Errorf("%w: clearing replace marker for %s: %v", docModel.ErrStorage, doc.Name, err)
	}
	return nil
}

func (s *DocumentStorage) NearestNeighbors(ctx context.Context, vector []float32, k int) ([]vectorDB.NeighborRow, error) {
	return s.chunks.NearestNeighbors(ctx, vector, k)
}

// GetDocument returns the full metadata row, mainly for tests and debugging.
func (s *DocumentStorage) GetDocument(ctx context.Context, key string) (docModel.Document, bool, error) {
	val, err := s.meta.Get(ctx, docKeyPrefix+key)
	if s.meta.IsNil(err) {
		return docModel.Document{}, false, nil
	}
	if err != nil {
		return docModel.Document{}, false, fmt.Errorf("%w: document lookup for %s: %v", docModel.ErrStorage, key, err)
	}
	var doc docModel.Document
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return docModel.Document{}, false, fmt.Errorf("%w: corrupt document row for %s: %v", docModel.ErrStorage, key, err)
	}
	return doc, true, nil
}

var _ vectorDB.Storage = (*DocumentStorage)(nil)

// NewDocumentRow stamps the metadata row for a finished ingestion.
func NewDocumentRow(key string, hash string, chunkCount int) docModel.Document {
	return docModel.Document{
		Name:        key,
		ContentHash: hash,
		ChunkCount:  chunkCount,
		IngestedAt:  time.Now().UTC(),
	}
}
