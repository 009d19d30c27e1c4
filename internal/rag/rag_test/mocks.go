package rag_test

import (
	"context"

	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/rag/vectorDB"
)

// MockStorage implements vectorDB.Storage
type MockStorage struct {
	// Control fields to simulate different behaviors
	OnGetDocumentHash  func(ctx context.Context, key string) (string, bool, error)
	OnReplaceChunks    func(ctx context.Context, key string, chunks []docModel.DocChunk) error
	OnUpsertDocument   func(ctx context.Context, doc docModel.Document) error
	OnNearestNeighbors func(ctx context.Context, vector []float32, k int) ([]vectorDB.NeighborRow, error)
}

func (m *MockStorage) GetDocumentHash(ctx context.Context, key string) (string, bool, error) {
	if m.OnGetDocumentHash != nil {
		return m.OnGetDocumentHash(ctx, key)
	}
	return "", false, nil
}

func (m *MockStorage) ReplaceChunks(ctx context.Context, key string, chunks []docModel.DocChunk) error {
	if m.OnReplaceChunks != nil {
		return m.OnReplaceChunks(ctx, key, chunks)
	}
	return nil
}

func (m *MockStorage) UpsertDocument(ctx context.Context, doc docModel.Document) error {
	if m.OnUpsertDocument != nil {
		return m.OnUpsertDocument(ctx, doc)
	}
	return nil
}

func (m *MockStorage) NearestNeighbors(ctx context.Context, vector []float32, k int) ([]vectorDB.NeighborRow, error) {
	if m.OnNearestNeighbors != nil {
		return m.OnNearestNeighbors(ctx, vector, k)
	}
	return []vectorDB.NeighborRow{
		{Text: "default context", SourceKey: "default.txt", ChunkIndex: 0, Distance: 0.1},
	}, nil
}

type MockEmbedder struct {
	OnGetEmbedding func(ctx context.Context, text string) ([]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, question string, results []docModel.RetrievalResult) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, question string, results []docModel.RetrievalResult) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, question, results)
	}
	return "mocked llm response", nil
}

// MockFetcher implements blobstore.Fetcher
type MockFetcher struct {
	OnGetObject func(ctx context.Context, bucket string, key string) ([]byte, error)
}

func (m *MockFetcher) GetObject(ctx context.Context, bucket string, key string) ([]byte, error) {
	if m.OnGetObject != nil {
		return m.OnGetObject(ctx, bucket, key)
	}
	return []byte("default object body"), nil
}
