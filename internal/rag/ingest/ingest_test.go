package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/rag/vectorDB"
)

// --- Mocks ---

type mockStorage struct {
	hashes map[string]string

	replaceCalls int
	upsertCalls  int
	lastChunks   []docModel.DocChunk
	lastDoc      docModel.Document

	onReplace func(key string, chunks []docModel.DocChunk) error
}

func (m *mockStorage) GetDocumentHash(ctx context.Context, key string) (string, bool, error) {
	h, ok := m.hashes[key]
	return h, ok, nil
}

func (m *mockStorage) ReplaceChunks(ctx context.Context, key string, chunks []docModel.DocChunk) error {
	m.replaceCalls++
	if m.onReplace != nil {
		if err := m.onReplace(key, chunks); err != nil {
			return err
		}
	}
	m.lastChunks = chunks
	return nil
}

func (m *mockStorage) UpsertDocument(ctx context.Context, doc docModel.Document) error {
	m.upsertCalls++
	m.lastDoc = doc
	return nil
}

func (m *mockStorage) NearestNeighbors(ctx context.Context, vector []float32, k int) ([]vectorDB.NeighborRow, error) {
	return nil, nil
}

type mockEmbedder struct {
	calls   int
	onEmbed func(text string) ([]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.onEmbed != nil {
		return m.onEmbed(text)
	}
	return []float32{float32(len(text))}, nil
}

func md5hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// --- Tests ---

func TestIngest_Success(t *testing.T) {
	storage := &mockStorage{hashes: map[string]string{}}
	embedder := &mockEmbedder{}
	p := NewPipeline(storage, embedder)

	data := []byte("The quick brown fox jumps over the lazy dog.")
	outcome, err := p.Ingest(context.Background(), "fox.txt", data)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if outcome.Status != docModel.IngestProcessed {
		t.Errorf("Status got %v, want Processed", outcome.Status)
	}
	if outcome.Chunks != 1 || len(storage.lastChunks) != 1 {
		t.Errorf("short text should persist exactly one chunk, got %d", len(storage.lastChunks))
	}
	if storage.lastChunks[0].Text != string(data) {
		t.Errorf("chunk text got %q", storage.lastChunks[0].Text)
	}
	if storage.lastDoc.ContentHash != md5hex(data) {
		t.Errorf("stored hash got %s, want md5 of raw bytes", storage.lastDoc.ContentHash)
	}
	if storage.lastDoc.ChunkCount != 1 {
		t.Errorf("chunk count got %d, want 1", storage.lastDoc.ChunkCount)
	}
}

func TestIngest_ShortCircuit(t *testing.T) {
	data := []byte("unchanged content")
	storage := &mockStorage{hashes: map[string]string{"same.txt": md5hex(data)}}
	embedder := &mockEmbedder{}
	p := NewPipeline(storage, embedder)

	outcome, err := p.Ingest(context.Background(), "same.txt", data)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if outcome.Status != docModel.IngestSkipped {
		t.Errorf("Status got %v, want Skipped", outcome.Status)
	}
	if embedder.calls != 0 {
		t.Errorf("short-circuit must not call the embedder, got %d calls", embedder.calls)
	}
	if storage.replaceCalls != 0 || storage.upsertCalls != 0 {
		t.Errorf("short-circuit must perform zero writes, got replace=%d upsert=%d",
			storage.replaceCalls, storage.upsertCalls)
	}
}

func TestIngest_ChangedContentReplaces(t *testing.T) {
	storage := &mockStorage{hashes: map[string]string{"doc.txt": "old-hash"}}
	embedder := &mockEmbedder{}
	p := NewPipeline(storage, embedder)

	data := []byte("brand new content")
	outcome, err := p.Ingest(context.Background(), "doc.txt", data)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if outcome.Status != docModel.IngestProcessed {
		t.Errorf("Status got %v, want Processed", outcome.Status)
	}
	if storage.replaceCalls != 1 {
		t.Errorf("changed hash must replace chunks, got %d replace calls", storage.replaceCalls)
	}
	if storage.lastDoc.ContentHash != md5hex(data) {
		t.Errorf("metadata hash not updated, got %s", storage.lastDoc.ContentHash)
	}
}

func TestIngest_UnsupportedFormat(t *testing.T) {
	storage := &mockStorage{hashes: map[string]string{}}
	embedder := &mockEmbedder{}
	p := NewPipeline(storage, embedder)

	_, err := p.Ingest(context.Background(), "report.xlsx", []byte("a,b,c"))
	if !errors.Is(err, docModel.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if embedder.calls != 0 {
		t.Errorf("no embedding call may happen for an unsupported format, got %d", embedder.calls)
	}
	if storage.replaceCalls != 0 || storage.upsertCalls != 0 {
		t.Errorf("no storage write may happen for an unsupported format")
	}
}

func TestIngest_EmbeddingFailureLeavesStoreUntouched(t *testing.T) {
	storage := &mockStorage{hashes: map[string]string{}}
	embedder := &mockEmbedder{
		onEmbed: func(text string) ([]float32, error) {
			return nil, docModel.ErrRateLimited
		},
	}
	p := NewPipeline(storage, embedder)

	_, err := p.Ingest(context.Background(), "doc.txt", []byte("some text"))
	if !errors.Is(err, docModel.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if storage.replaceCalls != 0 || storage.upsertCalls != 0 {
		t.Errorf("failed embedding must not write, got replace=%d upsert=%d",
			storage.replaceCalls, storage.upsertCalls)
	}
}

func TestIngest_ReplaceFailureSkipsMetadata(t *testing.T) {
	storage := &mockStorage{
		hashes: map[string]string{},
		onReplace: func(key string, chunks []docModel.DocChunk) error {
			return docModel.ErrStorage
		},
	}
	p := NewPipeline(storage, &mockEmbedder{})

	_, err := p.Ingest(context.Background(), "doc.txt", []byte("some text"))
	if !errors.Is(err, docModel.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if storage.upsertCalls != 0 {
		t.Errorf("metadata must not be written when the chunk replace failed")
	}
}

// Indices must be contiguous from zero and each vector must belong to its own
// chunk's text, even though embedding calls run concurrently.
func TestIngest_IndexContiguityAndVectorOrder(t *testing.T) {
	storage := &mockStorage{hashes: map[string]string{}}
	embedder := &mockEmbedder{
		onEmbed: func(text string) ([]float32, error) {
			return []float32{float32(len(text))}, nil
		},
	}
	p := NewPipeline(storage, embedder)

	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("A sentence that fills the chunk budget with ordinary words. ")
	}

	outcome, err := p.Ingest(context.Background(), "big.txt", []byte(sb.String()))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if outcome.Chunks < 2 {
		t.Fatalf("expected multiple chunks, got %d", outcome.Chunks)
	}

	for i, chunk := range storage.lastChunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d - indices must be 0..n-1 in order", i, chunk.Index)
		}
		if len(chunk.Vector) != 1 || chunk.Vector[0] != float32(len(chunk.Text)) {
			t.Errorf("chunk %d carries a vector that does not match its text", i)
		}
	}
	if storage.lastDoc.ChunkCount != len(storage.lastChunks) {
		t.Errorf("metadata chunk count %d does not match persisted chunks %d",
			storage.lastDoc.ChunkCount, len(storage.lastChunks))
	}
}

func TestIngest_EmptyDocument(t *testing.T) {
	storage := &mockStorage{hashes: map[string]string{}}
	p := NewPipeline(storage, &mockEmbedder{})

	outcome, err := p.Ingest(context.Background(), "empty.txt", []byte(""))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if outcome.Chunks != 0 {
		t.Errorf("empty text must yield zero chunks, got %d", outcome.Chunks)
	}
	// an empty replace still clears whatever the previous version stored
	if storage.replaceCalls != 1 || storage.upsertCalls != 1 {
		t.Errorf("empty document should still replace and record metadata")
	}
}
