package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/doclane/ragapi/internal/config"
	"github.com/doclane/ragapi/internal/data/store"
	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/metrics"
	"github.com/doclane/ragapi/internal/rag/chunker"
	"github.com/doclane/ragapi/internal/rag/embedding"
	"github.com/doclane/ragapi/internal/rag/extract"
	"github.com/doclane/ragapi/internal/rag/vectorDB"
	"github.com/doclane/ragapi/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs one document through hash check, extraction, chunking,
// embedding and the atomic chunk replace. Dependencies come in through the
// constructor so tests can substitute fakes.
type Pipeline struct {
	storage  vectorDB.Storage
	embedder embedding.Embedder
	splitter chunker.Chunker
	locks    *keyedLock
	workers  int
	logger   *logger_i.Logger
}

func NewPipeline(storage vectorDB.Storage, embedder embedding.Embedder) *Pipeline {
	return &Pipeline{
		storage:  storage,
		embedder: embedder,
		splitter: chunker.New(config.ChunkSize, config.ChunkOverlap),
		locks:    newKeyedLock(),
		workers:  config.EmbedWorkerCount,
		logger:   logger_i.NewLogger("Ingestion Pipeline"),
	}
}

// Ingest processes one uploaded document identified by its storage key.
// Unchanged content (same md5 over the raw bytes) short-circuits with a
// Skipped outcome and performs zero writes. Any failure before the final
// metadata write leaves the previously stored version intact; there is no
// internal retry - that is the caller's job.
func (p *Pipeline) Ingest(ctx context.Context, filename string, data []byte) (docModel.IngestOutcome, error) {
	log := p.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", filename)

	hash := contentHash(data)

	// same-key ingestions are a critical section; different keys proceed in
	// parallel
	p.locks.Lock(filename)
	defer p.locks.Unlock(filename)

	storedHash, found, err := p.storage.GetDocumentHash(ctx, filename)
	if err != nil {
		return docModel.IngestOutcome{}, err
	}
	if found && storedHash == hash {
		log.Info("Document already processed with same hash. Skipping.")
		metrics.IncrementDocumentsSkipped()
		return docModel.IngestOutcome{Status: docModel.IngestSkipped, Filename: filename}, nil
	}

	start := time.Now()
	text, err := extract.Extract(data, filename)
	metrics.CaptureExecutionMetrics("extraction", time.Since(start))
	if err != nil {
		return docModel.IngestOutcome{}, err
	}
	log.Debug("Extracted text", "characters", len(text))

	start = time.Now()
	segments := p.splitter.Chunk(text)
	metrics.CaptureExecutionMetrics("chunking", time.Since(start))
	log.Debug("Chunked text", "chunks", len(segments))

	start = time.Now()
	vectors, err := p.embedChunks(ctx, segments)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return docModel.IngestOutcome{}, err
	}

	chunks := make([]docModel.DocChunk, len(segments))
	for i, segment := range segments {
		chunks[i] = docModel.DocChunk{
			DocName: filename,
			Index:   i,
			Text:    segment,
			Vector:  vectors[i],
		}
	}

	start = time.Now()
	if err := p.storage.ReplaceChunks(ctx, filename, chunks); err != nil {
		return docModel.IngestOutcome{}, err
	}
	if err := p.storage.UpsertDocument(ctx, store.NewDocumentRow(filename, hash, len(chunks))); err != nil {
		return docModel.IngestOutcome{}, err
	}
	metrics.CaptureExecutionMetrics("persist", time.Since(start))

	log.Info("Successfully processed document", "chunks", len(chunks))
	metrics.IncrementDocumentsIngested()
	return docModel.IngestOutcome{
		Status:   docModel.IngestProcessed,
		Filename: filename,
		Chunks:   len(chunks),
	}, nil
}

// embedChunks runs the embedding calls through a bounded pool. Each task is
// tagged with its chunk index, so the returned slice always matches chunker
// order no matter which call finishes first.
func (p *Pipeline) embedChunks(ctx context.Context, segments []string) ([][]float32, error) {
	vectors := make([][]float32, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, segment := range segments {
		g.Go(func() error {
			vector, err := p.embedder.GetEmbedding(gctx, segment)
			if err != nil {
				return fmt.Errorf("embedding chunk %d: %w", i, err)
			}
			vectors[i] = vector
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func contentHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
