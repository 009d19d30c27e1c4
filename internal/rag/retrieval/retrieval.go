package retrieval

import (
	"context"
	"time"

	"github.com/doclane/ragapi/internal/config"
	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/metrics"
	"github.com/doclane/ragapi/internal/rag/embedding"
	"github.com/doclane/ragapi/internal/rag/vectorDB"
	"github.com/doclane/ragapi/pkg/logger_i"
)

// Engine answers "which chunks are closest to this question". It embeds the
// question, asks the store for the nearest rows and converts distance into
// the similarity the callers report.
type Engine struct {
	storage  vectorDB.Storage
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

func NewEngine(storage vectorDB.Storage, embedder embedding.Embedder) *Engine {
	return &Engine{
		storage:  storage,
		embedder: embedder,
		logger:   logger_i.NewLogger("Retrieval Engine"),
	}
}

// Retrieve returns up to topK results ordered most-similar first.
// topK <= 0 falls back to the default of 5; no upper bound is enforced here.
func (e *Engine) Retrieve(ctx context.Context, question string, topK int) ([]docModel.RetrievalResult, error) {
	log := e.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if topK <= 0 {
		topK = config.DefaultTopK
	}

	start := time.Now()
	vector, err := e.embedder.GetEmbedding(ctx, question)
	metrics.CaptureExecutionMetrics("query_embedding", time.Since(start))
	if err != nil {
		return nil, err
	}

	start = time.Now()
	rows, err := e.storage.NearestNeighbors(ctx, vector, topK)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		return nil, err
	}

	results := make([]docModel.RetrievalResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, docModel.RetrievalResult{
			Text:       row.Text,
			DocName:    row.SourceKey,
			ChunkIndex: row.ChunkIndex,
			Similarity: 1 - row.Distance,
		})
	}

	log.Debug("Retrieved context", "question", question, "hits", len(results))
	return results, nil
}
