package rag

import (
	"context"
	"time"

	"github.com/doclane/ragapi/internal/blobstore"
	"github.com/doclane/ragapi/internal/config"
	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/metrics"
	"github.com/doclane/ragapi/internal/rag/ingest"
	"github.com/doclane/ragapi/internal/rag/llm"
	"github.com/doclane/ragapi/internal/rag/retrieval"
	"github.com/doclane/ragapi/pkg/logger_i"
)

// Service is the only surface the HTTP handlers talk to. The private struct
// below holds the actual clients (object store, pipeline, retrieval engine,
// LLM) and stays lowercase so nothing outside this package can reach them.
// NewService links the two, which is also what lets tests swap in fakes.
type Service interface {
	IngestObject(ctx context.Context, bucket string, key string) (docModel.IngestOutcome, error)
	Answer(ctx context.Context, question string, topK int) (docModel.QueryResult, error)
}

type service struct {
	fetcher     blobstore.Fetcher
	pipeline    *ingest.Pipeline
	engine      *retrieval.Engine
	llmProvider llm.Provider
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(fetcher blobstore.Fetcher, pipeline *ingest.Pipeline, engine *retrieval.Engine, llm llm.Provider) Service {
	return &service{
		fetcher:     fetcher,
		pipeline:    pipeline,
		engine:      engine,
		llmProvider: llm,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

// IngestObject pulls the object out of the bucket and hands it to the
// pipeline. The pipeline decides between Skipped and Processed.
func (s *service) IngestObject(ctx context.Context, bucket string, key string) (docModel.IngestOutcome, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "bucket", bucket, "key", key)

	processContext, cancel := context.WithTimeout(ctx, config.IngestTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("ingest", time.Since(start)) }()

	data, err := s.executeFetchStep(processContext, inMethodLogger, bucket, key)
	if err != nil {
		return docModel.IngestOutcome{}, s.stepError(err, "OBJECT_FETCH_FAILURE")
	}

	outcome, err := s.pipeline.Ingest(processContext, key, data)
	if err != nil {
		return docModel.IngestOutcome{}, s.stepError(err, "INGESTION_FAILURE")
	}
	return outcome, nil
}

// Answer runs the query side end to end. An empty retrieval set still goes
// through the LLM, which answers with the insufficient-context sentence
// because the prompt tells it to.
func (s *service) Answer(ctx context.Context, question string, topK int) (docModel.QueryResult, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	processContext, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureRequestMetrics("query", time.Since(start)) }()

	matches, err := s.executeRetrievalStep(processContext, inMethodLogger, question, topK)
	if err != nil {
		return docModel.QueryResult{}, s.stepError(err, "RETRIEVAL_FAILURE")
	}

	answer, err := s.executeLLMStep(processContext, inMethodLogger, question, matches)
	if err != nil {
		return docModel.QueryResult{}, s.stepError(err, "LLM_GENERATION_FAILURE")
	}

	return docModel.QueryResult{
		Question: question,
		Answer:   answer,
		Sources:  matches,
	}, nil
}
