package rag

import (
	"context"
	"time"

	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/metrics"
	"github.com/doclane/ragapi/pkg/logger_i"
)

func (s *service) stepError(err error, message string) error {
	s.logger.Error(message, "error", err)
	return err
}

func (s *service) executeFetchStep(ctx context.Context, log *logger_i.Logger, bucket string, key string) ([]byte, error) {
	log.Debug("IngestObject", "Current Step", "object_fetch")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("object_fetch", time.Since(start)) }()

	return s.fetcher.GetObject(ctx, bucket, key)
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, question string, topK int) ([]docModel.RetrievalResult, error) {
	log.Debug("Answer", "Current Step", "retrieval")

	return s.engine.Retrieve(ctx, question, topK)
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, question string, matches []docModel.RetrievalResult) (string, error) {
	log.Debug("Answer", "Current Step", "llm_generation")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, question, matches)
}
