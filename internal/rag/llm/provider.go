package llm

import (
	"context"

	"github.com/doclane/ragapi/internal/domain/docModel"
)

// Provider synthesizes an answer from a question and the retrieved context,
// most-similar chunk first. Prompt assembly is this package's job; the
// model's reasoning is not.
type Provider interface {
	Generate(ctx context.Context, question string, results []docModel.RetrievalResult) (string, error)
}
