package googleEmbedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/doclane/ragapi/internal/config"
	"github.com/doclane/ragapi/internal/domain/docModel"
	"github.com/doclane/ragapi/internal/rag/embedding"
	"github.com/doclane/ragapi/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension int32 = config.EmbeddingOutputDimensionality

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
	}
	if c != nil {
		embeddingClient = &client{
			genAi: c,
			model: modelName,
		}
		logger.Debug("Google Embedding model name: " + modelName)
		logger.Info("Google Embedding client created")
		go closeClient(ctx, embeddingClient)
	}
}

// closeClient only logs; the handle is shared with in-flight requests and
// must stay intact until the process exits.
func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
}

func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	content := genai.Text(text)

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
	if err != nil {
		logger.Error("Error getting Embedding from Google", "error", err.Error())
		return nil, classify(err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", docModel.ErrModelUnavailable)
	}
	return result.Embeddings[0].Values, nil
}

// classify maps transport failures onto the pipeline taxonomy so the caller
// can tell a rate limit from an outage.
func classify(err error) error {
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return fmt.Errorf("%w: %v", docModel.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %v", docModel.ErrModelUnavailable, err)
}
