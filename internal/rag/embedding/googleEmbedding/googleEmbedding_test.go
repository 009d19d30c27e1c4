package googleEmbedding

import (
	"context"
	"testing"

	"github.com/doclane/ragapi/pkg/logger_i"
)

// Shutdown must not tear down the client handle while requests may still be
// draining through it.
func TestCloseClient_KeepsHandleIntact(t *testing.T) {
	logger = logger_i.NewLogger("google_embedding")
	c := &client{model: "test-model"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	closeClient(ctx, c)

	if c.model != "test-model" {
		t.Errorf("model name was cleared on shutdown, got %q", c.model)
	}
}
