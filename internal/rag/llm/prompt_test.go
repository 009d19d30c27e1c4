package llm

import (
	"strings"
	"testing"

	"github.com/doclane/ragapi/internal/domain/docModel"
)

func TestBuildPrompt_LabelsAndOrder(t *testing.T) {
	results := []docModel.RetrievalResult{
		{Text: "Paris is the capital of France.", DocName: "geo.pdf", ChunkIndex: 0, Similarity: 0.99},
		{Text: "Berlin is the capital of Germany.", DocName: "geo.pdf", ChunkIndex: 3, Similarity: 0.71},
	}

	prompt := BuildPrompt("What is the capital of France?", results)

	first := strings.Index(prompt, "[Document: geo.pdf, Chunk 0]")
	second := strings.Index(prompt, "[Document: geo.pdf, Chunk 3]")
	if first < 0 || second < 0 {
		t.Fatalf("prompt is missing source labels:\n%s", prompt)
	}
	if first > second {
		t.Error("context chunks are not in retrieval order")
	}

	if !strings.Contains(prompt, "Paris is the capital of France.") {
		t.Error("prompt is missing chunk text")
	}
	if !strings.Contains(prompt, "Question: What is the capital of France?") {
		t.Error("prompt is missing the question")
	}
	if !strings.Contains(prompt, InsufficientContextAnswer) {
		t.Error("prompt is missing the insufficient-information sentinel instruction")
	}
}

func TestBuildPrompt_EmptyContext(t *testing.T) {
	prompt := BuildPrompt("anything?", nil)
	if !strings.Contains(prompt, "Question: anything?") {
		t.Error("prompt without context should still carry the question")
	}
}
