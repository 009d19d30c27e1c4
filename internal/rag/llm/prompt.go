package llm

import (
	"fmt"
	"strings"

	"github.com/doclane/ragapi/internal/domain/docModel"
)

// InsufficientContextAnswer is the fixed sentinel the model is told to emit
// when the supplied context does not contain the answer.
const InsufficientContextAnswer = "I don't have enough information to answer that question."

// BuildPrompt assembles the fixed RAG prompt: every context chunk labeled
// with its source document and chunk index, in the order retrieved, followed
// by the question and the grounding instructions.
func BuildPrompt(question string, results []docModel.RetrievalResult) string {
	var context strings.Builder
	for i, r := range results {
		if i > 0 {
			context.WriteString("\n\n")
		}
		fmt.Fprintf(&context, "[Document: %s, Chunk %d]\n%s", r.DocName, r.ChunkIndex, r.Text)
	}

	return fmt.Sprintf(`You are an assistant that answers questions based only on the provided context.

Context:
%s

Question: %s

Instructions:
- Answer ONLY based on the information in the context
- If the answer is not in the context, say "%s"
- Cite the source document when relevant
- Be concise and precise

Answer:`, context.String(), question, InsufficientContextAnswer)
}
