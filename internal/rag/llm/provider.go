package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider answers a question from retrieved context chunks.
type Provider interface {
	Generate(ctx context.Context, question string, matches []string) (string, error)
}

const compactInstruction = "Give one short synthesized answer using only the context above."

// BuildPrompt places the retrieved chunks ahead of the question.
func BuildPrompt(question string, matches []string) string {
	contextText := strings.Join(matches, "\n\n---\n\n")
	return fmt.Sprintf("Context:\n%s\n\n%s\nQuestion: %s", contextText, compactInstruction, question)
}
