package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the
// extractor. It hides the concrete provider so the application layer
// never sees transport details.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
