package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a summary provider by name. An empty name means the
// summary is disabled; an unrecognized name is a configuration error.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
