package llm

import (
	"fmt"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// NewProvider creates an LLM provider from configuration. An empty
// provider name means LLM assistance is disabled and returns (nil, nil).
func NewProvider(config model.LLMConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}
