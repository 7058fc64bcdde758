package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/claimsift/claimsift/internal/model"
)

// OpenAIProvider implements Provider over the OpenAI chat API. A
// custom BaseURL supports OpenAI-compatible local endpoints.
type OpenAIProvider struct {
	client *openai.Client
	config model.LLMConfig
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config model.LLMConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string { return "openai" }

// ExtractKeywords asks the model for comma-separated keyword phrases
func (p *OpenAIProvider) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Extract up to %d short keyword phrases useful for web-searching evidence about the following claim. "+
			"Respond with ONLY a comma-separated list, no numbering, no commentary.\n\nClaim: %s",
		maxKeywords, text)

	response, err := p.complete(ctx, "You extract search keywords from news claims.", prompt)
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}

	keywords := parseKeywordList(response)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("extract keywords: empty response")
	}
	return keywords, nil
}

// RerankArticles asks the model for a relevance ordering of the
// numbered articles and applies it. Any malformed response is an
// error; the caller keeps the deterministic ranking.
func (p *OpenAIProvider) RerankArticles(ctx context.Context, claim model.Claim, articles []model.ScoredArticle) ([]model.ScoredArticle, error) {
	if len(articles) < 2 {
		return articles, nil
	}

	var listing strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&listing, "%d. %s - %s\n", i+1, a.Title, a.Snippet)
	}

	prompt := fmt.Sprintf(
		"Claim: %s\n\nArticles:\n%s\nOrder the article numbers from most to least relevant as evidence "+
			"for or against the claim. Respond with ONLY the comma-separated numbers.",
		claim.Text, listing.String())

	response, err := p.complete(ctx, "You rank evidence articles for fact-checking.", prompt)
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}

	order, err := parseOrdering(response, len(articles))
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}

	out := make([]model.ScoredArticle, 0, len(articles))
	for _, idx := range order {
		out = append(out, articles[idx])
	}
	return out, nil
}

// complete runs one chat completion with the provider's timeout
func (p *OpenAIProvider) complete(ctx context.Context, system, user string) (string, error) {
	chatModel := p.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}
	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseOrdering parses a comma-separated 1-based number list into a
// complete permutation of [0, n)
func parseOrdering(response string, n int) ([]int, error) {
	seen := make(map[int]bool)
	var order []int
	for _, part := range strings.Split(response, ",") {
		part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), "."))
		if part == "" {
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("unexpected token %q", part)
		}
		idx := num - 1
		if idx < 0 || idx >= n || seen[idx] {
			return nil, fmt.Errorf("invalid ordering position %d", num)
		}
		seen[idx] = true
		order = append(order, idx)
	}
	if len(order) != n {
		return nil, fmt.Errorf("ordering covers %d of %d articles", len(order), n)
	}
	return order, nil
}
