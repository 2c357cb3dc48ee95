package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client      *openai.Client
	model       string
	embedModel  openai.EmbeddingModel
	embedDim    int
	maxTokens   int
	temperature float32
}

type ClientConfig struct {
	APIKey      string
	Model       string
	EmbedModel  string
	EmbedDim    int
	MaxTokens   int
	Temperature float64
}

const (
	DefaultModel    = "gpt-4o-mini"
	DefaultEmbedDim = 8
)

// embeddingModelFor maps a configured model name to the client library's
// embedding model enum. Unknown names resolve to ada-002.
func embeddingModelFor(name string) openai.EmbeddingModel {
	switch name {
	case "", "text-embedding-ada-002":
		return openai.AdaEmbeddingV2
	case "text-similarity-ada-001":
		return openai.AdaSimilarity
	case "text-search-ada-doc-001":
		return openai.AdaSearchDocument
	case "text-search-ada-query-001":
		return openai.AdaSearchQuery
	default:
		return openai.AdaEmbeddingV2
	}
}

func NewClient(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	embedDim := cfg.EmbedDim
	if embedDim == 0 {
		embedDim = DefaultEmbedDim
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}
	return &Client{
		client:      openai.NewClient(cfg.APIKey),
		model:       model,
		embedModel:  embeddingModelFor(cfg.EmbedModel),
		embedDim:    embedDim,
		maxTokens:   maxTokens,
		temperature: float32(temperature),
	}
}

// Complete sends a single-turn prompt and returns the raw model text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt under a system instruction and returns
// the raw model text. Callers must treat the output as untrusted.
func (c *Client) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages:    messages,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

// Embedding returns an embedding for the text, reduced to the configured
// dimension by strided sampling so it is comparable with the fixed-length
// platform vectors.
func (c *Client) Embedding(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: c.embedModel,
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, nil
	}

	return reduceDim(resp.Data[0].Embedding, c.embedDim), nil
}

// reduceDim downsamples a full-size embedding to dim entries.
func reduceDim(embedding []float32, dim int) []float64 {
	if len(embedding) <= dim {
		out := make([]float64, len(embedding))
		for i, v := range embedding {
			out[i] = float64(v)
		}
		return out
	}
	step := len(embedding) / dim
	out := make([]float64, dim)
	for i := 0; i < dim; i++ {
		out[i] = float64(embedding[i*step])
	}
	return out
}

// TranslateText translates text to the target language.
func (c *Client) TranslateText(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	prompt := fmt.Sprintf(`Translate the following text from %s to %s.
Keep the tone consistent with the original.
Only output the translated text, nothing else.

Text to translate:
%s`, languageName(sourceLang), languageName(targetLang), text)

	result, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// DetectLanguage asks the model for the dominant language of the text as a
// two-letter ISO 639-1 code.
func (c *Client) DetectLanguage(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`Identify the dominant language of the following text.
Treat Romanized Hindi (Hinglish) as Hindi.
Reply with ONLY the two-letter ISO 639-1 code, nothing else.

Text:
%s`, truncate(text, 500))

	result, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	code := strings.ToLower(strings.TrimSpace(result))
	if len(code) != 2 {
		return "", fmt.Errorf("unexpected language detection output: %q", result)
	}
	return code, nil
}

func languageName(code string) string {
	switch code {
	case "hi":
		return "Hindi"
	case "en":
		return "English"
	default:
		return code
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
