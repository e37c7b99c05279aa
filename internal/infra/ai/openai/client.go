package openai

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/anjarmara/skinsight/internal/domain/analysis"
	"github.com/anjarmara/skinsight/internal/infra/ai/llmjson"
	"github.com/anjarmara/skinsight/internal/infra/ai/prompt"
)

const (
	maxTokens = 2000

	// Prompt-side caps on the ingredient list; surplus is truncated, the
	// stored raw list is not affected.
	maxIngredientItems = 150
	maxIngredientChars = 8000

	// One bounded attempt per call, no retries. A timeout counts as a
	// transport failure.
	callTimeout = 45 * time.Second
)

// Config carries the provider settings injected at construction; nothing is
// read from ambient state.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	VisionModel string
	Temperature float32
}

type Client struct {
	*openai.Client
	model       string
	visionModel string
	temperature float32
}

func NewClient(cfg Config) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &Client{
		Client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		temperature: cfg.Temperature,
	}
}

// AnalyzeIngredients classifies an ingredient list via one chat completion.
// Every failure mode (transport, empty choices, non-JSON content, schema
// mismatch) is absorbed into the deterministic fallback result; this method
// never surfaces an error.
func (c *Client) AnalyzeIngredients(ctx context.Context, ingredientsText string) analysis.Result {
	normalized := prompt.NormalizeIngredients(ingredientsText, maxIngredientItems, maxIngredientChars)

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetAnalysisPrompt(normalized)},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("ai analyze: chat completion failed, using fallback: %v", err)
		return analysis.Fallback(ingredientsText)
	}
	if len(resp.Choices) == 0 {
		log.Printf("ai analyze: no choices in response, using fallback")
		return analysis.Fallback(ingredientsText)
	}

	raw, err := llmjson.Extract(resp.Choices[0].Message.Content, llmjson.Object)
	if err != nil {
		log.Printf("ai analyze: %v, using fallback", err)
		return analysis.Fallback(ingredientsText)
	}

	var result analysis.Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("ai analyze: result decode failed, using fallback: %v", err)
		return analysis.Fallback(ingredientsText)
	}
	return result
}
