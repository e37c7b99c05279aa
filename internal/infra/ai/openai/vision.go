package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/anjarmara/skinsight/internal/domain/ai"
	"github.com/anjarmara/skinsight/internal/infra/ai/llmjson"
	"github.com/anjarmara/skinsight/internal/infra/ai/prompt"
)

const (
	visionMaxTokens   = 400
	visionTemperature = 0.1
)

// ExtractIngredients sends the label photo to a vision-capable model as an
// inline data URL and parses the returned JSON array of ingredient names into
// a comma-joined string. Failures are not masked: every error path wraps
// ai.ErrExtractionFailed.
func (c *Client) ExtractIngredients(ctx context.Context, image []byte, contentType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.visionModel,
		Temperature: visionTemperature,
		MaxTokens:   visionMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetVisionSystemPrompt()},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt.GetVisionUserPrompt()},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
				},
			},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domai.ErrExtractionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %v", domai.ErrExtractionFailed, domai.ErrNoCompletion)
	}

	raw, err := llmjson.Extract(resp.Choices[0].Message.Content, llmjson.Array)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domai.ErrExtractionFailed, err)
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return "", fmt.Errorf("%w: %v", domai.ErrExtractionFailed, err)
	}

	seen := make(map[string]struct{}, len(names))
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		cleaned = append(cleaned, n)
	}
	return strings.Join(cleaned, ", "), nil
}
