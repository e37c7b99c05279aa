package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domai "github.com/anjarmara/skinsight/internal/domain/ai"
)

func TestExtractIngredients(t *testing.T) {
	var captured map[string]any
	srv := newStubServer(t, "```json\n[\"Water\", \"NIACINAMIDE\", \"water\", \"\", \"Hyaluronic Acid\"]\n```", &captured)
	defer srv.Close()

	got, err := newTestClient(srv.URL).ExtractIngredients(context.Background(), []byte{0xFF, 0xD8, 0xFF}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "water, niacinamide, hyaluronic acid", got)

	// Vision request embeds the image as a base64 data URL part.
	assert.Equal(t, "test-vision-model", captured["model"])
	assert.EqualValues(t, 400, captured["max_tokens"])
	msgs := captured["messages"].([]any)
	require.Len(t, msgs, 2)
	parts := msgs[1].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	imagePart := parts[1].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	url := imagePart["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"), "got %q", url)
}

func TestExtractIngredientsNonJSONContent(t *testing.T) {
	srv := newStubServer(t, "The label is too blurry to read.", nil)
	defer srv.Close()

	_, err := newTestClient(srv.URL).ExtractIngredients(context.Background(), []byte{0x01}, "image/png")
	assert.ErrorIs(t, err, domai.ErrExtractionFailed)
}

func TestExtractIngredientsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ExtractIngredients(context.Background(), []byte{0x01}, "image/png")
	assert.ErrorIs(t, err, domai.ErrExtractionFailed)
}

func TestExtractIngredientsNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ExtractIngredients(context.Background(), []byte{0x01}, "image/png")
	assert.ErrorIs(t, err, domai.ErrExtractionFailed)
}
