package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "raw object passes through",
			content:  `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "json fence stripped",
			content:  "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "bare fence stripped",
			content:  "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "object embedded in prose",
			content:  `Sure, here is the analysis: {"a":1} hope that helps!`,
			expected: `{"a":1}`,
		},
		{
			name:     "fence plus prose",
			content:  "```json\nHere you go {\"a\": {\"b\": 2}}\n```",
			expected: `{"a": {"b": 2}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.content, Object)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractArray(t *testing.T) {
	got, err := Extract("```json\n[\"water\", \"glycerin\"]\n```", Array)
	require.NoError(t, err)
	assert.Equal(t, `["water", "glycerin"]`, got)

	got, err = Extract(`The ingredients are ["water"] as requested.`, Array)
	require.NoError(t, err)
	assert.Equal(t, `["water"]`, got)
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    Kind
	}{
		{name: "no json at all", content: "no json here", kind: Object},
		{name: "unbalanced braces", content: "}{", kind: Object},
		{name: "malformed object", content: `{"a":}`, kind: Object},
		{name: "object when array requested", content: `{"a":1}`, kind: Array},
		{name: "empty content", content: "", kind: Object},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.content, tt.kind)
			assert.ErrorIs(t, err, ErrNoJSON)
		})
	}
}
