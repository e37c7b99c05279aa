package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIngredientsText(t *testing.T) {
	assert.NoError(t, ValidateIngredientsText("water, glycerin"))
	assert.Error(t, ValidateIngredientsText("   "))
	assert.Error(t, ValidateIngredientsText(strings.Repeat("a", maxIngredientsChars+1)))
}

func TestValidateProductName(t *testing.T) {
	assert.NoError(t, ValidateProductName(""))
	assert.NoError(t, ValidateProductName("Daily Moisturizer"))
	assert.Error(t, ValidateProductName(strings.Repeat("x", maxProductNameChars+1)))
}

func TestValidateImageContentType(t *testing.T) {
	assert.NoError(t, ValidateImageContentType("image/jpeg"))
	assert.NoError(t, ValidateImageContentType("IMAGE/PNG"))
	assert.Error(t, ValidateImageContentType("application/pdf"))
	assert.Error(t, ValidateImageContentType(""))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeString("  hello world\x00  "))
	assert.Equal(t, "ab", SanitizeString("a\x01\x02b"))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
}
