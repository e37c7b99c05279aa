package middleware

import (
	"fmt"
	"strings"
)

// Input validation and sanitization utilities

const (
	// maxIngredientsChars bounds the request body field, not the prompt;
	// the prompt-side caps are applied separately during normalization.
	maxIngredientsChars = 32000
	maxProductNameChars = 255
	// MaxImageBytes caps label uploads; vision requests embed the image
	// as base64 so oversized files blow up the completion request.
	MaxImageBytes = 10 << 20
)

// ValidateIngredientsText rejects blank or oversized ingredient input
// before any model call is made.
func ValidateIngredientsText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("ingredients list cannot be empty")
	}
	if len(text) > maxIngredientsChars {
		return fmt.Errorf("ingredients list too long (max %d characters)", maxIngredientsChars)
	}
	return nil
}

// ValidateProductName bounds the optional product name
func ValidateProductName(name string) error {
	if len(name) > maxProductNameChars {
		return fmt.Errorf("product name too long (max %d characters)", maxProductNameChars)
	}
	return nil
}

// ValidateImageContentType accepts the label image formats the vision
// model handles.
func ValidateImageContentType(contentType string) error {
	allowed := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	if !allowed[strings.ToLower(contentType)] {
		return fmt.Errorf("unsupported image type: %s (allowed: jpeg, png, webp, gif)", contentType)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
