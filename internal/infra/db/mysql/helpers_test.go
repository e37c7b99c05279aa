package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONOrDefault(t *testing.T) {
	// Empty ingredient text must become an empty array, not an empty
	// object, matching the postgres repository.
	assert.Equal(t, "[]", jsonOrDefault("", "[]"))
	assert.Equal(t, "[]", jsonOrDefault("   ", "[]"))
	assert.Equal(t, "{}", jsonOrDefault("", "{}"))
	assert.Equal(t, `["water"]`, jsonOrDefault(`["water"]`, "[]"))
	assert.Equal(t, `{"summary":"ok"}`, jsonOrDefault(`{"summary":"ok"}`, "{}"))
}
