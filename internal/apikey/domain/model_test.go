package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAPIKey(t *testing.T) {
	a := HashAPIKey("mw_secret")
	b := HashAPIKey("  mw_secret  ")
	assert.Equal(t, a, b, "hash ignores surrounding whitespace")
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashAPIKey("mw_other"))
}

func TestGenerateAPIKey(t *testing.T) {
	key := GenerateAPIKey()
	assert.True(t, strings.HasPrefix(key, "mw_"))
	assert.NotContains(t, key, "-")
	assert.NotEqual(t, key, GenerateAPIKey())
	assert.Equal(t, key[:10], KeyPrefix(key))
}
