package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1}  "))
}

func TestChatWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Chat("system", "user", 0.7, 100, false)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
