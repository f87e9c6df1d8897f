package slipparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONFromMarkdown(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		in := `{"bank_name":"KBANK","amount":"1500.00","transfer_date":"2025-04-01"}`
		assert.Equal(t, in, extractJSONFromMarkdown(in))
	})

	t.Run("JSONFence", func(t *testing.T) {
		in := "```json\n{\"bank_name\":\"SCB\"}\n```"
		assert.Equal(t, `{"bank_name":"SCB"}`, extractJSONFromMarkdown(in))
	})

	t.Run("BareFence", func(t *testing.T) {
		in := "```\n{\"amount\":\"200\"}\n```"
		assert.Equal(t, `{"amount":"200"}`, extractJSONFromMarkdown(in))
	})

	t.Run("SurroundingWhitespace", func(t *testing.T) {
		in := "  \n```json\n{\"amount\":\"200\"}\n```\n  "
		assert.Equal(t, `{"amount":"200"}`, extractJSONFromMarkdown(in))
	})
}
