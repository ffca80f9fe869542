package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Run("収録済みの語は訳語を返す", func(t *testing.T) {
		got, ok := Lookup("es", "resilient")
		assert.True(t, ok)
		assert.Equal(t, "resistente", got)
	})

	t.Run("見出し語は大文字小文字を区別しない", func(t *testing.T) {
		got, ok := Lookup("es", "Resilient")
		assert.True(t, ok)
		assert.Equal(t, "resistente", got)
	})

	t.Run("未収録の語はokがfalseになる", func(t *testing.T) {
		_, ok := Lookup("es", "xylophone")
		assert.False(t, ok)
	})

	t.Run("未対応ロケールはokがfalseになる", func(t *testing.T) {
		_, ok := Lookup("de", "resilient")
		assert.False(t, ok)
	})
}

func TestSupportedLocales(t *testing.T) {
	locales := SupportedLocales()
	assert.Contains(t, locales, "es")
	assert.Contains(t, locales, "ja")
}
