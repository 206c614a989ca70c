package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeHTMLStripsScripts(t *testing.T) {
	out := string(SafeHTML(`<b>bold</b><script>alert(1)</script>`))

	assert.Contains(t, out, "<b>bold</b>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)")
}

func TestSafeHTMLEscapesBareMarkupChars(t *testing.T) {
	assert.Equal(t, "1 &lt; 2 &amp; 3", string(SafeHTML("1 < 2 & 3")))
}
