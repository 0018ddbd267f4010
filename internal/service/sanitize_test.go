package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsMarkup(t *testing.T) {
	assert.Equal(t, "John Mwangi", sanitize("<b>John Mwangi</b>"))
	// Script element content is dropped entirely, not just the tags
	assert.Equal(t, "", sanitize("<script>alert(1)</script>"))
}

func TestSanitizeTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Kibera Drive 14", sanitize("  Kibera Drive 14  "))
}

func TestSanitizePtr(t *testing.T) {
	s := " <i>leak</i> "
	clean := sanitizePtr(&s)

	assert.NotNil(t, clean)
	assert.Equal(t, "leak", *clean)
	assert.Nil(t, sanitizePtr(nil))
}
