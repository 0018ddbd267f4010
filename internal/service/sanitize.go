package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// sanitize strips HTML markup from an inbound string field before it is
// persisted. Not a security boundary, just keeps markup out of the tables.
func sanitize(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// sanitizePtr sanitizes through an optional field, leaving nil untouched
func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitize(*s)
	return &clean
}
