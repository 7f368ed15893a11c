package filter

import (
	"strings"

	"github.com/brizzai/apidoc-filter/internal/descriptor"
)

// ParseTags splits a comma-delimited tag list. Tokens are not trimmed and
// tag names compare case-sensitively.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// ContainsTag reports whether op carries tag.
func ContainsTag(op *descriptor.Operation, tag string) bool {
	if op == nil || op.Tags == nil {
		return false
	}
	return op.HasTag(tag)
}

// ContainsAnyTag reports whether op carries at least one of tags.
func ContainsAnyTag(op *descriptor.Operation, tags []string) bool {
	for _, tag := range tags {
		if ContainsTag(op, tag) {
			return true
		}
	}
	return false
}
