package prompt

import (
	_ "embed"
)

//go:embed templates/semantic_review.txt
var defaultTemplate string

// DefaultTemplate returns the built-in semantic review template.
func DefaultTemplate() string {
	return defaultTemplate
}
