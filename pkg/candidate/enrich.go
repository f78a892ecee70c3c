package candidate

import (
	"path/filepath"
	"regexp"
)

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename makes a string safe for use as a file name.
func SanitizeFilename(s string) string {
	s = filenameRe.ReplaceAllString(s, "_")
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

// Enrich attaches DOM/visual context to each candidate in place, in order.
// Every field degrades independently: a selector that no longer resolves
// leaves empty attributes, an empty snapshot, and no screenshot, but the
// candidate itself always survives. Screenshot paths are stored relative to
// runDir so the run directory stays relocatable.
func Enrich(cands []Candidate, provider ContextProvider, screenshotDir, runDir string) {
	for i := range cands {
		c := &cands[i]

		attrs := provider.Attributes(c.Selector)
		if attrs == nil {
			attrs = map[string]string{}
		}
		c.Attributes = attrs
		c.AccSnapshot = provider.AccessibilitySnapshot(c.Selector)
		c.NearbyText = provider.NearbyText(c.Selector)
		c.RoleNameGuess = provider.RoleNameGuess(c.Selector)

		sel := c.Selector
		if len(sel) > 60 {
			sel = sel[:60]
		}
		name := SanitizeFilename(c.RuleID+"__"+sel) + ".png"
		saved := provider.Screenshot(c.Selector, filepath.Join(screenshotDir, name))
		if saved != "" {
			if rel, err := filepath.Rel(runDir, saved); err == nil {
				saved = rel
			}
		}
		c.Screenshot = saved
	}
}
