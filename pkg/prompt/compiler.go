package prompt

import (
	"encoding/json"

	"github.com/user/a11y-audit/pkg/candidate"
	"github.com/user/a11y-audit/pkg/techniques"
)

// Truncation bounds applied to candidate context before interpolation.
const (
	maxHTMLSnippet = 1200
	maxNearbyText  = 800
	maxAXSnapshot  = 1200
)

// diagnostics is the trailing block appended after interpolation so reviewers
// see why the scanner flagged (or passed) the element.
type diagnostics struct {
	FailureSummary string   `json:"failure_summary"`
	WhyAny         []string `json:"why_any"`
	WhyAll         []string `json:"why_all"`
	WhyNone        []string `json:"why_none"`
	PageURL        string   `json:"page_url"`
}

// Compile builds the review prompt for one candidate. The substitution set is
// fixed; templates referencing anything else fail with a descriptive error.
// Identical inputs always produce a byte-identical prompt.
func Compile(tpl, sc string, doc techniques.Doc, c candidate.Candidate) (string, error) {
	techCtx, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	attrs := c.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}

	axJSON := "{}"
	if c.AccSnapshot != nil {
		raw, err := json.Marshal(c.AccSnapshot)
		if err != nil {
			return "", err
		}
		axJSON = string(raw)
	}

	topicLabel := c.Topic
	if sc != "" {
		topicLabel = "SC " + sc
	} else if topicLabel == "" {
		topicLabel = "Unmapped"
	}

	vars := map[string]string{
		"topic_label":        topicLabel,
		"techniques_context": string(techCtx),
		"selector":           c.Selector,
		"html_snippet":       truncate(c.HTMLSnippet, maxHTMLSnippet),
		"attributes":         string(attrsJSON),
		"role_name":          c.RoleNameGuess,
		"nearby_text":        truncate(c.NearbyText, maxNearbyText),
		"acc_snapshot":       truncate(axJSON, maxAXSnapshot),
		"rule_id":            c.RuleID,
		"rule_help":          c.Help,
		"impact":             c.Impact,
	}

	out, err := Interpolate(tpl, vars)
	if err != nil {
		return "", err
	}

	diag, err := json.MarshalIndent(diagnostics{
		FailureSummary: c.FailureSummary,
		WhyAny:         c.WhyAny,
		WhyAll:         c.WhyAll,
		WhyNone:        c.WhyNone,
		PageURL:        c.PageURL,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	return out + "\n\nAXE_DIAGNOSTICS:\n" + string(diag), nil
}

// truncate cuts a string to at most n runes without splitting a character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
