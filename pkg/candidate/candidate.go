// Package candidate turns normalized scan findings into the deduplicated,
// context-enriched set of elements that go to semantic review.
package candidate

// Review buckets a candidate can land in.
const (
	BucketMustReview     = "must_review"
	BucketSemanticReview = "semantic_review"
)

// TopicBestPractice is used when a rule maps to no WCAG success criterion.
const TopicBestPractice = "BEST_PRACTICE"

// Candidate is a (rule, selector) pair selected for semantic review, plus the
// DOM/visual context attached by enrichment. Created once per scan, never
// mutated afterward.
type Candidate struct {
	PageURL         string            `json:"page_url"`
	Bucket          string            `json:"bucket"`
	Topic           string            `json:"topic"`
	SuccessCriteria []string          `json:"sc_list"`
	RuleID          string            `json:"rule_id"`
	Help            string            `json:"help"`
	HelpURL         string            `json:"help_url"`
	Impact          string            `json:"impact"`
	Selector        string            `json:"selector"`
	HTMLSnippet     string            `json:"html_snippet"`
	Attributes      map[string]string `json:"attributes"`
	RoleNameGuess   string            `json:"role_name_guess"`
	NearbyText      string            `json:"nearby_text"`
	AccSnapshot     *AXNode           `json:"acc_snapshot"`
	Screenshot      string            `json:"screenshot,omitempty"`
	FailureSummary  string            `json:"failure_summary,omitempty"`
	WhyAny          []string          `json:"why_any"`
	WhyAll          []string          `json:"why_all"`
	WhyNone         []string          `json:"why_none"`
}

// PrimarySuccessCriterion returns the first mapped criterion, or "".
func (c Candidate) PrimarySuccessCriterion() string {
	if len(c.SuccessCriteria) == 0 {
		return ""
	}
	return c.SuccessCriteria[0]
}

// AXNode is a trimmed accessibility-tree node: four fields, bounded children.
type AXNode struct {
	Role        string    `json:"role,omitempty"`
	Name        string    `json:"name,omitempty"`
	Value       string    `json:"value,omitempty"`
	Description string    `json:"description,omitempty"`
	Children    []*AXNode `json:"children,omitempty"`
}

// ContextProvider resolves selectors against the live page and answers the
// DOM/visual questions the selector and enricher ask. Every method degrades to
// an empty/zero value when the selector does not resolve or the page call
// fails; none of them abort a candidate.
type ContextProvider interface {
	// Attributes returns all attribute name/value pairs on the matched element.
	Attributes(selector string) map[string]string
	// AccessibilitySnapshot returns the trimmed AX tree rooted at the element.
	AccessibilitySnapshot(selector string) *AXNode
	// NearbyText returns trimmed text of the closest structural ancestor.
	NearbyText(selector string) string
	// RoleNameGuess returns a "role — name" guess for the element.
	RoleNameGuess(selector string) string
	// Text returns the element's rendered inner text.
	Text(selector string) string
	// InsideInteractive reports whether the element sits inside an anchor or button.
	InsideInteractive(selector string) bool
	// Screenshot crops the element into destPath and returns the saved path,
	// or "" when the element has no usable box.
	Screenshot(selector, destPath string) string
}
