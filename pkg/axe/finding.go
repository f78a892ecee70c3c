package axe

import (
	"regexp"
	"strings"
)

// Bucket names, in the fixed order findings are emitted.
const (
	BucketViolations = "violations"
	BucketIncomplete = "incomplete"
	BucketPasses     = "passes"
)

// Finding is a normalized rule evaluation result from one scan.
type Finding struct {
	RuleID          string
	Bucket          string
	Impact          string
	Help            string
	HelpURL         string
	SuccessCriteria []string
	Nodes           []Node
}

// Node is one element node under a finding, with its diagnostic messages.
type Node struct {
	Selector       string
	HTML           string
	FailureSummary string
	WhyAny         []string
	WhyAll         []string
	WhyNone        []string
}

var wcagTagRe = regexp.MustCompile(`(?i)^wcag(\d)(\d)(\d)$`)

// ExtractSuccessCriteria maps rule tags like "wcag111" to dotted success
// criteria like "1.1.1". Tags that do not match are ignored.
func ExtractSuccessCriteria(tags []string) []string {
	var scs []string
	for _, t := range tags {
		if m := wcagTagRe.FindStringSubmatch(t); m != nil {
			scs = append(scs, m[1]+"."+m[2]+"."+m[3])
		}
	}
	return scs
}

// PrimarySuccessCriterion returns the first extracted criterion, or "".
func PrimarySuccessCriterion(scs []string) string {
	if len(scs) == 0 {
		return ""
	}
	return scs[0]
}

// checkMessages renders check outcomes as "id: message" strings.
func checkMessages(checks []CheckResult) []string {
	out := make([]string, 0, len(checks))
	for _, c := range checks {
		s := strings.TrimSpace(strings.Trim(c.ID+": "+c.Message, ": "))
		out = append(out, s)
	}
	return out
}

// Normalize flattens a raw axe result into findings. Bucket order is fixed
// (violations, incomplete, passes); rule and node order are preserved exactly
// as the scanner reported them.
func Normalize(res *Result) []Finding {
	if res == nil {
		return nil
	}
	var findings []Finding
	buckets := []struct {
		name  string
		rules []RuleResult
	}{
		{BucketViolations, res.Violations},
		{BucketIncomplete, res.Incomplete},
		{BucketPasses, res.Passes},
	}
	for _, b := range buckets {
		for _, r := range b.rules {
			f := Finding{
				RuleID:          r.ID,
				Bucket:          b.name,
				Impact:          r.Impact,
				Help:            r.Help,
				HelpURL:         r.HelpURL,
				SuccessCriteria: ExtractSuccessCriteria(r.Tags),
			}
			for _, n := range r.Nodes {
				f.Nodes = append(f.Nodes, Node{
					Selector:       n.Selector(),
					HTML:           n.HTML,
					FailureSummary: n.FailureSummary,
					WhyAny:         checkMessages(n.Any),
					WhyAll:         checkMessages(n.All),
					WhyNone:        checkMessages(n.None),
				})
			}
			findings = append(findings, f)
		}
	}
	return findings
}
