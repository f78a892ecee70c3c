package candidate

import (
	"strings"

	"github.com/user/a11y-audit/pkg/axe"
)

// maxPromotionNodes bounds how many passes-bucket nodes are inspected per
// eligible rule.
const maxPromotionNodes = 30

// Rules from the passes bucket that are worth a second, semantic look.
const (
	ruleImageAlt = "image-alt"
	ruleLinkName = "link-name"
)

// genericNameHints mark alt text that names the file, not the meaning.
var genericNameHints = []string{"image", "photo", "img_", ".jpg", ".png"}

// vagueLinkTexts are link labels that say nothing without visual context.
var vagueLinkTexts = map[string]bool{
	"click here": true,
	"learn more": true,
	"read more":  true,
}

type dedupKey struct {
	ruleID   string
	selector string
}

// Select walks the findings once and emits review candidates:
//
//  1. Every node under violations/incomplete becomes a must_review candidate,
//     unless its selector is empty or its (rule, selector) key was already seen.
//  2. From passes, the image-alt and link-name rules are probed against the
//     live page; at most the first qualifying node per rule is promoted as
//     semantic_review.
//
// The dedup set is global across both passes; first occurrence wins. Order of
// emission follows finding order.
func Select(pageURL string, findings []axe.Finding, probe ContextProvider) []Candidate {
	var out []Candidate
	seen := make(map[dedupKey]bool)

	for _, f := range findings {
		if f.Bucket != axe.BucketViolations && f.Bucket != axe.BucketIncomplete {
			continue
		}
		for _, n := range f.Nodes {
			if n.Selector == "" {
				continue
			}
			key := dedupKey{f.RuleID, n.Selector}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, newCandidate(pageURL, BucketMustReview, f, n))
		}
	}

	if probe == nil {
		return out
	}

	for _, f := range findings {
		if f.Bucket != axe.BucketPasses {
			continue
		}
		switch f.RuleID {
		case ruleImageAlt:
			out = promoteImageAlt(out, seen, pageURL, f, probe)
		case ruleLinkName:
			out = promoteLinkName(out, seen, pageURL, f, probe)
		}
	}
	return out
}

// promoteImageAlt promotes a passing image when its accessible name looks
// generic or the image is functional (inside a link or button). Only the
// first qualifying node is taken.
func promoteImageAlt(out []Candidate, seen map[dedupKey]bool, pageURL string, f axe.Finding, probe ContextProvider) []Candidate {
	nodes := f.Nodes
	if len(nodes) > maxPromotionNodes {
		nodes = nodes[:maxPromotionNodes]
	}
	for _, n := range nodes {
		if n.Selector == "" {
			continue
		}
		name := strings.ToLower(probe.RoleNameGuess(n.Selector))
		if i := strings.Index(name, " — "); i >= 0 {
			name = name[i+len(" — "):]
		}
		generic := false
		for _, hint := range genericNameHints {
			if strings.Contains(name, hint) {
				generic = true
				break
			}
		}
		if !generic && !probe.InsideInteractive(n.Selector) {
			continue
		}
		key := dedupKey{f.RuleID, n.Selector}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, newCandidate(pageURL, BucketSemanticReview, f, n))
		break
	}
	return out
}

// promoteLinkName promotes a passing link whose text is one of the vague
// stock phrases. Comparison is trimmed and case-insensitive; only the first
// qualifying node is taken.
func promoteLinkName(out []Candidate, seen map[dedupKey]bool, pageURL string, f axe.Finding, probe ContextProvider) []Candidate {
	nodes := f.Nodes
	if len(nodes) > maxPromotionNodes {
		nodes = nodes[:maxPromotionNodes]
	}
	for _, n := range nodes {
		if n.Selector == "" {
			continue
		}
		txt := strings.ToLower(strings.TrimSpace(probe.Text(n.Selector)))
		if !vagueLinkTexts[txt] {
			continue
		}
		key := dedupKey{f.RuleID, n.Selector}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, newCandidate(pageURL, BucketSemanticReview, f, n))
		break
	}
	return out
}

func newCandidate(pageURL, bucket string, f axe.Finding, n axe.Node) Candidate {
	topic := TopicBestPractice
	if sc := axe.PrimarySuccessCriterion(f.SuccessCriteria); sc != "" {
		topic = "SC-" + sc
	}
	return Candidate{
		PageURL:         pageURL,
		Bucket:          bucket,
		Topic:           topic,
		SuccessCriteria: f.SuccessCriteria,
		RuleID:          f.RuleID,
		Help:            f.Help,
		HelpURL:         f.HelpURL,
		Impact:          f.Impact,
		Selector:        n.Selector,
		HTMLSnippet:     n.HTML,
		FailureSummary:  n.FailureSummary,
		WhyAny:          n.WhyAny,
		WhyAll:          n.WhyAll,
		WhyNone:         n.WhyNone,
	}
}
