package candidate

import (
	"testing"

	"github.com/user/a11y-audit/pkg/axe"
)

// fakeProbe is a canned ContextProvider for selector tests.
type fakeProbe struct {
	roleNames   map[string]string
	texts       map[string]string
	interactive map[string]bool
}

func (f *fakeProbe) Attributes(sel string) map[string]string { return map[string]string{} }
func (f *fakeProbe) AccessibilitySnapshot(sel string) *AXNode { return nil }
func (f *fakeProbe) NearbyText(sel string) string { return "" }
func (f *fakeProbe) RoleNameGuess(sel string) string { return f.roleNames[sel] }
func (f *fakeProbe) Text(sel string) string { return f.texts[sel] }
func (f *fakeProbe) InsideInteractive(sel string) bool { return f.interactive[sel] }
func (f *fakeProbe) Screenshot(sel, destPath string) string { return "" }

func TestSelectMustReviewDedup(t *testing.T) {
	// 1. Two rules sharing a selector, plus a duplicate node and an empty selector
	findings := []axe.Finding{
		{
			RuleID: "image-alt", Bucket: axe.BucketViolations,
			SuccessCriteria: []string{"1.1.1"},
			Nodes: []axe.Node{
				{Selector: "img#logo", HTML: `<img id="logo">`},
				{Selector: "img#logo"}, // duplicate key, dropped
				{Selector: ""},         // unaddressable, dropped
			},
		},
		{
			RuleID: "color-contrast", Bucket: axe.BucketIncomplete,
			Nodes: []axe.Node{{Selector: "img#logo"}},
		},
	}

	cands := Select("https://example.com", findings, nil)

	// 2. Same selector under a different rule is a distinct candidate
	if len(cands) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(cands))
	}
	for _, c := range cands {
		if c.Bucket != BucketMustReview {
			t.Errorf("Expected bucket %s, got %s", BucketMustReview, c.Bucket)
		}
	}

	// 3. Topic derivation: mapped rule gets SC-x.x.x, unmapped gets BEST_PRACTICE
	if cands[0].Topic != "SC-1.1.1" {
		t.Errorf("Expected topic SC-1.1.1, got %s", cands[0].Topic)
	}
	if cands[1].Topic != TopicBestPractice {
		t.Errorf("Expected topic %s, got %s", TopicBestPractice, cands[1].Topic)
	}
}

func TestSelectPromotesGenericAltOnce(t *testing.T) {
	findings := []axe.Finding{
		{
			RuleID: "image-alt", Bucket: axe.BucketPasses,
			SuccessCriteria: []string{"1.1.1"},
			Nodes: []axe.Node{
				{Selector: "img.hero"},   // meaningful name, not promoted
				{Selector: "img.banner"}, // generic name, promoted
				{Selector: "img.footer"}, // generic too, but only the first qualifies
			},
		},
	}
	probe := &fakeProbe{
		roleNames: map[string]string{
			"img.hero":   "img — Sunrise over the harbor",
			"img.banner": "img — IMG_2041.jpg",
			"img.footer": "img — photo of office",
		},
	}

	cands := Select("https://example.com", findings, probe)

	if len(cands) != 1 {
		t.Fatalf("Expected 1 promoted candidate, got %d", len(cands))
	}
	if cands[0].Selector != "img.banner" {
		t.Errorf("Expected img.banner promoted, got %s", cands[0].Selector)
	}
	if cands[0].Bucket != BucketSemanticReview {
		t.Errorf("Expected bucket %s, got %s", BucketSemanticReview, cands[0].Bucket)
	}
}

func TestSelectPromotesFunctionalImage(t *testing.T) {
	// A descriptive name still qualifies when the image sits inside a link
	findings := []axe.Finding{
		{
			RuleID: "image-alt", Bucket: axe.BucketPasses,
			Nodes:  []axe.Node{{Selector: "a img.icon"}},
		},
	}
	probe := &fakeProbe{
		roleNames:   map[string]string{"a img.icon": "img — Company logo"},
		interactive: map[string]bool{"a img.icon": true},
	}

	cands := Select("https://example.com", findings, probe)
	if len(cands) != 1 {
		t.Fatalf("Expected functional image promoted, got %d candidates", len(cands))
	}
}

func TestSelectPromotesVagueLinkText(t *testing.T) {
	findings := []axe.Finding{
		{
			RuleID: "link-name", Bucket: axe.BucketPasses,
			SuccessCriteria: []string{"2.4.4"},
			Nodes: []axe.Node{
				{Selector: "a.about"},
				{Selector: "a.more"},
			},
		},
	}
	probe := &fakeProbe{
		texts: map[string]string{
			"a.about": "About our team",
			"a.more":  "  Click Here  ", // trimmed, case-insensitive match
		},
	}

	cands := Select("https://example.com", findings, probe)

	if len(cands) != 1 {
		t.Fatalf("Expected 1 promoted link, got %d", len(cands))
	}
	if cands[0].Selector != "a.more" {
		t.Errorf("Expected a.more promoted, got %s", cands[0].Selector)
	}
	if cands[0].Topic != "SC-2.4.4" {
		t.Errorf("Expected topic SC-2.4.4, got %s", cands[0].Topic)
	}
}

func TestSelectPromotionRespectsGlobalDedup(t *testing.T) {
	// The selector already appeared under violations for the same rule, so the
	// passes-bucket promotion must not duplicate it.
	findings := []axe.Finding{
		{
			RuleID: "image-alt", Bucket: axe.BucketViolations,
			Nodes:  []axe.Node{{Selector: "img.banner"}},
		},
		{
			RuleID: "image-alt", Bucket: axe.BucketPasses,
			Nodes:  []axe.Node{{Selector: "img.banner"}},
		},
	}
	probe := &fakeProbe{
		roleNames: map[string]string{"img.banner": "img — IMG_2041.jpg"},
	}

	cands := Select("https://example.com", findings, probe)
	if len(cands) != 1 {
		t.Fatalf("Expected dedup across buckets, got %d candidates", len(cands))
	}
	if cands[0].Bucket != BucketMustReview {
		t.Errorf("Expected first occurrence to win (must_review), got %s", cands[0].Bucket)
	}
}
