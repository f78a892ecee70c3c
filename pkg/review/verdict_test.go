package review

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseVerdictFromProse(t *testing.T) {
	// Models wrap the object in prose and code fences; extraction must find
	// the balanced object anyway.
	text := "Sure, here's my review:\n```json\n" +
		`{"type": "image", "verdict": "ok", "reason": "Alt text {with braces} is fine", "confidence": 0.9, "techniques_used": ["H37"]}` +
		"\n```\nLet me know if you need more."

	v, err := ParseVerdict(text)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}

	want := Verdict{
		Type:           "image",
		Verdict:        "ok",
		Reason:         "Alt text {with braces} is fine",
		Confidence:     0.9,
		TechniquesUsed: []string{"H37"},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Verdict mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVerdictMissingKey(t *testing.T) {
	_, err := ParseVerdict(`{"type": "image", "verdict": "ok", "reason": "r", "confidence": 0.9}`)
	if err == nil {
		t.Fatal("Expected error for missing key")
	}
	if !strings.Contains(err.Error(), "missing key: techniques_used") {
		t.Errorf("Expected missing key error, got: %v", err)
	}
}

func TestParseVerdictNoObject(t *testing.T) {
	for _, text := range []string{"no json here", "{\"unbalanced\": true", ""} {
		if _, err := ParseVerdict(text); err == nil {
			t.Errorf("Expected error for %q", text)
		}
	}
}

func TestParseVerdictShapeMismatch(t *testing.T) {
	_, err := ParseVerdict(`{"type": "t", "verdict": "v", "reason": "r", "confidence": "high", "techniques_used": []}`)
	if err == nil {
		t.Fatal("Expected error for non-numeric confidence")
	}
	if !strings.Contains(err.Error(), "verdict shape mismatch") {
		t.Errorf("Expected shape mismatch error, got: %v", err)
	}
}

func TestStubAndFallbackVerdicts(t *testing.T) {
	stub := StubVerdict()
	if stub.Confidence != 0.5 {
		t.Errorf("Expected stub confidence 0.5, got %v", stub.Confidence)
	}
	if diff := cmp.Diff([]string{"demo-only"}, stub.TechniquesUsed); diff != "" {
		t.Errorf("Stub techniques mismatch (-want +got):\n%s", diff)
	}

	fb := FallbackVerdict(errors.New("503 backend unavailable"))
	if fb.Confidence != 0.4 {
		t.Errorf("Expected fallback confidence 0.4, got %v", fb.Confidence)
	}
	if !strings.Contains(fb.Reason, "503 backend unavailable") {
		t.Errorf("Expected failure recorded in reason, got %q", fb.Reason)
	}
	if diff := cmp.Diff([]string{"fallback"}, fb.TechniquesUsed); diff != "" {
		t.Errorf("Fallback techniques mismatch (-want +got):\n%s", diff)
	}
}
