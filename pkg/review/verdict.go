// Package review runs the semantic review pass: per-candidate technique
// retrieval, prompt compilation, verdicts (live model or offline stub), and
// the traceable verdicts artifact.
package review

import (
	"encoding/json"
	"fmt"
)

// SystemInstruction constrains the live model to the verdict contract.
const SystemInstruction = "You are an accessibility reviewer. " +
	"Return ONLY a compact JSON object with keys: " +
	"type, verdict, reason, confidence, techniques_used."

// Verdict is the semantic review outcome for one candidate. All five fields
// are mandatory in a service response; anything less routes to the fallback.
type Verdict struct {
	Type           string   `json:"type"`
	Verdict        string   `json:"verdict"`
	Reason         string   `json:"reason"`
	Confidence     float64  `json:"confidence"`
	TechniquesUsed []string `json:"techniques_used"`
}

var requiredKeys = []string{"type", "verdict", "reason", "confidence", "techniques_used"}

// StubVerdict is the constant offline verdict, returned when live reviews are
// disabled or no credential is configured.
func StubVerdict() Verdict {
	return Verdict{
		Type:           "informative",
		Verdict:        "needs-change",
		Reason:         "Demo verdict (live reviews disabled or no API key).",
		Confidence:     0.5,
		TechniquesUsed: []string{"demo-only"},
	}
}

// FallbackVerdict is returned when the live service fails in any way; the
// failure is recorded in the reason instead of propagating.
func FallbackVerdict(err error) Verdict {
	return Verdict{
		Type:           "informative",
		Verdict:        "needs-change",
		Reason:         fmt.Sprintf("Model fallback (parse/error): %v", err),
		Confidence:     0.4,
		TechniquesUsed: []string{"fallback"},
	}
}

// ParseVerdict extracts the first balanced {...} span from a model response
// and validates the five-key contract.
func ParseVerdict(text string) (Verdict, error) {
	span, err := extractJSONObject(text)
	if err != nil {
		return Verdict{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return Verdict{}, fmt.Errorf("invalid JSON object: %v", err)
	}
	for _, k := range requiredKeys {
		if _, ok := raw[k]; !ok {
			return Verdict{}, fmt.Errorf("missing key: %s", k)
		}
	}

	var v Verdict
	if err := json.Unmarshal([]byte(span), &v); err != nil {
		return Verdict{}, fmt.Errorf("verdict shape mismatch: %v", err)
	}
	return v, nil
}

// extractJSONObject returns the first balanced top-level {...} span,
// honoring string literals and escapes.
func extractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("no balanced JSON object in response")
}
