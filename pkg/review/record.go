package review

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/user/a11y-audit/pkg/candidate"
)

// VerdictsFile is the per-run verdicts artifact name.
const VerdictsFile = "ai_verdicts.json"

// Record pairs a candidate's identity fields with its verdict and the content
// hash of the exact prompt that produced it. Candidate identity is carried by
// value: a review pass may run against an artifact from another invocation.
type Record struct {
	PageURL    string   `json:"page_url"`
	Topic      string   `json:"topic"`
	SC         string   `json:"sc"`
	SCList     []string `json:"sc_list"`
	Selector   string   `json:"selector"`
	RuleID     string   `json:"rule_id"`
	Impact     string   `json:"impact"`
	Verdict    Verdict  `json:"ai_verdict"`
	Screenshot string   `json:"screenshot,omitempty"`
	HelpURL    string   `json:"help_url,omitempty"`
	PromptHash string   `json:"prompt_hash"`
}

// PromptHash content-addresses a compiled prompt: first 16 hex characters of
// its SHA-256.
func PromptHash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])[:16]
}

// WriteRecords replaces the verdicts artifact atomically with the full record
// set for this pass.
func WriteRecords(dir string, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	return candidate.AtomicWriteJSON(filepath.Join(dir, VerdictsFile), recs)
}
