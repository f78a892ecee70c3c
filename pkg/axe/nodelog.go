package axe

import (
	"encoding/json"
	"os"
)

// NodeRecord is one line of the node-by-node scan log, explaining why each
// element passed or failed its rule.
type NodeRecord struct {
	PageURL        string   `json:"page_url"`
	Bucket         string   `json:"bucket"`
	RuleID         string   `json:"rule_id"`
	Help           string   `json:"help"`
	HelpURL        string   `json:"help_url"`
	Impact         string   `json:"impact"`
	SCList         []string `json:"sc_list"`
	Selector       string   `json:"selector"`
	HTML           string   `json:"html"`
	FailureSummary string   `json:"failure_summary"`
	WhyAny         []string `json:"why_any"`
	WhyAll         []string `json:"why_all"`
	WhyNone        []string `json:"why_none"`
}

// WriteNodeLog writes one JSON record per node to a .jsonl file, preserving
// bucket, rule, and node order.
func WriteNodeLog(path, pageURL string, findings []Finding) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, fd := range findings {
		for _, n := range fd.Nodes {
			rec := NodeRecord{
				PageURL:        pageURL,
				Bucket:         fd.Bucket,
				RuleID:         fd.RuleID,
				Help:           fd.Help,
				HelpURL:        fd.HelpURL,
				Impact:         fd.Impact,
				SCList:         fd.SuccessCriteria,
				Selector:       n.Selector,
				HTML:           n.HTML,
				FailureSummary: n.FailureSummary,
				WhyAny:         n.WhyAny,
				WhyAll:         n.WhyAll,
				WhyNone:        n.WhyNone,
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
