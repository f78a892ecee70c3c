package axe

// Result is the raw payload returned by an axe-core run, bucketed by outcome.
type Result struct {
	Violations []RuleResult `json:"violations"`
	Incomplete []RuleResult `json:"incomplete"`
	Passes     []RuleResult `json:"passes"`
}

// RuleResult is one rule evaluation, covering every element node the rule inspected.
type RuleResult struct {
	ID      string       `json:"id"`
	Tags    []string     `json:"tags"`
	Help    string       `json:"help"`
	HelpURL string       `json:"helpUrl"`
	Impact  string       `json:"impact"`
	Nodes   []NodeResult `json:"nodes"`
}

// NodeResult is one element node under a rule, with the check outcomes that
// explain why the rule passed or failed on it.
type NodeResult struct {
	Target         []string      `json:"target"`
	HTML           string        `json:"html"`
	FailureSummary string        `json:"failureSummary"`
	Any            []CheckResult `json:"any"`
	All            []CheckResult `json:"all"`
	None           []CheckResult `json:"none"`
}

// CheckResult is a single check outcome attached to a node.
type CheckResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Selector returns the first target entry, or "" when the node has none.
func (n NodeResult) Selector() string {
	if len(n.Target) == 0 {
		return ""
	}
	return n.Target[0]
}
