package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/user/a11y-audit/pkg/candidate"
	"github.com/user/a11y-audit/pkg/llm"
	"github.com/user/a11y-audit/pkg/prompt"
	"github.com/user/a11y-audit/pkg/techniques"
)

const defaultConcurrency = 4

// Result summarizes one review pass.
type Result struct {
	Reviewed int
	Skipped  int
}

type workItem struct {
	prompt string
	record Record
}

// Run executes the review pass over a candidates artifact: retrieve
// techniques, compile and persist every prompt (template defects abort here,
// before any service call), obtain verdicts with a bounded fan-out, and write
// the verdicts artifact as one atomic replacement. Record order follows
// candidate order regardless of concurrency.
func Run(ctx context.Context, opts Options, cands []candidate.Candidate, lib *techniques.Library, tpl, outDir string) (Result, error) {
	promptsDir := filepath.Join(outDir, "prompts")
	if err := os.MkdirAll(promptsDir, 0755); err != nil {
		return Result{}, err
	}

	var res Result
	var items []workItem

	for i, c := range cands {
		sc := c.PrimarySuccessCriterion()

		if opts.SkipNonWCAG && sc == "" {
			res.Skipped++
			continue
		}

		doc, ok := techniques.Doc{}, false
		if sc != "" {
			doc, ok = lib.RetrieveForSC(sc)
		}
		if !ok {
			doc = techniques.Synthesize(sc, c.Help, c.HelpURL)
		}

		p, err := prompt.Compile(tpl, sc, doc, c)
		if err != nil {
			return res, fmt.Errorf("compile prompt for candidate %d (%s, %s): %w", i, c.RuleID, c.Selector, err)
		}

		// Persist the exact prompt for audit before anything is sent onward.
		label := sc
		if label == "" {
			label = c.Topic
		}
		if label == "" {
			label = "UNMAPPED"
		}
		name := fmt.Sprintf("%03d_%s_%s.txt", i, candidate.SanitizeFilename(label), candidate.SanitizeFilename(c.RuleID))
		if err := os.WriteFile(filepath.Join(promptsDir, name), []byte(p), 0644); err != nil {
			return res, fmt.Errorf("persist prompt %s: %v", name, err)
		}

		items = append(items, workItem{
			prompt: p,
			record: Record{
				PageURL:    c.PageURL,
				Topic:      c.Topic,
				SC:         sc,
				SCList:     c.SuccessCriteria,
				Selector:   c.Selector,
				RuleID:     c.RuleID,
				Impact:     c.Impact,
				Screenshot: c.Screenshot,
				HelpURL:    c.HelpURL,
				PromptHash: PromptHash(p),
			},
		})
	}

	adapter := NewAdapter(opts)
	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	recs := make([]Record, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for j := range items {
		j := j
		g.Go(func() error {
			rec := items[j].record
			rec.Verdict = adapter.Review(gctx, items[j].prompt)
			recs[j] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	if err := WriteRecords(outDir, recs); err != nil {
		return res, err
	}
	res.Reviewed = len(recs)
	llm.Debugf("review pass complete: %d reviewed, %d skipped", res.Reviewed, res.Skipped)
	return res, nil
}
