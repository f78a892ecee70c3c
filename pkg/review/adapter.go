package review

import (
	"context"
	"sync"

	"github.com/user/a11y-audit/pkg/llm"
)

// Generator turns a compiled prompt into raw model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options selects the adapter mode and review behavior for one pass. It is
// passed in explicitly, never read from ambient process state, so tests can
// exercise both branches deterministically.
type Options struct {
	Live        bool   // live-verdict feature switch
	APIKey      string // credential; live mode needs both switch and key
	Model       string
	SkipNonWCAG bool
	Concurrency int // verdict fan-out bound; <=0 means default
}

// Adapter produces one verdict per prompt. Mode is evaluated per candidate:
// the stub path answers whenever the switch is off or the key is absent, and
// any live failure collapses into the fixed fallback verdict instead of an
// error.
type Adapter struct {
	opts Options

	mu  sync.Mutex
	gen Generator
	// newGenerator is swappable for tests.
	newGenerator func(ctx context.Context) (Generator, error)
}

func NewAdapter(opts Options) *Adapter {
	a := &Adapter{opts: opts}
	a.newGenerator = func(ctx context.Context) (Generator, error) {
		return llm.NewGemini(ctx, opts.APIKey, opts.Model, SystemInstruction)
	}
	return a
}

// NewAdapterWithGenerator injects a ready generator (tests, alternate backends).
func NewAdapterWithGenerator(opts Options, gen Generator) *Adapter {
	a := NewAdapter(opts)
	a.gen = gen
	return a
}

// liveMode is checked for every candidate rather than cached for the run.
func (a *Adapter) liveMode() bool {
	return a.opts.Live && a.opts.APIKey != ""
}

// Review produces the verdict for one prompt. It never returns an error:
// stub mode is constant, and live-mode failures become the fallback verdict.
func (a *Adapter) Review(ctx context.Context, prompt string) Verdict {
	if !a.liveMode() {
		return StubVerdict()
	}

	gen, err := a.generator(ctx)
	if err != nil {
		return FallbackVerdict(err)
	}

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		llm.Debugf("verdict generation failed: %v", err)
		return FallbackVerdict(err)
	}
	v, err := ParseVerdict(text)
	if err != nil {
		llm.Debugf("verdict validation failed: %v", err)
		return FallbackVerdict(err)
	}
	return v
}

func (a *Adapter) generator(ctx context.Context) (Generator, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != nil {
		return a.gen, nil
	}
	gen, err := a.newGenerator(ctx)
	if err != nil {
		return nil, err
	}
	a.gen = gen
	return gen, nil
}
