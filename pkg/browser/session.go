// Package browser drives a headless Chromium page: navigation, axe-core
// injection, scan execution, and the per-selector DOM context queries used
// during candidate enrichment.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/user/a11y-audit/pkg/axe"
)

// Pinned scanner build, tried in order. Pinning keeps rule output stable
// across runs.
var axeURLs = []string{
	"https://cdn.jsdelivr.net/npm/axe-core@4.7.2/axe.min.js",
	"https://unpkg.com/axe-core@4.7.2/axe.min.js",
	"https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.7.2/axe.min.js",
}

// Config holds browser configuration.
type Config struct {
	Headless            bool
	ViewportWidth       int
	ViewportHeight      int
	NavigationTimeoutMs int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Headless:            true,
		ViewportWidth:       1440,
		ViewportHeight:      1000,
		NavigationTimeoutMs: 30000,
	}
}

func (c Config) NavigationTimeout() time.Duration {
	if c.NavigationTimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

// Session owns one launched browser and one page for the lifetime of a scan.
type Session struct {
	cfg      Config
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// NewSession launches a browser and opens a blank page at the configured
// viewport. Callers must Close it.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	l := launcher.New().Headless(cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.ViewportWidth,
		Height:            cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		log.Printf("warning: failed to set viewport: %v", err)
	}

	return &Session{cfg: cfg, launcher: l, browser: b, page: page}, nil
}

// Navigate loads the URL and waits for the network to go idle. If the strict
// wait times out the page is retried with a relaxed wait on the load event
// only, so slow third-party resources do not fail the scan. A short settle
// pause follows either path.
func (s *Session) Navigate(url string) error {
	p := s.page.Timeout(s.cfg.NavigationTimeout())
	err := p.Navigate(url)
	if err == nil {
		err = p.WaitIdle(s.cfg.NavigationTimeout())
	}
	if err != nil {
		log.Printf("warning: strict navigation wait failed (%v), retrying relaxed", err)
		if err := s.page.Navigate(url); err != nil {
			return fmt.Errorf("navigate %s: %w", url, err)
		}
		if err := s.page.WaitLoad(); err != nil {
			return fmt.Errorf("navigate %s: %w", url, err)
		}
	}
	time.Sleep(600 * time.Millisecond)
	return nil
}

const injectScriptJS = `(src) => new Promise((resolve, reject) => {
	const s = document.createElement('script');
	s.src = src;
	s.onload = () => resolve(true);
	s.onerror = () => reject(new Error('failed to load ' + src));
	document.head.appendChild(s);
})`

// InjectAxe loads the scanner into the page from the first reachable CDN.
func (s *Session) InjectAxe(ctx context.Context) error {
	for _, u := range axeURLs {
		_, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
			JS:           injectScriptJS,
			JSArgs:       []interface{}{u},
			ByValue:      true,
			AwaitPromise: true,
		})
		if err == nil {
			return nil
		}
		log.Printf("warning: axe-core injection from %s failed: %v", u, err)
	}
	return fmt.Errorf("failed to inject axe-core from CDN")
}

// RunAxe executes the scan over the full document and returns the parsed
// payload along with the raw JSON exactly as serialized from the page.
func (s *Session) RunAxe(ctx context.Context) (*axe.Result, []byte, error) {
	res, err := s.page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           `() => axe.run(document, { resultTypes: ['violations','incomplete','passes'] })`,
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("run axe: %w", err)
	}
	if res == nil || res.Value.Nil() {
		return nil, nil, fmt.Errorf("run axe: empty result")
	}

	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("marshal axe result: %w", err)
	}
	var parsed axe.Result
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, nil, fmt.Errorf("decode axe result: %w", err)
	}
	return &parsed, raw, nil
}

// Close tears down the page, browser, and launched process.
func (s *Session) Close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
}
