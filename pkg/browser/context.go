package browser

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/user/a11y-audit/pkg/candidate"
)

// Session satisfies candidate.ContextProvider. All queries degrade to empty
// values: a selector that no longer resolves, or any protocol failure, must
// not abort enrichment.

const (
	axMaxChildren = 4
	axMaxDepth    = 8
)

// evalJSON runs a one-argument page function against a selector and decodes
// the by-value result into out. Returns false on any failure.
func (s *Session) evalJSON(selector, js string, out interface{}) bool {
	res, err := s.page.Evaluate(&rod.EvalOptions{
		JS:      js,
		JSArgs:  []interface{}{selector},
		ByValue: true,
	})
	if err != nil || res == nil {
		return false
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// element resolves a selector without waiting for it to appear.
func (s *Session) element(selector string) (*rod.Element, bool) {
	el, err := s.page.Sleeper(rod.NotFoundSleeper).Element(selector)
	if err != nil || el == nil {
		return nil, false
	}
	return el, true
}

// Attributes returns every attribute name/value pair on the matched element.
func (s *Session) Attributes(selector string) map[string]string {
	out := map[string]string{}
	s.evalJSON(selector, `(sel) => {
		const el = document.querySelector(sel);
		if (!el) return {};
		const o = {};
		for (const a of el.getAttributeNames()) o[a] = el.getAttribute(a);
		return o;
	}`, &out)
	return out
}

// NearbyText returns the trimmed text of the closest structural ancestor,
// bounded to keep prompt context small.
func (s *Session) NearbyText(selector string) string {
	var out string
	s.evalJSON(selector, `(sel) => {
		const el = document.querySelector(sel);
		if (!el) return "";
		const parent = el.closest('figure, a, button, label, td, th, p, div, section, article') || el.parentElement || document.body;
		const text = parent.innerText || "";
		return text.trim().slice(0, 500);
	}`, &out)
	return out
}

// RoleNameGuess returns a "role — name" guess from explicit role or tag name
// plus the best available accessible-name source.
func (s *Session) RoleNameGuess(selector string) string {
	var out string
	s.evalJSON(selector, `(sel) => {
		const el = document.querySelector(sel);
		if (!el) return "";
		const role = el.getAttribute('role') || el.tagName.toLowerCase();
		const name = el.getAttribute('aria-label') || el.getAttribute('alt') || el.getAttribute('aria-labelledby') || el.innerText || "";
		return (role + " — " + name.trim()).slice(0, 200);
	}`, &out)
	return out
}

// Text returns the element's rendered inner text.
func (s *Session) Text(selector string) string {
	var out string
	s.evalJSON(selector, `(sel) => {
		const el = document.querySelector(sel);
		return el ? (el.innerText || "") : "";
	}`, &out)
	return out
}

// InsideInteractive reports whether the element sits inside an anchor or button.
func (s *Session) InsideInteractive(selector string) bool {
	var out bool
	s.evalJSON(selector, `(sel) => {
		const el = document.querySelector(sel);
		return el ? !!el.closest('a,button') : false;
	}`, &out)
	return out
}

// AccessibilitySnapshot returns the trimmed accessibility tree rooted at the
// element: role/name/value/description per node, bounded children and depth.
func (s *Session) AccessibilitySnapshot(selector string) *candidate.AXNode {
	el, ok := s.element(selector)
	if !ok {
		return nil
	}

	_ = proto.AccessibilityEnable{}.Call(s.page)
	res, err := proto.AccessibilityGetPartialAXTree{
		ObjectID:       el.Object.ObjectID,
		FetchRelatives: true,
	}.Call(s.page)
	if err != nil || res == nil || len(res.Nodes) == 0 {
		return nil
	}

	byID := make(map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, len(res.Nodes))
	for _, n := range res.Nodes {
		byID[n.NodeID] = n
	}
	// The queried node is returned first, followed by its relatives.
	return buildAXNode(res.Nodes[0], byID, 0)
}

func buildAXNode(n *proto.AccessibilityAXNode, byID map[proto.AccessibilityAXNodeID]*proto.AccessibilityAXNode, depth int) *candidate.AXNode {
	if n == nil || depth >= axMaxDepth {
		return nil
	}
	node := &candidate.AXNode{
		Role:        axValueString(n.Role),
		Name:        axValueString(n.Name),
		Value:       axValueString(n.Value),
		Description: axValueString(n.Description),
	}
	for i, childID := range n.ChildIDs {
		if i >= axMaxChildren {
			break
		}
		child, ok := byID[childID]
		if !ok {
			continue
		}
		if c := buildAXNode(child, byID, depth+1); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

func axValueString(v *proto.AccessibilityAXValue) string {
	if v == nil || v.Value.Nil() {
		return ""
	}
	return v.Value.Str()
}

// Screenshot crops the element (with a small margin) into destPath and returns
// the saved path, or "" when the element has no usable box.
func (s *Session) Screenshot(selector, destPath string) string {
	el, ok := s.element(selector)
	if !ok {
		return ""
	}
	shape, err := el.Shape()
	if err != nil || shape == nil {
		return ""
	}
	box := shape.Box()
	if box == nil || box.Width <= 0 || box.Height <= 0 {
		return ""
	}

	// Element boxes are viewport-relative; shift by the scroll offset so the
	// clip addresses full-page coordinates.
	var offX, offY float64
	if metrics, err := (proto.PageGetLayoutMetrics{}).Call(s.page); err == nil && metrics.CSSVisualViewport != nil {
		offX = metrics.CSSVisualViewport.PageX
		offY = metrics.CSSVisualViewport.PageY
	}

	x := box.X + offX - 2
	y := box.Y + offY - 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	data, err := s.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      x,
			Y:      y,
			Width:  box.Width + 4,
			Height: box.Height + 4,
			Scale:  1,
		},
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return ""
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return ""
	}
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return ""
	}
	return destPath
}
