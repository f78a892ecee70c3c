// Package techniques holds the remediation knowledge base: per-success-criterion
// guidance documents the prompt compiler folds into review prompts.
package techniques

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Doc is one knowledge-base entry, keyed by success criterion.
type Doc struct {
	Topic     string   `yaml:"topic" json:"topic"`
	Tags      []string `yaml:"tags" json:"-"`
	Do        []string `yaml:"do" json:"do"`
	Dont      []string `yaml:"dont" json:"dont"`
	EdgeCases []string `yaml:"edge_cases" json:"edge_cases"`
}

// Library is the set of loaded technique documents. Read-only once loaded.
type Library struct {
	Docs []Doc
}

// LoadLibrary reads YAML technique documents from a directory. A missing
// directory or an unparsable file is not fatal: retrieval must keep working
// with whatever loaded, falling back to synthesized guidance.
func LoadLibrary(dir string) *Library {
	lib := &Library{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return lib
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var d Doc
		if err := yaml.Unmarshal(data, &d); err != nil {
			continue
		}
		lib.Docs = append(lib.Docs, d)
	}
	return lib
}

// RetrieveForSC finds a document referencing the given success criterion
// (e.g. "1.3.1") by tag or topic, case-insensitive. Absence of a match is a
// normal case, reported via ok=false.
func (l *Library) RetrieveForSC(sc string) (Doc, bool) {
	sc = strings.ToLower(strings.TrimSpace(sc))
	if sc == "" {
		return Doc{}, false
	}
	for _, d := range l.Docs {
		for _, tag := range d.Tags {
			t := strings.ToLower(tag)
			if t == sc || t == "sc-"+sc {
				return d, true
			}
		}
		if strings.Contains(strings.ToLower(d.Topic), sc) {
			return d, true
		}
	}
	return Doc{}, false
}

// Synthesize builds a minimal conservative document for criteria the library
// does not cover, folding in the rule's own help text when available.
func Synthesize(sc, ruleHelp, ruleHelpURL string) Doc {
	topic := "Unmapped rule"
	if sc != "" {
		topic = "SC " + sc
	}
	d := Doc{
		Topic: topic,
		Do: []string{
			"Apply WCAG techniques conservatively for this success criterion.",
			"Prefer 'needs-change' when meaning or programmatic name is unclear.",
		},
		Dont: []string{
			"Do not approve ambiguous or redundant alternatives.",
			"Do not rely on visual presentation alone.",
		},
		EdgeCases: []string{},
	}
	if ruleHelp != "" {
		d.Do = append(d.Do, "Consider rule help: "+ruleHelp)
	}
	if ruleHelpURL != "" {
		d.Do = append(d.Do, "Ref: "+ruleHelpURL)
	}
	return d
}
