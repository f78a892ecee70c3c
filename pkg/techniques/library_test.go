package techniques

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestLoadLibraryAndRetrieve(t *testing.T) {
	dir := t.TempDir()

	writeDoc(t, dir, "alt.yaml", `
topic: "SC 1.1.1 Non-text Content"
tags: ["1.1.1", "sc-1.1.1"]
do: ["Require meaningful alt text."]
dont: ["Do not approve file names as alt text."]
edge_cases: ["Logos may use the organization name."]
`)
	writeDoc(t, dir, "broken.yaml", "topic: [unclosed")
	writeDoc(t, dir, "notes.txt", "not a technique doc")

	lib := LoadLibrary(dir)

	// Broken and non-YAML files are skipped, not fatal
	if len(lib.Docs) != 1 {
		t.Fatalf("Expected 1 loaded doc, got %d", len(lib.Docs))
	}

	doc, ok := lib.RetrieveForSC("1.1.1")
	if !ok {
		t.Fatal("Expected retrieval hit for 1.1.1")
	}
	if doc.Topic != "SC 1.1.1 Non-text Content" {
		t.Errorf("Unexpected topic: %s", doc.Topic)
	}

	// Tag matching is case-insensitive and accepts the sc- prefix form
	if _, ok := lib.RetrieveForSC("2.4.4"); ok {
		t.Error("Expected miss for uncovered criterion")
	}
	if _, ok := lib.RetrieveForSC(""); ok {
		t.Error("Expected miss for empty criterion")
	}
}

func TestLoadLibraryMissingDir(t *testing.T) {
	lib := LoadLibrary(filepath.Join(t.TempDir(), "nope"))
	if len(lib.Docs) != 0 {
		t.Errorf("Expected empty library, got %d docs", len(lib.Docs))
	}
	if _, ok := lib.RetrieveForSC("1.1.1"); ok {
		t.Error("Expected miss on empty library")
	}
}

func TestSynthesize(t *testing.T) {
	doc := Synthesize("1.3.1", "Elements must have sufficient structure", "https://example.com/rule")

	if doc.Topic != "SC 1.3.1" {
		t.Errorf("Expected topic SC 1.3.1, got %s", doc.Topic)
	}
	if len(doc.Do) == 0 || len(doc.Dont) == 0 {
		t.Fatal("Expected conservative do/dont guidance")
	}

	joined := strings.Join(doc.Do, "\n")
	if !strings.Contains(joined, "Consider rule help: Elements must have sufficient structure") {
		t.Error("Expected rule help folded into guidance")
	}
	if !strings.Contains(joined, "Ref: https://example.com/rule") {
		t.Error("Expected help URL folded into guidance")
	}

	unmapped := Synthesize("", "", "")
	if unmapped.Topic != "Unmapped rule" {
		t.Errorf("Expected Unmapped rule topic, got %s", unmapped.Topic)
	}
}
