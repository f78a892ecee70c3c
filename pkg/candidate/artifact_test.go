package candidate

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cands := []Candidate{
		{
			PageURL:         "https://example.com",
			Bucket:          BucketMustReview,
			Topic:           "SC-1.1.1",
			SuccessCriteria: []string{"1.1.1"},
			RuleID:          "image-alt",
			Selector:        "img#logo",
			Attributes:      map[string]string{"src": "logo.png"},
		},
	}

	if err := WriteArtifact(dir, cands); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}

	got, err := ReadArtifact(dir)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	if diff := cmp.Diff(cands, got); diff != "" {
		t.Errorf("Artifact round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteArtifactNilBecomesEmptyList(t *testing.T) {
	dir := t.TempDir()

	if err := WriteArtifact(dir, nil); err != nil {
		t.Fatalf("Failed to write artifact: %v", err)
	}
	got, err := ReadArtifact(dir)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty candidate set, got %d", len(got))
	}
}

func TestReadArtifactMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadArtifact(dir)
	if err == nil {
		t.Fatal("Expected error for missing artifact")
	}
	if !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("Expected ErrMissingArtifact, got: %v", err)
	}
}

func TestAtomicWriteJSONReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	if err := AtomicWriteJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteJSON(path, map[string]int{"b": 2}); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	// No temp files left behind
	entries, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no temp files, found %v", entries)
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := SanitizeFilename(`image-alt__html > body > img:nth-child(2)`)
	want := "image-alt__html_body_img_nth-child_2_"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
