package candidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CandidatesFile is the per-run candidates artifact name.
const CandidatesFile = "candidates.json"

// ErrMissingArtifact is returned when a review pass is attempted before a
// scan has produced a candidates artifact.
var ErrMissingArtifact = errors.New("prerequisite artifact missing")

// WriteArtifact writes the full candidate set as one atomic replacement:
// the JSON is written to a temp file in the same directory and renamed over
// the previous artifact, so readers never observe a mixed state.
func WriteArtifact(dir string, cands []Candidate) error {
	if cands == nil {
		cands = []Candidate{}
	}
	return AtomicWriteJSON(filepath.Join(dir, CandidatesFile), cands)
}

// ReadArtifact loads a previously written candidates artifact.
func ReadArtifact(dir string) ([]Candidate, error) {
	path := filepath.Join(dir, CandidatesFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s (run a scan first)", ErrMissingArtifact, path)
	}
	if err != nil {
		return nil, err
	}
	var cands []Candidate
	if err := json.Unmarshal(data, &cands); err != nil {
		return nil, fmt.Errorf("parse %s: %v", path, err)
	}
	return cands, nil
}

// AtomicWriteJSON marshals v with indentation and replaces path in one
// rename, never leaving a partially written artifact visible.
func AtomicWriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
