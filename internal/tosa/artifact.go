package tosa

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is the persisted operand-info document consumed by the
// visualization layer.
type Artifact struct {
	Enums      EnumTable   `json:"enums"`
	Operations OperandInfo `json:"operations"`
}

// Encode renders the artifact as indented JSON with a trailing
// newline. Map keys are emitted in sorted order, so regenerating from
// unchanged inputs produces a byte-identical document.
func (a *Artifact) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode operand info: %w", err)
	}
	return append(out, '\n'), nil
}

// WriteFile writes the encoded artifact to path, creating any missing
// parent directories. There is no partial-write recovery; a filesystem
// failure is propagated and the run fails.
func (a *Artifact) WriteFile(path string) error {
	out, err := a.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
