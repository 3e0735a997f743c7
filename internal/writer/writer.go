// Package writer puts generated outputs on disk.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kolah/swaggen/internal/codegen"
)

// ErrOutsideRoot is returned for an output whose filename does not stay below the output root.
var ErrOutsideRoot = errors.New("output path escapes output directory")

type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
)

type Result struct {
	Path   string
	Status Status
}

// Write stores every output below root, creating directories as needed.
// Files whose content is already identical are left untouched. Filenames must be
// relative and must not climb out of root; nothing is written if one does.
func Write(root string, outputs []codegen.Output) ([]Result, error) {
	for _, out := range outputs {
		if !filepath.IsLocal(out.Filename) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, out.Filename)
		}
	}

	results := make([]Result, 0, len(outputs))

	for _, out := range outputs {
		path := filepath.Join(root, out.Filename)

		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, []byte(out.Content)) {
			results = append(results, Result{Path: path, Status: StatusUnchanged})
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return results, fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(out.Content), 0644); err != nil {
			return results, fmt.Errorf("writing %s: %w", path, err)
		}
		results = append(results, Result{Path: path, Status: StatusWritten})
	}

	return results, nil
}
