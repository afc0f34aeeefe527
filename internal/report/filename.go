package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned when no output path hint is given.
var ErrEmptyPath = errors.New("report: output path is empty")

// AvailablePath returns hint, or hint with "_N" inserted before the
// extension, whichever is the first path that does not exist yet.
// Existing files are never returned.
func AvailablePath(hint string) (string, error) {
	if strings.TrimSpace(hint) == "" {
		return "", ErrEmptyPath
	}
	ext := filepath.Ext(hint)
	base := strings.TrimSuffix(hint, ext)

	candidate := hint
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("report: check %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
}
