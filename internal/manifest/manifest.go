// Package manifest reads and writes the line-oriented name lists produced by
// a batch run. Files are ISO-8859-1 encoded so accented names survive the
// tools that consume them.
package manifest

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Nomadcxx/torrentsink/internal/apperrors"
)

// Write replaces the file at path with one entry per line, Latin-1 encoded.
// An entry containing a character outside Latin-1 fails the whole write.
func Write(fs afero.Fs, path string, lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	encoded, err := charmap.ISO8859_1.NewEncoder().String(sb.String())
	if err != nil {
		return &apperrors.ManifestError{Path: path, Err: fmt.Errorf("latin-1 encode: %w", err)}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return &apperrors.ManifestError{Path: path, Err: err}
		}
	}

	if err := afero.WriteFile(fs, path, []byte(encoded), 0644); err != nil {
		return &apperrors.ManifestError{Path: path, Err: err}
	}

	return nil
}

// Read decodes a Latin-1 manifest back into its entries
func Read(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return lines, nil
}
