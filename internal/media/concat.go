package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteConcatList writes a concat-demuxer manifest into dir, one line per
// input path in the order given, and returns the manifest path.
//
// Each path is single-quoted. A literal single quote inside a path is
// escaped by closing the quote, inserting an escaped quote and reopening:
// ' becomes '\''. Without this rule a quote in a path corrupts the
// manifest and shifts how the demuxer reads the following tokens.
func WriteConcatList(dir string, paths []string) (string, error) {
	f, err := os.CreateTemp(dir, "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("create concat list: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("resolve path %s: %w", p, err)
		}
		escaped := strings.ReplaceAll(abs, "'", `'\''`)
		if _, err := fmt.Fprintf(f, "file '%s'\n", escaped); err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write concat list: %w", err)
		}
	}

	return f.Name(), nil
}
