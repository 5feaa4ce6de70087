package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// generatedSuffixes are the file name endings of generated units.
var generatedSuffixes = []string{".partial.g.go", ".extensions.g.go"}

// WriteFiles writes all generated files. With an outputDir every file goes
// there; otherwise each file goes to its package directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		dir := outputDir
		if dir == "" {
			dir = file.Dir
		}

		if dir == "" {
			return fmt.Errorf("writing file %s: no directory for package %s", file.Filename, file.PkgPath)
		}

		// Create output directory if it doesn't exist
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(dir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// RemoveStale deletes generated unit files in dir that are not part of
// keep, so units that disappeared between passes leave nothing behind.
// It returns the removed file names.
func RemoveStale(dir string, keep []GeneratedFile) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	kept := make(map[string]bool, len(keep))
	for _, f := range keep {
		kept[f.Filename] = true
	}

	var removed []string

	for _, e := range entries {
		if e.IsDir() || kept[e.Name()] || !IsGenerated(e.Name()) {
			continue
		}

		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("removing %s: %w", e.Name(), err)
		}

		removed = append(removed, e.Name())
	}

	return removed, nil
}

// IsGenerated reports whether name is a file this package writes.
func IsGenerated(name string) bool {
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}
