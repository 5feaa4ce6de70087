package gen

import (
	"os"
	"path/filepath"
)

// unformattedSuffix keeps the sidecar out of the Go build of the package
// it sits in.
const unformattedSuffix = ".unformatted"

// writeDebugUnformatted saves template output that go/format rejected as
// "<file>.go.unformatted" in dir, for inspection. It is best-effort.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, filename+unformattedSuffix), content, filePerm)
}
