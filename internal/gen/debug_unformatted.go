package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted stores source that go/format rejected next to the
// intended output as <name>.unformatted.go.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
