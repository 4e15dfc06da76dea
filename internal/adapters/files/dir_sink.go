package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirSink saves generated documents into a local directory. It stands
// in for the browser download mechanism of the original client.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) (*DirSink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("download directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download directory %q: %w", dir, err)
	}
	return &DirSink{Dir: dir}, nil
}

// Save writes a complete document under the sink directory.
// The filename is flattened to its base so callers cannot escape the
// directory.
func (s *DirSink) Save(filename string, data []byte) error {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("save document: invalid filename %q", filename)
	}

	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save document %q: %w", path, err)
	}

	return nil
}
