// internal/storage/file/file.go
package file

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/storage"
)

// ErrInvalidKey is returned for keys that cannot name a file on their own.
var ErrInvalidKey = errors.New("invalid slot key")

// Backend stores each slot as <dir>/<key>.json, or <key>.json.gz when
// compression is on. Writes go to a temp file that is renamed into place,
// so a crash never leaves a half-written slot behind.
type Backend struct {
	cfg   config.FileConfig
	ready bool
}

// New creates a new file backend
func New(cfg config.FileConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init creates the data directory.
func (b *Backend) Init() error {
	if b.cfg.Dir == "" {
		return fmt.Errorf("file storage: data directory not set")
	}
	if err := os.MkdirAll(b.cfg.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	b.ready = true
	return nil
}

// Close is a no-op; every Save is already on disk.
func (b *Backend) Close() error {
	b.ready = false
	return nil
}

// Path returns the file that holds key. The key is not checked.
func (b *Backend) Path(key string) string {
	name := key + ".json"
	if b.cfg.Compress {
		name += ".gz"
	}
	return filepath.Join(b.cfg.Dir, name)
}

// Load reads the slot under key.
func (b *Backend) Load(key string) ([]byte, bool, error) {
	if !b.ready {
		return nil, false, storage.ErrNotInitialized
	}
	if err := checkKey(key); err != nil {
		return nil, false, err
	}

	raw, err := os.ReadFile(b.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}

	if !b.cfg.Compress {
		return raw, true, nil
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, false, fmt.Errorf("failed to open gzip slot %q: %w", key, err)
	}
	defer gz.Close()

	payload, err := io.ReadAll(gz)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decompress slot %q: %w", key, err)
	}
	return payload, true, nil
}

// Save writes payload under key.
func (b *Backend) Save(key string, payload []byte) error {
	if !b.ready {
		return storage.ErrNotInitialized
	}
	if err := checkKey(key); err != nil {
		return err
	}

	target := b.Path(key)
	tmp, err := os.CreateTemp(b.cfg.Dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if b.cfg.Compress {
		err = writeGzip(tmp, payload)
	} else {
		_, err = tmp.Write(payload)
	}
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close slot %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace slot %q: %w", key, err)
	}
	return nil
}

func writeGzip(w io.Writer, payload []byte) error {
	gzWriter := gzip.NewWriter(w)
	if _, err := gzWriter.Write(payload); err != nil {
		gzWriter.Close()
		return err
	}
	return gzWriter.Close()
}

// checkKey accepts ASCII letters, digits, '-', '_' and '.', not leading with
// a dot. Each accepted key maps to its own file in the data directory.
func checkKey(key string) error {
	if key == "" || key[0] == '.' {
		return fmt.Errorf("%w %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w %q: %q not allowed", ErrInvalidKey, key, r)
		}
	}
	return nil
}
