package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// File keeps each key in <dir>/<key>.json. Writes go to a temp file that is
// renamed into place, so readers never see a partial document.
type File struct {
	dir string
	log *zap.Logger

	mu      sync.Mutex
	written map[string][32]byte // digest of our own last write per key
}

// NewFile returns a file backend rooted at dir, creating it if needed.
func NewFile(dir string, logger *zap.Logger) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &File{dir: dir, log: logger, written: map[string][32]byte{}}, nil
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load implements Backend.
func (f *File) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// Save implements Backend.
func (f *File) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", key, err)
	}

	f.mu.Lock()
	f.written[key] = sha256.Sum256(data)
	f.mu.Unlock()

	if err := os.Rename(tmp.Name(), f.Path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Watch implements Watcher. Changes whose content matches this backend's
// own last write are not reported.
func (f *File) Watch(ctx context.Context, key string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(f.dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", f.dir, err)
	}

	target := filepath.Clean(f.Path(key))
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if f.ownWrite(key) {
					continue
				}
				f.log.Debug("storage file changed externally", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				onChange()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				f.log.Warn("storage watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

func (f *File) ownWrite(key string) bool {
	b, err := os.ReadFile(f.Path(key))
	if err != nil {
		return false
	}
	sum := sha256.Sum256(b)
	f.mu.Lock()
	defer f.mu.Unlock()
	last, ok := f.written[key]
	return ok && bytes.Equal(last[:], sum[:])
}

// Close implements Backend.
func (f *File) Close() error { return nil }
