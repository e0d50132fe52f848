package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pion/logging"
)

// defaultFileMode is used when Save creates a new file.
const defaultFileMode fs.FileMode = 0o644

// FileConfig configures a FileStorage.
type FileConfig struct {
	// Root is prepended to relative names. Empty means the working directory.
	Root string

	// Sync flushes written files to disk before they replace the target.
	// Default: true
	Sync bool

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// DefaultFileConfig returns the default file storage configuration.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Sync: true,
	}
}

// FileStorage stores buffers as files. Save writes to a temporary file in the
// target directory and renames it over the target, so readers never observe a
// partially written PNG.
type FileStorage struct {
	root string
	sync bool
	log  logging.LeveledLogger
}

// NewFileStorage creates a file storage with the given configuration.
func NewFileStorage(config FileConfig) *FileStorage {
	s := &FileStorage{
		root: config.Root,
		sync: config.Sync,
	}
	if config.LoggerFactory != nil {
		s.log = config.LoggerFactory.NewLogger("storage")
	}
	return s
}

func (s *FileStorage) path(name string) string {
	if s.root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.root, name)
}

// Load reads the whole file.
func (s *FileStorage) Load(name string) ([]byte, error) {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	if s.log != nil {
		s.log.Debugf("loaded %s (%d bytes)", path, len(data))
	}
	return data, nil
}

// Save atomically replaces the file. The mode of an existing file is kept.
// When name is a symlink the link target is replaced and the link is left in
// place.
func (s *FileStorage) Save(name string, data []byte) error {
	path := s.path(name)

	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		path = resolved
	}

	dir, base := filepath.Split(path)
	tmpPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	if err := s.writeTemp(tmpPath, data, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	if s.log != nil {
		s.log.Debugf("saved %s (%d bytes)", path, len(data))
	}
	return nil
}

func (s *FileStorage) writeTemp(tmpPath string, data []byte, mode fs.FileMode) error {
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if s.sync {
		if err := f.Sync(); err != nil {
			f.Close()
			return fmt.Errorf("sync temp file: %w", err)
		}
	}
	return f.Close()
}
