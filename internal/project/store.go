package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/errors"
)

// DefaultFileName is used when no project path is given.
const DefaultFileName = "project.maestro.json"

// Store reads and writes one project file.
type Store struct {
	path string
	lock *flock.Flock
	log  *zap.Logger
}

// NewStore creates a store for the project at path. If path is empty, uses
// DefaultFileName in the working directory.
func NewStore(path string, log *zap.Logger) (*Store, error) {
	if path == "" {
		path = DefaultFileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		path: abs,
		lock: flock.New(abs + ".lock"),
		log:  log,
	}, nil
}

// Save writes the project atomically: a temp file in the same directory is
// renamed over the old one.
func (s *Store) Save(p *Project) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	p.Version = FormatVersion
	p.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".maestro-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write project file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write project file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace project file: %w", err)
	}

	s.log.Debug("project saved", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return nil
}

// Load reads the project from disk.
func (s *Store) Load() (*Project, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, errors.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version > FormatVersion {
		return nil, fmt.Errorf("project format %d is newer than this build supports (%d)", p.Version, FormatVersion)
	}

	return &p, nil
}

// Exists returns true if the project file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the path to the project file.
func (s *Store) Path() string {
	return s.path
}

// Lock takes an exclusive advisory lock next to the project file. It fails
// with ErrProjectLocked when another process holds it.
func (s *Store) Lock() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire project lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", s.path, errors.ErrProjectLocked)
	}
	return nil
}

// Unlock releases the lock taken by Lock.
func (s *Store) Unlock() error {
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("release project lock: %w", err)
	}
	return nil
}

// Watch reports rewrites of the project file until ctx is done. Saves made
// through this store are reported too; callers compare content to tell them
// apart. Bursts of events collapse into one notification.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: atomic saves replace the file's inode.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	changed := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(changed)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("project watcher error", zap.Error(err))
			}
		}
	}()
	return changed, nil
}
