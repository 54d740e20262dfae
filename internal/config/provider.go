package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/tallcms/cms-installer/internal/messages"
)

// Provider supplies the current configuration. Implementations must be safe for
// concurrent use; callers read Current on every use instead of caching it.
type Provider interface {
	Current() *Config
}

// Static is a Provider that always returns the same config.
type Static struct {
	cfg *Config
}

// NewStatic wraps cfg in a Provider.
func NewStatic(cfg Config) Static {
	return Static{cfg: &cfg}
}

// Current returns the wrapped config.
func (s Static) Current() *Config {
	return s.cfg
}

// Store is a Provider backed by a config file that can be reloaded while the
// process runs. Readers never block: the current config is swapped atomically.
type Store struct {
	path    string
	logger  *zap.Logger
	current atomic.Pointer[Config]

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// OpenStore loads path into a new Store.
func OpenStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, logger: logger}
	s.current.Store(cfg)
	return s, nil
}

// Path returns the config file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Current returns the most recently loaded config.
func (s *Store) Current() *Config {
	return s.current.Load()
}

// Reload re-reads the config file. On failure the previous config stays active.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return fmt.Errorf(messages.ConfigReloadFailedFmt, s.path, err)
	}
	s.current.Store(cfg)
	s.logger.Debug("config reloaded", zap.String("path", s.path))
	return nil
}

// Watch reloads the store whenever the config file changes. The parent
// directory is watched so editors that replace the file by rename are seen.
// Call Close to stop watching.
func (s *Store) Watch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf(messages.ConfigWatchFailedFmt, s.path, err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf(messages.ConfigWatchFailedFmt, s.path, err)
	}
	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watchLoop(watcher, s.done)
	return nil
}

func (s *Store) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	target := filepath.Clean(s.path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("config reload failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher, if any, and waits for it to exit.
func (s *Store) Close() error {
	s.mu.Lock()
	watcher, done := s.watcher, s.done
	s.watcher, s.done = nil, nil
	s.mu.Unlock()
	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	if err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}
