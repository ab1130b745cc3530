package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/voicelist/component"
	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/util"
)

// ErrNotStarted is returned by Acquire before Start has run.
var ErrNotStarted = errors.New("storage: spool not started")

// Spool hands out uniquely named scratch files for in-flight uploads.
type Spool struct {
	cfg Config
	log *logger.Logger

	mu    sync.RWMutex
	store *Local
}

var _ component.Component = (*Spool)(nil)

// NewSpool creates a spool. The directory is created by Start.
func NewSpool(cfg Config, log *logger.Logger) *Spool {
	cfg.ApplyDefaults()
	return &Spool{cfg: cfg, log: log.WithComponent("spool")}
}

// Name returns the component name.
func (s *Spool) Name() string { return "spool" }

// Start creates the spool directory.
func (s *Spool) Start(_ context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	store, err := NewLocal(s.cfg.BasePath)
	if err != nil {
		return fmt.Errorf("spool start: %w", err)
	}
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()

	s.log.Info("spool ready", logger.Fields("path", store.BasePath()))
	return nil
}

// Stop removes files left behind by unreleased scratches.
func (s *Spool) Stop(_ context.Context) error {
	s.mu.Lock()
	store := s.store
	s.store = nil
	s.mu.Unlock()

	if store == nil || !util.Deref(s.cfg.CleanOnStop) {
		return nil
	}
	removed, err := removeSpooled(store.BasePath())
	if removed > 0 {
		s.log.Info("removed leftover spool files", logger.Fields("count", removed))
	}
	return err
}

// Health reports whether the spool directory is writable.
func (s *Spool) Health(ctx context.Context) component.Health {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()

	if store == nil {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "spool not started"}
	}

	probe := ".health-" + uuid.NewString()
	if err := store.Upload(ctx, probe, strings.NewReader("")); err != nil {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: fmt.Sprintf("not writable: %v", err)}
	}
	_ = store.Delete(ctx, probe)
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Acquire writes r to a new file named <uuid><suffix>.
func (s *Spool) Acquire(ctx context.Context, suffix string, r io.Reader) (*Scratch, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return nil, ErrNotStarted
	}

	name := uuid.NewString() + suffix
	if err := store.Upload(ctx, name, r); err != nil {
		return nil, err
	}
	path, err := store.Path(name)
	if err != nil {
		return nil, err
	}
	return &Scratch{Name: name, Path: path, store: store, log: s.log}, nil
}

// Scratch is a spooled file owned by a single request.
type Scratch struct {
	Name string
	Path string

	store *Local
	log   *logger.Logger
	once  sync.Once
	err   error
}

// Release deletes the file. Calls after the first return the first result.
func (sc *Scratch) Release(ctx context.Context) error {
	sc.once.Do(func() {
		sc.err = sc.store.Delete(ctx, sc.Name)
		if sc.err != nil {
			sc.log.Warn("failed to release scratch file", logger.MergeWithError(logger.Fields(logger.FieldFileName, sc.Name), sc.err))
		}
	})
	return sc.err
}

func removeSpooled(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("storage: read spool: %w", err)
	}
	var errs []error
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !isSpooledName(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func isSpooledName(name string) bool {
	if len(name) < 36 {
		return false
	}
	_, err := uuid.Parse(name[:36])
	return err == nil
}
