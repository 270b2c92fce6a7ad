package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// TokenFileName is the file a FileSlot keeps its token in.
const TokenFileName = "token"

// FileSlot keeps the token in a file so separate processes sharing a
// state directory behave like tabs of one browser.
type FileSlot struct {
	dir    string
	logger *slog.Logger

	// own holds values this process wrote that Watch has not observed yet,
	// oldest first.
	mu  sync.Mutex
	own []string
}

const maxOwnWrites = 8

func (s *FileSlot) recordWrite(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.own = append(s.own, token)
	if len(s.own) > maxOwnWrites {
		s.own = s.own[len(s.own)-maxOwnWrites:]
	}
}

// consumeOwn reports whether token is one of this process's pending writes,
// dropping it and anything older.
func (s *FileSlot) consumeOwn(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.own {
		if v == token {
			s.own = s.own[i+1:]
			return true
		}
	}
	return false
}

// forgetOwn drops pending writes once another process has written since.
func (s *FileSlot) forgetOwn() {
	s.mu.Lock()
	s.own = nil
	s.mu.Unlock()
}

// NewFileSlot creates dir if needed.
func NewFileSlot(dir string, logger *slog.Logger) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSlot{dir: dir, logger: logger}, nil
}

func (s *FileSlot) path() string { return filepath.Join(s.dir, TokenFileName) }

func (s *FileSlot) Load() (string, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Save replaces the token atomically so readers never see a partial write.
func (s *FileSlot) Save(token string) error {
	tmp, err := os.CreateTemp(s.dir, ".token-*")
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if _, err := tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.recordWrite(token)
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *FileSlot) Clear() error {
	s.recordWrite("")
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Watch reports changes to the token file made by other processes. Values
// this FileSlot wrote itself are skipped, and fn is only called when the
// value differs from the last one seen. One watcher per FileSlot.
func (s *FileSlot) Watch(fn func(string)) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch token: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch token: %w", err)
	}

	s.forgetOwn()
	last, _ := s.Load()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != TokenFileName {
					continue
				}
				current, err := s.Load()
				if err != nil {
					s.logger.Warn("token slot unreadable", "err", err)
					continue
				}
				if s.consumeOwn(current) {
					last = current
					continue
				}
				if current == last {
					continue
				}
				s.forgetOwn()
				last = current
				fn(current)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("token watch error", "err", err)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = w.Close()
			<-done
		})
	}, nil
}
