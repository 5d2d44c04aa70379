// Package sessionfile keeps the operator CLI's single session in a local JSON file.
package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	apperrors "github.com/simbrella/cms-console/internal/errors"
	"github.com/simbrella/cms-console/internal/ports"
)

var (
	_ ports.SessionStore    = (*Store)(nil)
	_ ports.SessionSupplier = (*Store)(nil)
)

// ErrNotFound is returned when the file holds no session with the requested ID.
var ErrNotFound = apperrors.NotFound("session not found")

// Store persists at most one session. Saving replaces whatever was stored before.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New creates a Store backed by path. The file is created on first Save.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Join(fmt.Errorf("replace session file: %w", err), os.Remove(tmp))
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load()
	if err != nil {
		return domainauth.Session{}, err
	}
	if id == "" || sess.ID != id {
		return domainauth.Session{}, ErrNotFound
	}
	if sess.Expired(s.now()) {
		return domainauth.Session{}, errors.Join(ErrNotFound, s.remove())
	}
	return sess, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load()
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	if id != "" && sess.ID != id {
		return nil
	}
	return s.remove()
}

// Current returns the stored session, or nil when there is none or it has expired.
func (s *Store) Current(_ context.Context) (*domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load()
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if sess.Expired(s.now()) {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) load() (domainauth.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("read session file: %w", err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("decode session file %s: %w", s.path, err)
	}
	return sess, nil
}

func (s *Store) remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
