package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	workorderapp "github.com/fieldops/backend/internal/application/workorder"
)

var _ workorderapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage is used when storage is disabled. URLs point at BaseURL
// and every key is reported as uploaded unless it was deleted.
type StubObjectStorage struct {
	BaseURL string

	mu      sync.Mutex
	deleted map[string]bool
}

func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "http://localhost:9000/stub",
		deleted: make(map[string]bool),
	}
}

func (s *StubObjectStorage) signed(op, key string, expiresIn time.Duration) (string, time.Time) {
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + op + "/" + url.PathEscape(key) + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339)), expiresAt
}

func (s *StubObjectStorage) PresignUpload(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errEmptyKey
	}
	u, exp := s.signed("upload", key, expiresIn)
	return u, exp, nil
}

func (s *StubObjectStorage) PresignDownload(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errEmptyKey
	}
	u, exp := s.signed("download", key, expiresIn)
	return u, exp, nil
}

func (s *StubObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[key] = true
	return nil
}

func (s *StubObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.deleted[key], nil
}
