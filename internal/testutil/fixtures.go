// Package testutil provides shared fixtures for tests that need a running
// backend or a scratch project directory.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mockround/mockround/internal/backend"
	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/session"
)

// Service is an in-process backend on a throwaway SQLite database.
type Service struct {
	URL    string
	Store  *session.Store
	Client *exchange.Client
	Logger *slog.Logger
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StartService starts a backend with the fixed HR question list. Everything
// is torn down when the test finishes.
func StartService(t *testing.T) *Service {
	t.Helper()

	store, err := session.NewStore(filepath.Join(t.TempDir(), "mockround.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := DiscardLogger()
	srv := httptest.NewServer(backend.NewServer(backend.Deps{Store: store, Logger: logger}).Handler())
	t.Cleanup(srv.Close)

	return &Service{
		URL:    srv.URL,
		Store:  store,
		Client: exchange.NewClient(srv.URL, srv.Client(), logger),
		Logger: logger,
	}
}

// SeedResume uploads a resume for userID through the API.
func (s *Service) SeedResume(t *testing.T, userID, jobRole string) exchange.Resume {
	t.Helper()
	r, err := s.Client.UploadResume(context.Background(), exchange.UploadResumeRequest{
		UserID:  userID,
		JobRole: jobRole,
		RawText: "Go developer with five years of backend experience.",
	})
	if err != nil {
		t.Fatalf("seeding resume: %v", err)
	}
	return r
}

// TempProject creates a temporary directory with the given files and returns
// its path. Files maps relative path to content.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}
