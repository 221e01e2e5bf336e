package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"feedbackdigest/internal/store"
)

func TestSaveDigest(t *testing.T) {
	dir := t.TempDir()
	s := store.NewReportStore(dir)

	now := time.Date(2026, 8, 23, 9, 30, 15, 0, time.UTC)
	path, err := s.SaveDigest("# report body\n", now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "feedback_digest_20260823_093015.md"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "# report body\n", string(got))

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestSaveDigestCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")
	s := store.NewReportStore(dir)

	path, err := s.SaveDigest("body", time.Now())
	require.NoError(t, err)
	require.FileExists(t, path)
}
