package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ReportStore writes digest reports under a target directory.
type ReportStore struct {
	dir string
	mu  sync.Mutex
}

// NewReportStore returns a store rooted at dir ("." for the working
// directory).
func NewReportStore(dir string) *ReportStore {
	if dir == "" {
		dir = "."
	}
	return &ReportStore{dir: dir}
}

// SaveDigest writes the report to a timestamped markdown file and returns
// its path.
func (s *ReportStore) SaveDigest(report string, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", err
	}
	name := fmt.Sprintf("feedback_digest_%s.md", now.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(report), 0o600); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}
