package server

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"ChartAlign/internal/chart"
	"ChartAlign/internal/excel"
	"ChartAlign/internal/model"
)

// Store holds the latest payloads loaded from the output directory.
type Store struct {
	mu     sync.RWMutex
	dir    string
	reader *excel.Reader
	opts   chart.Options

	payloads []chart.Payload
	stamps   map[string]time.Time
}

// NewStore creates a store over the directory the align step writes to.
func NewStore(dir string, reader *excel.Reader, opts chart.Options) *Store {
	return &Store{dir: dir, reader: reader, opts: opts, stamps: map[string]time.Time{}}
}

// Payloads returns the current snapshot.
func (s *Store) Payloads() []chart.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payloads
}

// Reload rescans the directory for *_df.xlsx files and rebuilds the
// payloads when the file set or any modification time changed. It returns
// whether anything changed. A file that fails to load is skipped with a
// warning so one bad file cannot blank the dashboard.
func (s *Store) Reload() (bool, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*_df.xlsx"))
	if err != nil {
		return false, fmt.Errorf("scan %s: %w", s.dir, err)
	}
	sort.Strings(paths)

	stamps, err := stampFiles(paths)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	unchanged := sameStamps(s.stamps, stamps)
	s.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	col := model.NewCollection()
	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), "_df.xlsx")
		t, err := s.reader.ReadIndexed(p)
		if err != nil {
			log.Printf("[WARN] skip %s: %v", p, err)
			continue
		}
		col.Add(name, t)
	}
	payloads := chart.BuildPayloads(col, s.opts)

	s.mu.Lock()
	s.payloads = payloads
	s.stamps = stamps
	s.mu.Unlock()
	log.Printf("[INFO] store reloaded: %d series from %s", len(payloads), s.dir)
	return true, nil
}

func stampFiles(paths []string) (map[string]time.Time, error) {
	stamps := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		stamps[p] = info.ModTime()
	}
	return stamps, nil
}

func sameStamps(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for p, t := range a {
		if bt, ok := b[p]; !ok || !bt.Equal(t) {
			return false
		}
	}
	return true
}
