package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"wardview/internal/domain"
)

// YAML reads a data directory holding YAML list exports (one document per
// file, each a sequence of records).
type YAML struct {
	dir string
}

// NewYAML creates a YAML source for the given data directory.
func NewYAML(dir string) *YAML {
	return &YAML{dir: dir}
}

func (s *YAML) Origin() string { return s.dir + " (yaml)" }

func (s *YAML) Paths() []string {
	return []string{
		filepath.Join(s.dir, RosterYAML),
		filepath.Join(s.dir, ActivityYAML),
		filepath.Join(s.dir, QueueYAML),
	}
}

func (s *YAML) Close() error { return nil }

// Load reads roster, activity and queue concurrently and assembles a
// snapshot. The roster file is required; the others may be absent.
func (s *YAML) Load(ctx context.Context) (*domain.Snapshot, error) {
	var (
		people  []personRecord
		entries []entryRecord
		queue   []queueRecord
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = decodeYAML[personRecord](filepath.Join(s.dir, RosterYAML), true)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = decodeYAML[entryRecord](filepath.Join(s.dir, ActivityYAML), false)
		return err
	})
	g.Go(func() error {
		var err error
		queue, err = decodeYAML[queueRecord](filepath.Join(s.dir, QueueYAML), false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assemble(people, entries, queue, s.Origin()), nil
}

func decodeYAML[T any](path string, required bool) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []T
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return records, nil
}
