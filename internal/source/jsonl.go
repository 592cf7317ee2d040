package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"wardview/internal/domain"
)

// JSONL reads a data directory of line-delimited JSON exports.
type JSONL struct {
	dir string
}

// NewJSONL creates a JSONL source for the given data directory.
func NewJSONL(dir string) *JSONL {
	return &JSONL{dir: dir}
}

func (s *JSONL) Origin() string { return s.dir + " (jsonl)" }

func (s *JSONL) Paths() []string {
	return []string{
		filepath.Join(s.dir, RosterJSONL),
		filepath.Join(s.dir, ActivityJSONL),
		filepath.Join(s.dir, QueueJSONL),
	}
}

func (s *JSONL) Close() error { return nil }

// Load reads roster, activity and queue concurrently and assembles a
// snapshot. The roster file is required; the others may be absent.
func (s *JSONL) Load(ctx context.Context) (*domain.Snapshot, error) {
	var (
		people  []personRecord
		entries []entryRecord
		queue   []queueRecord
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = scanJSONL[personRecord](ctx, filepath.Join(s.dir, RosterJSONL), true)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = scanJSONL[entryRecord](ctx, filepath.Join(s.dir, ActivityJSONL), false)
		return err
	})
	g.Go(func() error {
		var err error
		queue, err = scanJSONL[queueRecord](ctx, filepath.Join(s.dir, QueueJSONL), false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assemble(people, entries, queue, s.Origin()), nil
}

// scanJSONL decodes one record per line. Malformed lines are skipped so a
// half-written export still mostly loads; the skip count is logged.
func scanJSONL[T any](ctx context.Context, path string, required bool) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var records []T
	scanner := bufio.NewScanner(file)
	// Detail payloads can be large
	const maxCapacity = 1024 * 1024 * 10 // 10MB
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	skipped := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if skipped > 0 {
		log.Printf("source: skipped %d malformed line(s) in %s", skipped, path)
	}

	return records, nil
}
