package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Source supplies raw listing records to the store. The engine treats it as a
// batch collaborator: one Fetch per load.
type Source interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// FileSource reads JSON catalog files (each an array of records). Multiple
// files are read concurrently and concatenated in path order so the resulting
// record order is stable regardless of read completion order.
type FileSource struct {
	Paths []string
}

func (f FileSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	if len(f.Paths) == 0 {
		return nil, fmt.Errorf("catalog: no files configured")
	}

	var mu sync.Mutex
	byPath := make(map[string][]RawRecord, len(f.Paths))

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range f.Paths {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := readCatalogFile(p)
			if err != nil {
				return fmt.Errorf("catalog %s: %w", p, err)
			}
			mu.Lock()
			byPath[p] = recs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := append([]string(nil), f.Paths...)
	sort.Strings(paths)

	var out []RawRecord
	for _, p := range paths {
		out = append(out, byPath[p]...)
	}
	return out, nil
}

func readCatalogFile(path string) ([]RawRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recs []RawRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return recs, nil
}

// StaticSource serves a fixed record slice, mainly for tests and seeding.
type StaticSource []RawRecord

func (s StaticSource) Fetch(context.Context) ([]RawRecord, error) {
	return s, nil
}
