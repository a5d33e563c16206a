package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/conc/pool"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/hackerhouse/hhboard/internal/config"
	"github.com/hackerhouse/hhboard/internal/leaderboard"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

// document is the shape of one data file. A file may carry pre-aggregated
// entries, raw activities, or both.
type document struct {
	Entries    []leaderboard.Entry `yaml:"entries"`
	Activities []Activity          `yaml:"activities"`
}

type loaded struct {
	path string
	doc  document
}

// FileSource reads entries and activities from files under Root.
type FileSource struct {
	Root        string
	Patterns    []string
	Concurrency int
	Table       *scoring.Table
	Now         func() time.Time
}

// Entries discovers the data files, loads them in parallel and merges them.
// Activities from all files are aggregated together; pre-aggregated entries
// are appended after them in file order.
func (fs *FileSource) Entries(ctx context.Context) ([]leaderboard.Entry, error) {
	paths, err := fs.discover()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w under %s (patterns: %s)", ErrNoData, fs.Root, strings.Join(fs.patterns(), ", "))
	}

	workers := fs.Concurrency
	if workers < 1 {
		workers = 1
	}

	p := pool.NewWithResults[loaded]().
		WithContext(ctx).
		WithMaxGoroutines(workers)
	for _, rel := range paths {
		rel := rel
		p.Go(func(ctx context.Context) (loaded, error) {
			if err := ctx.Err(); err != nil {
				return loaded{}, err
			}
			doc, err := readDocument(filepath.Join(fs.Root, rel))
			if err != nil {
				return loaded{}, err
			}
			slog.Debug("source.file_loaded", "path", rel, "entries", len(doc.Entries), "activities", len(doc.Activities))
			return loaded{path: rel, doc: doc}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].path < results[j].path
	})

	var activities []Activity
	var entries []leaderboard.Entry
	for _, r := range results {
		activities = append(activities, r.doc.Activities...)
		entries = append(entries, r.doc.Entries...)
	}

	now := time.Now
	if fs.Now != nil {
		now = fs.Now
	}
	return append(Aggregate(activities, fs.Table, now()), entries...), nil
}

func (fs *FileSource) patterns() []string {
	if len(fs.Patterns) == 0 {
		return config.DefaultDataPatterns
	}
	return fs.Patterns
}

// discover returns the matching regular files relative to Root, sorted and
// without duplicates.
func (fs *FileSource) discover() ([]string, error) {
	fsys := os.DirFS(fs.Root)
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range fs.patterns() {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(filepath.Join(fs.Root, match))
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// readDocument decodes a YAML or JSON data file. JSON is read with the YAML
// decoder, which accepts it unchanged.
func readDocument(path string) (document, error) {
	var doc document

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return doc, fmt.Errorf("%s: unsupported data file type", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("failed to read data file: %w", err)
	}
	if err := yamlv3.Unmarshal(content, &doc); err != nil {
		return doc, fmt.Errorf("%s: error parsing data file: %w", path, err)
	}
	return doc, nil
}
