// Package scan walks a directory tree, finds barrel files, and processes
// each one through the transformation pipeline. Independent files share no
// mutable state — each Process call owns its resolution context — so they
// are processed concurrently with a bounded worker pool.
package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/anthropics/bx/internal/barrel"
	"github.com/anthropics/bx/internal/cache"
	"github.com/anthropics/bx/internal/exclude"
)

// Options configures a scan run.
type Options struct {
	// Loader processes each barrel file.
	Loader *barrel.Loader
	// BarrelNames are the basenames treated as barrel files.
	BarrelNames []string
	// Exclude decides which directories are skipped.
	Exclude *exclude.Matcher
	// Workers bounds concurrency (0 = number of CPUs).
	Workers int
	// Cache, when non-nil, skips files whose content and options are
	// unchanged since the previous run.
	Cache *cache.Cache
	// OptionsHash fingerprints the pipeline options for cache keys.
	OptionsHash string
	// Write rewrites changed files in place instead of reporting only.
	Write bool
}

// OptionsFingerprint renders a pipeline option set as a stable cache key
// fragment. Cached output is only valid for the exact option set that
// produced it, so every host must fingerprint the options it actually
// hands the loader.
func OptionsFingerprint(o barrel.Options) string {
	return fmt.Sprintf("dedupe=%t,sort=%t,resolve=%t,convert=%t",
		o.RemoveDuplicates, o.Sort, o.ResolveBarrelExports, o.ConvertNamespaceToNamed)
}

// Result describes the outcome for a single barrel file.
type Result struct {
	Path    string
	Changed bool
	Cached  bool
	Err     error
}

// Summary aggregates a scan run.
type Summary struct {
	Processed int
	Changed   int
	Cached    int
	Failed    int
	Results   []Result
}

// Run walks root and processes every barrel file found. File-level errors
// are recorded per result, not returned; the returned error covers only
// the walk itself.
func Run(root string, opts Options) (*Summary, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("scan: loader is required")
	}
	if len(opts.BarrelNames) == 0 {
		opts.BarrelNames = barrel.DefaultBarrelNames
	}
	if opts.Exclude == nil {
		opts.Exclude = exclude.NewMatcher(nil)
	}

	paths, err := collectBarrelFiles(root, opts.BarrelNames, opts.Exclude)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu      sync.Mutex
		results []Result
	)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, path := range paths {
		g.Go(func() error {
			res := processOne(path, opts)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	summary := &Summary{Results: results}
	for _, r := range results {
		summary.Processed++
		if r.Err != nil {
			summary.Failed++
			continue
		}
		if r.Cached {
			summary.Cached++
		}
		if r.Changed {
			summary.Changed++
		}
	}
	return summary, nil
}

// collectBarrelFiles walks root and returns every barrel file path, with
// excluded directories pruned from the walk.
func collectBarrelFiles(root string, barrelNames []string, matcher *exclude.Matcher) ([]string, error) {
	names := make(map[string]struct{}, len(barrelNames))
	for _, n := range barrelNames {
		names[n] = struct{}{}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			if path != root && matcher.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := names[d.Name()]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

// processOne runs the pipeline for a single barrel file.
func processOne(path string, opts Options) Result {
	res := Result{Path: path}

	source, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		return res
	}

	contentHash := hashContent(source)
	if opts.Cache != nil {
		if output, hit, err := opts.Cache.Get(path, contentHash, opts.OptionsHash); err == nil && hit {
			res.Cached = true
			res.Changed = output != string(source)
			if res.Changed && opts.Write {
				if err := os.WriteFile(path, []byte(output), 0644); err != nil {
					res.Err = fmt.Errorf("writing %s: %w", path, err)
				}
			}
			return res
		}
	}

	transformed := opts.Loader.Process(string(source), path)
	res.Changed = transformed != string(source)

	if opts.Cache != nil {
		// Cache write failures are not worth failing the file for.
		_ = opts.Cache.Put(path, contentHash, opts.OptionsHash, transformed)
	}

	if res.Changed && opts.Write {
		if err := os.WriteFile(path, []byte(transformed), 0644); err != nil {
			res.Err = fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return res
}

// hashContent returns the hex SHA-256 of file content.
func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
