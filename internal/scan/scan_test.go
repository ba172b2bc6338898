package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anthropics/bx/internal/barrel"
	"github.com/anthropics/bx/internal/cache"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func sortedLoader() *barrel.Loader {
	opts := barrel.DefaultOptions()
	opts.Sort = true
	return barrel.New(opts, nil)
}

func TestRun(t *testing.T) {
	t.Run("reports changed and unchanged files", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"src/index.ts":       "export { B } from './b';\nexport { A } from './a';\n",
			"src/clean/index.ts": "export { A } from \"./a\";\n",
			"src/Button.tsx":     "export const Button = 1;\n",
		})

		summary, err := Run(root, Options{Loader: sortedLoader()})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if summary.Processed != 2 {
			t.Errorf("expected 2 barrel files processed, got %d", summary.Processed)
		}
		if summary.Changed != 1 {
			t.Errorf("expected 1 changed file, got %d", summary.Changed)
		}
		if summary.Failed != 0 {
			t.Errorf("expected no failures, got %d", summary.Failed)
		}
	})

	t.Run("excluded directories are pruned", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"src/index.ts":              "export { A } from './a';\n",
			"node_modules/pkg/index.ts": "export { X } from './x';\nexport { X } from './x';\n",
			"dist/index.ts":             "export { Y } from './y';\n",
		})

		summary, err := Run(root, Options{Loader: sortedLoader()})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if summary.Processed != 1 {
			t.Errorf("expected only src/index.ts, got %d files", summary.Processed)
		}
	})

	t.Run("write rewrites changed files", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"src/index.ts": "export { B } from './b';\nexport { A } from './a';\n",
		})

		summary, err := Run(root, Options{Loader: sortedLoader(), Write: true})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if summary.Changed != 1 {
			t.Fatalf("expected 1 changed file, got %d", summary.Changed)
		}

		content, err := os.ReadFile(filepath.Join(root, "src/index.ts"))
		if err != nil {
			t.Fatal(err)
		}
		want := "export { A } from \"./a\";\nexport { B } from \"./b\";\n"
		if string(content) != want {
			t.Errorf("got:\n%s\nwant:\n%s", content, want)
		}
	})

	t.Run("cache hit with write still rewrites the file", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"src/index.ts": "export { B } from './b';\nexport { A } from './a';\n",
		})
		c, err := cache.Open(t.TempDir())
		if err != nil {
			t.Fatalf("cache.Open: %v", err)
		}
		defer c.Close()

		// Warm the cache without writing.
		if _, err := Run(root, Options{Loader: sortedLoader(), Cache: c, OptionsHash: "sorted"}); err != nil {
			t.Fatalf("warm Run: %v", err)
		}

		summary, err := Run(root, Options{Loader: sortedLoader(), Cache: c, OptionsHash: "sorted", Write: true})
		if err != nil {
			t.Fatalf("write Run: %v", err)
		}
		if summary.Cached != 1 || summary.Changed != 1 {
			t.Fatalf("expected cached changed file, got %+v", summary)
		}

		content, err := os.ReadFile(filepath.Join(root, "src/index.ts"))
		if err != nil {
			t.Fatal(err)
		}
		want := "export { A } from \"./a\";\nexport { B } from \"./b\";\n"
		if string(content) != want {
			t.Errorf("cached output was not written:\n%s", content)
		}
	})

	t.Run("second run hits the cache", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"src/index.ts": "export { B } from './b';\nexport { A } from './a';\n",
		})
		c, err := cache.Open(t.TempDir())
		if err != nil {
			t.Fatalf("cache.Open: %v", err)
		}
		defer c.Close()

		opts := Options{Loader: sortedLoader(), Cache: c, OptionsHash: "sorted"}

		first, err := Run(root, opts)
		if err != nil {
			t.Fatalf("first Run: %v", err)
		}
		if first.Cached != 0 {
			t.Errorf("first run should not hit cache, got %d", first.Cached)
		}

		second, err := Run(root, opts)
		if err != nil {
			t.Fatalf("second Run: %v", err)
		}
		if second.Cached != 1 {
			t.Errorf("second run should hit cache, got %d", second.Cached)
		}
		if second.Changed != 1 {
			t.Errorf("cached result still reports the pending change, got %d", second.Changed)
		}
	})

	t.Run("custom barrel names", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"src/exports.ts": "export { A } from './a';\n",
			"src/index.ts":   "export { B } from './b';\n",
		})
		loader := sortedLoader()
		loader.SetBarrelNames([]string{"exports.ts"})

		summary, err := Run(root, Options{Loader: loader, BarrelNames: []string{"exports.ts"}})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if summary.Processed != 1 {
			t.Errorf("expected only exports.ts, got %d files", summary.Processed)
		}
	})

	t.Run("results sorted by path", func(t *testing.T) {
		root := writeTree(t, map[string]string{
			"z/index.ts": "export { A } from './a';\n",
			"a/index.ts": "export { A } from './a';\n",
			"m/index.ts": "export { A } from './a';\n",
		})

		summary, err := Run(root, Options{Loader: sortedLoader()})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		for i := 1; i < len(summary.Results); i++ {
			if summary.Results[i-1].Path > summary.Results[i].Path {
				t.Errorf("results not sorted: %q before %q", summary.Results[i-1].Path, summary.Results[i].Path)
			}
		}
	})

	t.Run("missing loader", func(t *testing.T) {
		if _, err := Run(t.TempDir(), Options{}); err == nil {
			t.Error("expected error without loader")
		}
	})
}

func TestOptionsFingerprint(t *testing.T) {
	base := barrel.DefaultOptions()

	sorted := base
	sorted.Sort = true
	if OptionsFingerprint(base) == OptionsFingerprint(sorted) {
		t.Error("different option sets must produce different fingerprints")
	}

	noDedupe := base
	noDedupe.RemoveDuplicates = false
	if OptionsFingerprint(base) == OptionsFingerprint(noDedupe) {
		t.Error("duplicate-removal toggle must change the fingerprint")
	}

	if OptionsFingerprint(base) != OptionsFingerprint(base) {
		t.Error("fingerprint must be deterministic")
	}
}
