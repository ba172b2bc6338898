package fsys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMem(t *testing.T) {
	fs := NewMem(map[string]string{
		"src/a.ts": "export const a = 1;",
		"src/b.ts": "",
	})

	t.Run("read existing", func(t *testing.T) {
		content, err := fs.ReadFile("src/a.ts")
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(content) != "export const a = 1;" {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("read missing", func(t *testing.T) {
		_, err := fs.ReadFile("src/missing.ts")
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !os.IsNotExist(err) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("exists", func(t *testing.T) {
		if !fs.Exists("src/a.ts") {
			t.Error("src/a.ts should exist")
		}
		if !fs.Exists("src/b.ts") {
			t.Error("empty files still exist")
		}
		if fs.Exists("src/missing.ts") {
			t.Error("src/missing.ts should not exist")
		}
	})

	t.Run("paths sorted", func(t *testing.T) {
		paths := fs.Paths()
		if len(paths) != 2 || paths[0] != "src/a.ts" || paths[1] != "src/b.ts" {
			t.Errorf("unexpected paths: %v", paths)
		}
	})

	t.Run("nil map", func(t *testing.T) {
		empty := NewMem(nil)
		if empty.Exists("anything") {
			t.Error("empty FS should have no files")
		}
	})
}

func TestOS(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.ts")
	if err := os.WriteFile(file, []byte("export {};"), 0644); err != nil {
		t.Fatal(err)
	}

	var fs OS

	t.Run("read file", func(t *testing.T) {
		content, err := fs.ReadFile(file)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(content) != "export {};" {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("regular file exists", func(t *testing.T) {
		if !fs.Exists(file) {
			t.Error("file should exist")
		}
	})

	t.Run("directory does not count", func(t *testing.T) {
		if fs.Exists(dir) {
			t.Error("directories should not satisfy Exists")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if fs.Exists(filepath.Join(dir, "nope.ts")) {
			t.Error("missing file should not exist")
		}
	})
}
