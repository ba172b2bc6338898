package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Options.RemoveDuplicatesEnabled() {
		t.Error("RemoveDuplicates should default to true")
	}
	if cfg.Options.Sort || cfg.Options.ResolveBarrelExports || cfg.Options.ConvertNamespaceToNamed {
		t.Error("remaining stage toggles should default to false")
	}
	if len(cfg.Resolve.Extensions) == 0 || cfg.Resolve.Extensions[0] != ".ts" {
		t.Errorf("unexpected extensions: %v", cfg.Resolve.Extensions)
	}
	if len(cfg.Scan.BarrelNames) == 0 {
		t.Error("barrel names should have defaults")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestMerge(t *testing.T) {
	t.Run("loaded values win", func(t *testing.T) {
		loaded := &Config{
			Options: OptionsConfig{Sort: true},
			Resolve: ResolveConfig{Extensions: []string{".ts"}},
			Scan:    ScanConfig{Workers: 4},
		}
		merged := Merge(loaded, DefaultConfig())

		if !merged.Options.Sort {
			t.Error("loaded Sort should win")
		}
		if len(merged.Resolve.Extensions) != 1 {
			t.Errorf("loaded extensions should win: %v", merged.Resolve.Extensions)
		}
		if merged.Scan.Workers != 4 {
			t.Errorf("loaded workers should win: %d", merged.Scan.Workers)
		}
	})

	t.Run("missing values fall back to defaults", func(t *testing.T) {
		merged := Merge(&Config{}, DefaultConfig())

		if !merged.Options.RemoveDuplicatesEnabled() {
			t.Error("RemoveDuplicates should fall back to true")
		}
		if len(merged.Scan.BarrelNames) == 0 {
			t.Error("barrel names should fall back to defaults")
		}
		if len(merged.Scan.Exclude) == 0 {
			t.Error("exclude list should fall back to defaults")
		}
	})

	t.Run("explicit false survives the merge", func(t *testing.T) {
		off := false
		loaded := &Config{Options: OptionsConfig{RemoveDuplicates: &off}}
		merged := Merge(loaded, DefaultConfig())

		if merged.Options.RemoveDuplicatesEnabled() {
			t.Error("explicit remove_duplicates: false should not be overridden")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"extension without dot", func(c *Config) { c.Resolve.Extensions = []string{"ts"} }},
		{"empty barrel names", func(c *Config) { c.Scan.BarrelNames = nil }},
		{"negative workers", func(c *Config) { c.Scan.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("no config dir returns defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !cfg.Options.RemoveDuplicatesEnabled() {
			t.Error("expected default config")
		}
	})

	t.Run("save and reload", func(t *testing.T) {
		dir := t.TempDir()

		configPath, err := SaveDefault(dir)
		if err != nil {
			t.Fatalf("SaveDefault: %v", err)
		}
		if filepath.Base(configPath) != ConfigFileName {
			t.Errorf("unexpected config path: %s", configPath)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !cfg.Options.RemoveDuplicatesEnabled() {
			t.Error("saved defaults should round-trip")
		}
	})

	t.Run("save twice fails", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := SaveDefault(dir); err != nil {
			t.Fatalf("SaveDefault: %v", err)
		}
		if _, err := SaveDefault(dir); err == nil {
			t.Error("second SaveDefault should fail")
		}
	})

	t.Run("partial config merges with defaults", func(t *testing.T) {
		dir := t.TempDir()
		configDir := filepath.Join(dir, ConfigDirName)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatal(err)
		}
		content := "options:\n  sort: true\n"
		if err := os.WriteFile(filepath.Join(configDir, ConfigFileName), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !cfg.Options.Sort {
			t.Error("loaded sort should be true")
		}
		if !cfg.Options.RemoveDuplicatesEnabled() {
			t.Error("absent remove_duplicates should default to true")
		}
		if len(cfg.Scan.BarrelNames) == 0 {
			t.Error("unset fields should merge from defaults")
		}
	})

	t.Run("remove_duplicates false in file is honored", func(t *testing.T) {
		dir := t.TempDir()
		configDir := filepath.Join(dir, ConfigDirName)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatal(err)
		}
		content := "options:\n  remove_duplicates: false\n"
		if err := os.WriteFile(filepath.Join(configDir, ConfigFileName), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Options.RemoveDuplicatesEnabled() {
			t.Error("explicit remove_duplicates: false should be honored")
		}
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("options: ["), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFromPath(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestFindConfigDir(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, ConfigDirName)
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("walks up from nested dir", func(t *testing.T) {
		found, err := FindConfigDir(nested)
		if err != nil {
			t.Fatalf("FindConfigDir: %v", err)
		}
		if found != configDir {
			t.Errorf("got %q, want %q", found, configDir)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := FindConfigDir(t.TempDir())
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}
