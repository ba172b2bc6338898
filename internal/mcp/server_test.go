package mcp

import (
	"testing"

	"github.com/anthropics/bx/internal/config"
	"github.com/anthropics/bx/internal/scan"
)

func testServer() *Server {
	return &Server{cfg: config.DefaultConfig()}
}

func TestOptions(t *testing.T) {
	t.Run("defaults without overrides", func(t *testing.T) {
		opts := testServer().options(map[string]any{})
		if !opts.RemoveDuplicates {
			t.Error("RemoveDuplicates should default to true")
		}
		if opts.Sort || opts.ResolveBarrelExports || opts.ConvertNamespaceToNamed {
			t.Errorf("remaining stages should default off: %+v", opts)
		}
	})

	t.Run("call arguments override config", func(t *testing.T) {
		opts := testServer().options(map[string]any{
			"sort":              true,
			"remove_duplicates": false,
			"resolve_barrel":    true,
		})
		if !opts.Sort || !opts.ResolveBarrelExports {
			t.Errorf("overrides not applied: %+v", opts)
		}
		if opts.RemoveDuplicates {
			t.Error("remove_duplicates override should disable the stage")
		}
	})

	t.Run("cache key follows the effective options", func(t *testing.T) {
		s := testServer()
		defaults := s.options(map[string]any{})
		overridden := s.options(map[string]any{"sort": true})

		if scan.OptionsFingerprint(defaults) == scan.OptionsFingerprint(overridden) {
			t.Error("overridden options must not share a cache key with the defaults")
		}
	})
}
