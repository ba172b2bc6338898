package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Options: OptionsConfig{
			RemoveDuplicates: boolPtr(true),
		},
		Resolve: ResolveConfig{
			Extensions: []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"},
		},
		Scan: ScanConfig{
			BarrelNames: []string{"index.ts", "index.js", "index.tsx", "index.jsx"},
			Exclude: []string{
				"node_modules",
				".git",
				"dist",
				"build",
				"out",
				"coverage",
				".next",
			},
			Workers: 0,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Options = mergeOptionsConfig(loaded.Options, defaults.Options)
	result.Resolve = mergeResolveConfig(loaded.Resolve, defaults.Resolve)
	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)

	return result
}

func mergeOptionsConfig(loaded, defaults OptionsConfig) OptionsConfig {
	result := OptionsConfig{}

	// RemoveDuplicates: nil means the field was absent from the file, so
	// the default applies. An explicit false is kept.
	if loaded.RemoveDuplicates != nil {
		result.RemoveDuplicates = loaded.RemoveDuplicates
	} else {
		result.RemoveDuplicates = defaults.RemoveDuplicates
	}

	// The remaining toggles default to false, so the loaded values are
	// used as-is.
	result.Sort = loaded.Sort
	result.ResolveBarrelExports = loaded.ResolveBarrelExports
	result.ConvertNamespaceToNamed = loaded.ConvertNamespaceToNamed

	return result
}

func boolPtr(v bool) *bool {
	return &v
}

func mergeResolveConfig(loaded, defaults ResolveConfig) ResolveConfig {
	result := ResolveConfig{}

	// Use loaded extensions if provided, otherwise defaults
	if len(loaded.Extensions) > 0 {
		result.Extensions = loaded.Extensions
	} else {
		result.Extensions = defaults.Extensions
	}

	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := ScanConfig{}

	// Use loaded barrel names if provided, otherwise defaults
	if len(loaded.BarrelNames) > 0 {
		result.BarrelNames = loaded.BarrelNames
	} else {
		result.BarrelNames = defaults.BarrelNames
	}

	// Use loaded exclude patterns if provided, otherwise defaults
	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	// Workers: use loaded if non-zero
	if loaded.Workers != 0 {
		result.Workers = loaded.Workers
	} else {
		result.Workers = defaults.Workers
	}

	return result
}
