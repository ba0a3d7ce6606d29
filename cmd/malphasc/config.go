package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config holds the settings a --config file may override, layered under
// whatever cobra flags the user passes on the command line.
type config struct {
	ModuleName string `yaml:"module_name"`

	// Constants seeds the named-constant table SPEC_FULL.md §6 recovers
	// from original_source/crates/compiler/src/lib.rs's `constants:
	// HashMap<&str, Value>` (there seeded with `"pi"` as an f64): bare
	// identifiers that resolve to no local or parameter fall back to this
	// table before UnknownName is raised.
	Constants map[string]float64 `yaml:"constants"`
}

func loadConfig(path string) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, err
	}
	return c, nil
}
