package engine

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// keyDelim separates koanf key paths. Theme keys such as "0.5" or "1/2"
// contain dots and slashes, so neither can be used.
const keyDelim = "\x1f"

// LoadConfigFile reads a YAML styling configuration. Plugins in a file are
// declarative maps; Go plugins are added by merging a Config in code.
func LoadConfigFile(path string) (Config, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}
	cfg := Config(cloneMap(k.Raw()))
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
