package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/knadh/koanf/maps"
)

// Config is a styling configuration: theme, enabled core plugins, future
// flags, variants and plugins. Nested values are maps, slices and scalars,
// except "plugins" which may also hold Plugin values.
type Config map[string]any

// Future flags understood by the engine.
const (
	FlagRemoveDeprecatedGapUtilities = "removeDeprecatedGapUtilities"
	FlagPurgeLayersByDefault         = "purgeLayersByDefault"
	FlagDefaultLineHeights           = "defaultLineHeights"
	FlagStandardFontWeights          = "standardFontWeights"
)

var futureFlags = []string{
	FlagRemoveDeprecatedGapUtilities,
	FlagPurgeLayersByDefault,
	FlagDefaultLineHeights,
	FlagStandardFontWeights,
}

// experimentalFlags are accepted and ignored.
var experimentalFlags = []string{
	"applyComplexClasses",
	"extendedSpacingScale",
	"extendedFontSizeScale",
	"uniformColorPalette",
	"additionalBreakpoint",
}

var knownKeys = map[string]bool{
	"theme":        true,
	"experimental": true,
	"corePlugins":  true,
	"future":       true,
	"variants":     true,
	"prefix":       true,
	"important":    true,
	"separator":    true,
	"plugins":      true,
	"purge":        true,
	"darkMode":     true,
	"target":       true,
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %q: %s", e.Key, e.Reason)
}

// Merge deep-merges override onto base and returns a new Config.
// Keys from override win; nested maps merge, slices are replaced.
// Neither input is modified.
func Merge(base, override Config) Config {
	out := cloneMap(base)
	maps.Merge(cloneMap(override), out)
	return Config(out)
}

// Validate checks the shape of cfg without resolving it.
func Validate(cfg Config) error {
	for _, key := range sortedKeys(cfg) {
		val := cfg[key]
		if !knownKeys[key] {
			return &ConfigError{Key: key, Reason: "unknown configuration key"}
		}
		if err := validateKey(key, val); err != nil {
			return err
		}
	}
	return nil
}

func validateKey(key string, val any) error {
	switch key {
	case "theme", "variants":
		m, ok := asMap(val)
		if !ok {
			return &ConfigError{Key: key, Reason: "must be a map"}
		}
		if key == "variants" {
			for name, v := range m {
				if _, ok := asStrings(v); !ok {
					return &ConfigError{Key: "variants." + name, Reason: "must be a list of variant names"}
				}
			}
		}
	case "corePlugins":
		return validateCorePlugins(val)
	case "future", "experimental":
		m, ok := asMap(val)
		if !ok {
			return &ConfigError{Key: key, Reason: "must be a map of flags"}
		}
		known := futureFlags
		if key == "experimental" {
			known = experimentalFlags
		}
		for _, name := range sortedKeys(m) {
			if !contains(known, name) {
				return &ConfigError{Key: key + "." + name, Reason: "unknown " + key + " flag"}
			}
			if _, ok := m[name].(bool); !ok {
				return &ConfigError{Key: key + "." + name, Reason: "must be a boolean"}
			}
		}
	case "prefix", "separator":
		if _, ok := val.(string); !ok {
			return &ConfigError{Key: key, Reason: "must be a string"}
		}
	case "important":
		switch val.(type) {
		case bool, string:
		default:
			return &ConfigError{Key: key, Reason: "must be a boolean or a selector"}
		}
	case "darkMode":
		switch val {
		case false, "media", "class":
		default:
			return &ConfigError{Key: key, Reason: `must be false, "media" or "class"`}
		}
	case "plugins":
		_, err := configPlugins(val)
		return err
	case "purge":
		_, err := purgeOptionsFrom(val)
		return err
	}
	return nil
}

func validateCorePlugins(val any) error {
	if _, ok := val.(bool); ok {
		return nil
	}
	if m, ok := asMap(val); ok {
		for name, enabled := range m {
			if _, ok := corePlugins[name]; !ok {
				return &ConfigError{Key: "corePlugins." + name, Reason: "unknown core plugin"}
			}
			if _, ok := enabled.(bool); !ok {
				return &ConfigError{Key: "corePlugins." + name, Reason: "must be a boolean"}
			}
		}
		return nil
	}
	names, ok := asStrings(val)
	if !ok {
		return &ConfigError{Key: "corePlugins", Reason: "must be a boolean, a list or a map"}
	}
	for _, name := range names {
		if _, ok := corePlugins[name]; !ok {
			return &ConfigError{Key: "corePlugins", Reason: fmt.Sprintf("unknown core plugin %q", name)}
		}
	}
	return nil
}

// corePluginEnabled resolves the corePlugins option for one plugin.
func (c Config) corePluginEnabled(name string) bool {
	val, ok := c["corePlugins"]
	if !ok {
		return true
	}
	if on, ok := val.(bool); ok {
		return on
	}
	if m, ok := asMap(val); ok {
		enabled, set := m[name].(bool)
		return !set || enabled
	}
	names, _ := asStrings(val)
	return contains(names, name)
}

// futureFlag reports whether a future flag is switched on.
func (c Config) futureFlag(name string) bool {
	m, _ := asMap(c["future"])
	on, _ := m[name].(bool)
	return on
}

// Lookup returns the value at a dot separated path.
func (c Config) Lookup(path string) (any, bool) {
	return lookupPath(c, splitPath(path))
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}

// lookupPath walks nested maps, preferring the longest key that matches so
// that keys containing dots ("0.5") resolve.
func lookupPath(m map[string]any, parts []string) (any, bool) {
	for i := len(parts); i > 0; i-- {
		v, ok := m[strings.Join(parts[:i], ".")]
		if !ok {
			continue
		}
		if i == len(parts) {
			return v, true
		}
		if sub, ok := asMap(v); ok {
			if found, ok := lookupPath(sub, parts[i:]); ok {
				return found, true
			}
		}
	}
	return nil, false
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies maps and slices so merges never alias caller data.
// Every map flavour is converted to map[string]any so maps.Merge recurses.
func cloneValue(v any) any {
	switch t := v.(type) {
	case Config:
		return cloneMap(t)
	case map[string]any:
		return cloneMap(t)
	case map[string]string, map[any]any:
		m, _ := asMap(t)
		return cloneMap(m)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case Config:
		return t, true
	case map[string]any:
		return t, true
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return m, true
	case map[string]bool:
		m := make(map[string]any, len(t))
		for k, b := range t {
			m[k] = b
		}
		return m, true
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[fmt.Sprint(k)] = s
		}
		return m, true
	}
	return nil, false
}

func asStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// cssValue renders a theme value as CSS text. Tuples render their first item.
func cssValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		if len(t) > 0 {
			return cssValue(t[0])
		}
		return ""
	case []string:
		if len(t) > 0 {
			return t[0]
		}
		return ""
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}
