package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/knadh/koanf/maps"
)

// Entry is a single key/value pair from a theme section.
type Entry struct {
	Key   string
	Value any
}

// spacingDerived lists theme sections that default to the spacing scale.
var spacingDerived = []string{"margin", "padding", "gap"}

// valueOrdered lists theme sections sorted by their numeric value rather
// than by key.
var valueOrdered = map[string]bool{
	"screens":    true,
	"fontSize":   true,
	"fontWeight": true,
	"lineHeight": true,
}

func defaultTheme(cfg Config) map[string]any {
	theme := map[string]any{
		"screens": map[string]any{
			"sm": "640px",
			"md": "768px",
			"lg": "1024px",
			"xl": "1280px",
		},
		"colors": map[string]any{
			"transparent": "transparent",
			"current":     "currentColor",
			"black":       "#000",
			"white":       "#fff",
			"gray": map[string]any{
				"100": "#f7fafc",
				"500": "#a0aec0",
				"900": "#1a202c",
			},
			"red": map[string]any{
				"500": "#f56565",
			},
			"blue": map[string]any{
				"500": "#4299e1",
			},
		},
		"spacing": map[string]any{
			"px": "1px",
			"0":  "0",
			"1":  "0.25rem",
			"2":  "0.5rem",
			"4":  "1rem",
			"8":  "2rem",
		},
		"lineHeight": map[string]any{
			"none":   "1",
			"tight":  "1.25",
			"normal": "1.5",
			"loose":  "2",
		},
		"opacity": map[string]any{
			"0":   "0",
			"50":  "0.5",
			"100": "1",
		},
	}

	if cfg.futureFlag(FlagStandardFontWeights) {
		theme["fontWeight"] = map[string]any{
			"thin": "100", "extralight": "200", "light": "300",
			"normal": "400", "medium": "500", "semibold": "600",
			"bold": "700", "extrabold": "800", "black": "900",
		}
	} else {
		theme["fontWeight"] = map[string]any{
			"hairline": "100", "thin": "200", "light": "300",
			"normal": "400", "medium": "500", "semibold": "600",
			"bold": "700", "extrabold": "800", "black": "900",
		}
	}

	if cfg.futureFlag(FlagDefaultLineHeights) {
		theme["fontSize"] = map[string]any{
			"xs":   []any{"0.75rem", map[string]any{"lineHeight": "1rem"}},
			"sm":   []any{"0.875rem", map[string]any{"lineHeight": "1.25rem"}},
			"base": []any{"1rem", map[string]any{"lineHeight": "1.5rem"}},
			"lg":   []any{"1.125rem", map[string]any{"lineHeight": "1.75rem"}},
			"xl":   []any{"1.25rem", map[string]any{"lineHeight": "1.75rem"}},
		}
	} else {
		theme["fontSize"] = map[string]any{
			"xs":   "0.75rem",
			"sm":   "0.875rem",
			"base": "1rem",
			"lg":   "1.125rem",
			"xl":   "1.25rem",
		}
	}

	return theme
}

// resolveTheme layers the user's theme over the defaults. Top-level keys
// replace the default section, "extend" merges into it.
func resolveTheme(cfg Config) map[string]any {
	theme := defaultTheme(cfg)
	user, _ := asMap(cfg["theme"])
	extend, _ := asMap(user["extend"])

	for key, val := range user {
		if key == "extend" {
			continue
		}
		theme[key] = cloneValue(val)
	}

	derivedLater := make(map[string]bool)
	for _, key := range spacingDerived {
		if _, ok := theme[key]; !ok {
			derivedLater[key] = true
		}
	}

	ext := make(map[string]any, len(extend))
	for key, val := range extend {
		if !derivedLater[key] {
			ext[key] = cloneValue(val)
		}
	}
	maps.Merge(ext, theme)

	for _, key := range spacingDerived {
		if !derivedLater[key] {
			continue
		}
		spacing, _ := asMap(theme["spacing"])
		section := cloneMap(spacing)
		if more, ok := asMap(extend[key]); ok {
			maps.Merge(cloneMap(more), section)
		}
		theme[key] = section
	}

	return theme
}

// themeEntries returns the entries of a theme section in a stable order.
func themeEntries(theme map[string]any, path string) []Entry {
	val, ok := lookupPath(theme, strings.Split(path, "."))
	if !ok {
		return nil
	}
	m, ok := asMap(val)
	if !ok {
		return nil
	}

	section := path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		section = path[i+1:]
	}

	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if valueOrdered[section] {
			vi, iok := leadingNumber(cssValue(entries[i].Value))
			vj, jok := leadingNumber(cssValue(entries[j].Value))
			if iok && jok && vi != vj {
				return vi < vj
			}
		}
		return naturalLess(entries[i].Key, entries[j].Key)
	})
	return entries
}

// flattenColors turns nested color maps into "name-shade" entries.
// A "DEFAULT" shade maps to the bare name.
func flattenColors(theme map[string]any, path string) []Entry {
	var out []Entry
	for _, e := range themeEntries(theme, path) {
		if _, ok := asMap(e.Value); !ok {
			out = append(out, e)
			continue
		}
		for _, shade := range flattenColors(theme, path+"."+e.Key) {
			name := e.Key + "-" + shade.Key
			if shade.Key == "DEFAULT" {
				name = e.Key
			}
			out = append(out, Entry{Key: name, Value: shade.Value})
		}
	}
	return out
}

// naturalLess orders numeric keys numerically and before other keys.
func naturalLess(a, b string) bool {
	na, aerr := strconv.ParseFloat(a, 64)
	nb, berr := strconv.ParseFloat(b, 64)
	switch {
	case aerr == nil && berr == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case aerr == nil:
		return true
	case berr == nil:
		return false
	}
	return a < b
}

// leadingNumber parses the numeric prefix of a CSS length such as "1.5rem".
func leadingNumber(s string) (float64, bool) {
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	return n, err == nil
}
