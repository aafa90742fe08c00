package engine

import (
	"strings"
)

// corePluginOrder is the order core utilities are emitted in.
var corePluginOrder = []string{
	"display",
	"backgroundColor",
	"textColor",
	"fontSize",
	"fontWeight",
	"lineHeight",
	"opacity",
	"margin",
	"padding",
	"gap",
}

var corePlugins = map[string]Plugin{
	"display":         PluginFunc(displayPlugin),
	"backgroundColor": colorPlugin("backgroundColor", "bg", "background-color"),
	"textColor":       colorPlugin("textColor", "text", "color"),
	"fontSize":        PluginFunc(fontSizePlugin),
	"fontWeight":      scalePlugin("fontWeight", "font", "font-weight"),
	"lineHeight":      scalePlugin("lineHeight", "leading", "line-height"),
	"opacity":         scalePlugin("opacity", "opacity", "opacity"),
	"margin":          PluginFunc(marginPlugin),
	"padding":         PluginFunc(paddingPlugin),
	"gap":             PluginFunc(gapPlugin),
}

// className joins a utility base and a theme key. "DEFAULT" drops the key.
func className(base, key string) string {
	if key == "DEFAULT" {
		return base
	}
	return base + "-" + key
}

func displayPlugin(api *PluginAPI) error {
	values := []struct{ name, value string }{
		{"block", "block"},
		{"inline-block", "inline-block"},
		{"inline", "inline"},
		{"flex", "flex"},
		{"inline-flex", "inline-flex"},
		{"grid", "grid"},
		{"hidden", "none"},
	}
	rules := make([]Rule, 0, len(values))
	for _, v := range values {
		rules = append(rules, NewRule("."+api.E(v.name), D("display", v.value)))
	}
	api.AddUtilities(rules, api.Variants("display", "responsive")...)
	return nil
}

func colorPlugin(name, base, prop string) Plugin {
	return PluginFunc(func(api *PluginAPI) error {
		defaults := []string{"responsive", "hover", "focus"}
		if mode, _ := api.b.cfg["darkMode"].(string); mode != "" {
			defaults = append([]string{"dark"}, defaults...)
		}
		var rules []Rule
		for _, e := range flattenColors(api.b.theme, "colors") {
			rules = append(rules, NewRule("."+api.E(className(base, e.Key)), D(prop, cssValue(e.Value))))
		}
		api.AddUtilities(rules, api.Variants(name, defaults...)...)
		return nil
	})
}

// scalePlugin maps a theme section one-to-one onto a single property.
func scalePlugin(section, base, prop string) Plugin {
	return PluginFunc(func(api *PluginAPI) error {
		var rules []Rule
		for _, e := range api.ThemeEntries(section) {
			rules = append(rules, NewRule("."+api.E(className(base, e.Key)), D(prop, cssValue(e.Value))))
		}
		api.AddUtilities(rules, api.Variants(section, "responsive")...)
		return nil
	})
}

// tupleExtra returns the second element of a [size, extra] theme value.
func tupleExtra(v any) (any, bool) {
	switch t := v.(type) {
	case []any:
		if len(t) > 1 {
			return t[1], true
		}
	case []string:
		if len(t) > 1 {
			return t[1], true
		}
	}
	return nil, false
}

// fontSizePlugin accepts plain sizes or [size, lineHeight] tuples where
// lineHeight is a string or {lineHeight, letterSpacing}.
func fontSizePlugin(api *PluginAPI) error {
	var rules []Rule
	for _, e := range api.ThemeEntries("fontSize") {
		decls := []Decl{D("font-size", cssValue(e.Value))}
		if extra, ok := tupleExtra(e.Value); ok {
			switch extra := extra.(type) {
			case string:
				decls = append(decls, D("line-height", extra))
			default:
				if opts, ok := asMap(extra); ok {
					if lh, ok := opts["lineHeight"]; ok {
						decls = append(decls, D("line-height", cssValue(lh)))
					}
					if ls, ok := opts["letterSpacing"]; ok {
						decls = append(decls, D("letter-spacing", cssValue(ls)))
					}
				}
			}
		}
		rules = append(rules, NewRule("."+api.E(className("text", e.Key)), decls...))
	}
	api.AddUtilities(rules, api.Variants("fontSize", "responsive")...)
	return nil
}

var sides = []struct {
	suffix string
	props  []string
}{
	{"", nil},
	{"y", []string{"top", "bottom"}},
	{"x", []string{"right", "left"}},
	{"t", []string{"top"}},
	{"r", []string{"right"}},
	{"b", []string{"bottom"}},
	{"l", []string{"left"}},
}

// spacingRules builds m-*, mx-*, mt-* style utilities. Negative variants
// are produced for non-zero lengths when negative is set.
func spacingRules(api *PluginAPI, section, base, prop string, negative bool) []Rule {
	var rules []Rule
	for _, side := range sides {
		for _, e := range api.ThemeEntries(section) {
			value := cssValue(e.Value)
			rules = append(rules, sideRule(api, base+side.suffix, e.Key, prop, side.props, value))
			if negative && isNegatable(value) {
				rules = append(rules, sideRule(api, "-"+base+side.suffix, e.Key, prop, side.props, "-"+value))
			}
		}
	}
	return rules
}

func sideRule(api *PluginAPI, base, key, prop string, sides []string, value string) Rule {
	sel := "." + api.E(className(base, key))
	if len(sides) == 0 {
		return NewRule(sel, D(prop, value))
	}
	decls := make([]Decl, 0, len(sides))
	for _, s := range sides {
		decls = append(decls, D(prop+"-"+s, value))
	}
	return NewRule(sel, decls...)
}

func isNegatable(value string) bool {
	if value == "0" || value == "auto" || strings.HasPrefix(value, "-") {
		return false
	}
	_, ok := leadingNumber(value)
	return ok
}

func marginPlugin(api *PluginAPI) error {
	api.AddUtilities(spacingRules(api, "margin", "m", "margin", true), api.Variants("margin", "responsive")...)
	return nil
}

func paddingPlugin(api *PluginAPI) error {
	api.AddUtilities(spacingRules(api, "padding", "p", "padding", false), api.Variants("padding", "responsive")...)
	return nil
}

func gapPlugin(api *PluginAPI) error {
	deprecated := !api.b.cfg.futureFlag(FlagRemoveDeprecatedGapUtilities)
	var rules []Rule
	for _, e := range api.ThemeEntries("gap") {
		value := cssValue(e.Value)
		rules = append(rules,
			NewRule("."+api.E(className("gap", e.Key)), D("gap", value)),
			NewRule("."+api.E(className("gap-x", e.Key)), D("column-gap", value)),
			NewRule("."+api.E(className("gap-y", e.Key)), D("row-gap", value)),
		)
		if deprecated {
			rules = append(rules,
				NewRule("."+api.E(className("col-gap", e.Key)), D("column-gap", value)),
				NewRule("."+api.E(className("row-gap", e.Key)), D("row-gap", value)),
			)
		}
	}
	api.AddUtilities(rules, api.Variants("gap", "responsive")...)
	return nil
}
