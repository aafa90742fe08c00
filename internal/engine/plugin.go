package engine

import (
	"fmt"
)

// Plugin registers styles with the engine.
type Plugin interface {
	Register(api *PluginAPI) error
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(api *PluginAPI) error

// Register calls f(api).
func (f PluginFunc) Register(api *PluginAPI) error {
	return f(api)
}

// PluginAPI is handed to every plugin during registration.
type PluginAPI struct {
	b    *builder
	name string
}

// Name identifies the plugin being registered, e.g. "core/textColor".
func (api *PluginAPI) Name() string {
	return api.name
}

// AddUtilities registers utility rules. Class names get the configured
// prefix and declarations honor the important option. variants are applied
// once every plugin has registered.
func (api *PluginAPI) AddUtilities(rules []Rule, variants ...string) {
	b := api.b
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		r.Selector = prefixClasses(r.Selector, b.prefix)
		switch imp := b.important.(type) {
		case bool:
			if imp {
				decls := make([]Decl, len(r.Decls))
				for i, d := range r.Decls {
					d.Important = true
					decls[i] = d
				}
				r.Decls = decls
			}
		case string:
			if imp != "" {
				r.Selector = modifySelector(r.Selector, func(part string) string {
					return imp + " " + part
				})
			}
		}
		out = append(out, r)
	}
	b.groups = append(b.groups, group{layer: layerUtilities, rules: out, variants: variants})
}

// AddComponents registers component rules. Class names get the configured prefix.
func (api *PluginAPI) AddComponents(rules []Rule, variants ...string) {
	b := api.b
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		r.Selector = prefixClasses(r.Selector, b.prefix)
		out = append(out, r)
	}
	b.groups = append(b.groups, group{layer: layerComponents, rules: out, variants: variants})
}

// AddBase registers base styles, emitted as-is.
func (api *PluginAPI) AddBase(nodes ...Node) {
	l := api.b.layers[layerBase]
	l.nodes = append(l.nodes, nodes...)
}

// AddVariant registers a variant usable by any plugin's variants list.
func (api *PluginAPI) AddVariant(name string, fn VariantFunc) {
	api.b.variants[name] = fn
}

// E escapes a class name.
func (api *PluginAPI) E(className string) string {
	return Escape(className)
}

// Prefix applies the configured class prefix to a selector.
func (api *PluginAPI) Prefix(selector string) string {
	return prefixClasses(selector, api.b.prefix)
}

// Separator returns the configured variant separator.
func (api *PluginAPI) Separator() string {
	return api.b.sep
}

// Theme looks up a resolved theme value by dot path.
func (api *PluginAPI) Theme(path string) (any, bool) {
	return lookupPath(api.b.theme, splitPath(path))
}

// ThemeEntries returns a resolved theme section in a stable order.
func (api *PluginAPI) ThemeEntries(path string) []Entry {
	return themeEntries(api.b.theme, path)
}

// Config looks up a raw configuration value by dot path.
func (api *PluginAPI) Config(path string) (any, bool) {
	return api.b.cfg.Lookup(path)
}

// Variants returns the configured variants for a plugin, or defaults.
func (api *PluginAPI) Variants(plugin string, defaults ...string) []string {
	m, _ := asMap(api.b.cfg["variants"])
	if v, ok := asStrings(m[plugin]); ok {
		return v
	}
	return defaults
}

// CorePluginEnabled reports whether a core plugin is switched on.
func (api *PluginAPI) CorePluginEnabled(name string) bool {
	return api.b.cfg.corePluginEnabled(name)
}

// Warn emits a warning through the engine logger.
func (api *PluginAPI) Warn(lines ...string) {
	warn(api.b.log, lines...)
}

// configPlugins reads the "plugins" option. Items are Plugin values,
// plugin functions, or declarative maps with utilities, components, base
// and variants keys.
func configPlugins(val any) ([]Plugin, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case []Plugin:
		return v, nil
	case []any:
		plugins := make([]Plugin, 0, len(v))
		for i, item := range v {
			switch p := item.(type) {
			case Plugin:
				plugins = append(plugins, p)
			case func(*PluginAPI) error:
				plugins = append(plugins, PluginFunc(p))
			default:
				m, ok := asMap(item)
				if !ok {
					return nil, &ConfigError{Key: fmt.Sprintf("plugins[%d]", i), Reason: "must be a plugin or a map"}
				}
				dp, err := pluginFromMap(m)
				if err != nil {
					return nil, &ConfigError{Key: fmt.Sprintf("plugins[%d]", i), Reason: err.Error()}
				}
				plugins = append(plugins, dp)
			}
		}
		return plugins, nil
	}
	return nil, &ConfigError{Key: "plugins", Reason: "must be a list"}
}

type declarativePlugin struct {
	base       []Rule
	components []Rule
	utilities  []Rule
	variants   []string
}

func (p declarativePlugin) Register(api *PluginAPI) error {
	for _, r := range p.base {
		api.AddBase(r)
	}
	if len(p.components) > 0 {
		api.AddComponents(p.components, p.variants...)
	}
	if len(p.utilities) > 0 {
		api.AddUtilities(p.utilities, p.variants...)
	}
	return nil
}

func pluginFromMap(m map[string]any) (Plugin, error) {
	var p declarativePlugin
	for _, key := range sortedKeys(m) {
		var err error
		switch key {
		case "base":
			p.base, err = rulesFromMap(m[key])
		case "components":
			p.components, err = rulesFromMap(m[key])
		case "utilities":
			p.utilities, err = rulesFromMap(m[key])
		case "variants":
			v, ok := asStrings(m[key])
			if !ok {
				return nil, fmt.Errorf("variants must be a list of names")
			}
			p.variants = v
		default:
			return nil, fmt.Errorf("unknown plugin key %q", key)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return p, nil
}

// rulesFromMap reads {selector: {prop: value}}. Selectors and properties
// come out sorted since map order is not stable.
func rulesFromMap(val any) ([]Rule, error) {
	m, ok := asMap(val)
	if !ok {
		return nil, fmt.Errorf("must map selectors to declarations")
	}
	rules := make([]Rule, 0, len(m))
	for _, sel := range sortedKeys(m) {
		props, ok := asMap(m[sel])
		if !ok {
			return nil, fmt.Errorf("%s: must map properties to values", sel)
		}
		keys := sortedKeys(props)
		decls := make([]Decl, 0, len(keys))
		for _, k := range keys {
			decls = append(decls, D(k, cssValue(props[k])))
		}
		rules = append(rules, NewRule(sel, decls...))
	}
	return rules, nil
}
