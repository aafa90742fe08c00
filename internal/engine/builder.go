package engine

import (
	"fmt"

	"github.com/go-logr/logr"
)

const (
	layerBase       = "base"
	layerComponents = "components"
	layerUtilities  = "utilities"
)

// group is one AddUtilities/AddComponents call awaiting variant expansion.
type group struct {
	layer    string
	rules    []Rule
	variants []string
}

type layer struct {
	nodes      []Node
	responsive [][]Node
}

// builder collects the output of every plugin for one Process call.
type builder struct {
	cfg       Config
	theme     map[string]any
	sep       string
	prefix    string
	important any
	variants  map[string]VariantFunc
	groups    []group
	layers    map[string]*layer
	purge     *purger
	log       logr.Logger

	applyIndex map[string][]Decl
}

func newBuilder(cfg Config, log logr.Logger) *builder {
	sep := ":"
	if s, ok := cfg["separator"].(string); ok && s != "" {
		sep = s
	}
	prefix, _ := cfg["prefix"].(string)
	darkMode, _ := cfg["darkMode"].(string)

	return &builder{
		cfg:       cfg,
		theme:     resolveTheme(cfg),
		sep:       sep,
		prefix:    prefix,
		important: cfg["important"],
		variants:  builtinVariants(darkMode),
		layers: map[string]*layer{
			layerBase:       {},
			layerComponents: {},
			layerUtilities:  {},
		},
		log: log,
	}
}

func (b *builder) api(name string) *PluginAPI {
	return &PluginAPI{b: b, name: name}
}

// registerPlugins runs the enabled core plugins, then the user's plugins,
// then expands variants.
func (b *builder) registerPlugins() error {
	core := 0
	for _, name := range corePluginOrder {
		if !b.cfg.corePluginEnabled(name) {
			continue
		}
		core++
		if err := corePlugins[name].Register(b.api("core/" + name)); err != nil {
			return fmt.Errorf("core plugin %s: %w", name, err)
		}
	}

	plugins, err := configPlugins(b.cfg["plugins"])
	if err != nil {
		return err
	}
	for i, p := range plugins {
		if err := p.Register(b.api(fmt.Sprintf("plugins[%d]", i))); err != nil {
			return fmt.Errorf("plugin %d: %w", i, err)
		}
	}
	b.log.V(1).Info("plugins registered", "core", core, "user", len(plugins))

	return b.expandVariants()
}

func (b *builder) expandVariants() error {
	for _, g := range b.groups {
		nodes := make([]Node, 0, len(g.rules)*(len(g.variants)+1))
		for _, r := range g.rules {
			nodes = append(nodes, r)
		}

		responsive := false
		for _, v := range g.variants {
			if v == "responsive" {
				responsive = true
				continue
			}
			fn, ok := b.variants[v]
			if !ok {
				return &ConfigError{Key: "variants", Reason: fmt.Sprintf("variant %q is not defined", v)}
			}
			for _, r := range g.rules {
				nodes = append(nodes, fn(r, b.sep))
			}
		}

		l := b.layers[g.layer]
		l.nodes = append(l.nodes, nodes...)
		if responsive {
			l.responsive = append(l.responsive, nodes)
		}
	}
	b.groups = nil
	return nil
}

// render returns a layer's nodes, with its responsive variants appended
// unless they are placed by "@tailwind screens".
func (b *builder) render(name string, withScreens bool) []Node {
	out := append([]Node(nil), b.layers[name].nodes...)
	if withScreens {
		out = append(out, b.screens(name)...)
	}
	return b.purge.apply(name, out)
}

// screens builds one @media block per breakpoint holding the responsive
// variants of the given layers.
func (b *builder) screens(names ...string) []Node {
	var out []Node
	for _, screen := range themeEntries(b.theme, "screens") {
		var inner []Node
		for _, name := range names {
			for _, nodes := range b.layers[name].responsive {
				inner = append(inner, screenNodes(nodes, screen.Key, b.sep)...)
			}
		}
		if len(inner) == 0 {
			continue
		}
		out = append(out, Media(screenQuery(screen.Value), inner...))
	}
	return out
}

// screenQuery renders a screen as a media query. Values are a min-width
// length, {min, max}, or {raw}.
func screenQuery(v any) string {
	m, ok := asMap(v)
	if !ok {
		return "(min-width: " + cssValue(v) + ")"
	}
	if raw, ok := m["raw"]; ok {
		return cssValue(raw)
	}
	var query string
	if minW, ok := m["min"]; ok {
		query = "(min-width: " + cssValue(minW) + ")"
	}
	if maxW, ok := m["max"]; ok {
		if query != "" {
			query += " and "
		}
		query += "(max-width: " + cssValue(maxW) + ")"
	}
	return query
}

// lookupClass finds the declarations of a simple ".class" utility or
// component for @apply.
func (b *builder) lookupClass(class string) ([]Decl, bool) {
	if b.applyIndex == nil {
		b.applyIndex = make(map[string][]Decl)
		for _, name := range []string{layerComponents, layerUtilities} {
			for _, n := range b.layers[name].nodes {
				r, ok := n.(Rule)
				if !ok {
					continue
				}
				for _, part := range splitSelector(r.Selector) {
					classes := selectorClasses(part)
					if len(classes) != 1 || part != "."+Escape(classes[0]) {
						continue
					}
					b.applyIndex[classes[0]] = append(b.applyIndex[classes[0]], r.Decls...)
				}
			}
		}
	}
	decls, ok := b.applyIndex[class]
	return decls, ok
}

func warn(log logr.Logger, lines ...string) {
	switch len(lines) {
	case 0:
		return
	case 1:
		log.Info(lines[0])
	default:
		log.Info(lines[0], "details", lines[1:])
	}
}
