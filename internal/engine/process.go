package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
)

// TargetRemovedMessage is logged when a config still sets "target".
const TargetRemovedMessage = "The `target` feature has been removed in Tailwind CSS v2.0."

// DefaultCSS expands to every registered utility.
const DefaultCSS = "@tailwind utilities"

var themeCall = regexp.MustCompile(`theme\(\s*(?:'([^']*)'|"([^"]*)"|([^)]*?))\s*\)`)

type options struct {
	log    logr.Logger
	minify bool
}

// Option configures Process.
type Option func(*options)

// WithLogger routes warnings (V(0)) and debug output (V(1)) to log.
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMinify minifies the generated CSS.
func WithMinify() Option {
	return func(o *options) {
		o.minify = true
	}
}

// Result is the output of one Process call.
type Result struct {
	CSS   string
	Nodes []Node
}

// Process runs the transform pipeline: validate cfg, run plugins, expand
// the directives in src and serialize the result.
func Process(ctx context.Context, cfg Config, src string, opts ...Option) (*Result, error) {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	warnConfig(o.log, cfg)

	b := newBuilder(cfg, o.log)
	if err := b.registerPlugins(); err != nil {
		return nil, err
	}
	purge, err := newPurger(cfg)
	if err != nil {
		return nil, err
	}
	b.purge = purge

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	nodes, err := b.expand(root, hasScreensDirective(root))
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := Stringify(nodes)
	if o.minify {
		if text, err = minifyCSS(text); err != nil {
			return nil, err
		}
	}
	o.log.V(1).Info("processed stylesheet", "nodes", len(nodes), "bytes", len(text))
	return &Result{CSS: text, Nodes: nodes}, nil
}

// warnConfig logs deprecations found in cfg.
func warnConfig(log logr.Logger, cfg Config) {
	if _, ok := cfg["target"]; ok {
		warn(log,
			TargetRemovedMessage,
			"Please remove this option from your config file to avoid seeing this warning.",
		)
	}

	future, _ := asMap(cfg["future"])
	var pending []string
	for _, flag := range futureFlags {
		if on, set := future[flag].(bool); set && !on {
			pending = append(pending, flag)
		}
	}
	if len(pending) > 0 {
		warn(log,
			"There are upcoming breaking changes: "+strings.Join(pending, ", "),
			"We highly recommend opting-in to these changes now to simplify upgrading Tailwind in the future.",
		)
	}
}

func hasScreensDirective(nodes []Node) bool {
	for _, n := range nodes {
		at, ok := n.(AtRule)
		if !ok {
			continue
		}
		if at.Name == "tailwind" && at.Params == "screens" {
			return true
		}
		if hasScreensDirective(at.Nodes) {
			return true
		}
	}
	return false
}

func (b *builder) expand(nodes []Node, screensPlaced bool) ([]Node, error) {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case Rule:
			r, err := b.resolveRule(n)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		case AtRule:
			expanded, err := b.expandAtRule(n, screensPlaced)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
	}
	return out, nil
}

func (b *builder) expandAtRule(at AtRule, screensPlaced bool) ([]Node, error) {
	switch at.Name {
	case "tailwind":
		switch at.Params {
		case layerBase, layerComponents, layerUtilities:
			return b.render(at.Params, !screensPlaced), nil
		case "screens":
			var out []Node
			for _, name := range []string{layerComponents, layerUtilities} {
				out = append(out, b.purge.apply(name, b.screens(name))...)
			}
			return out, nil
		}
		return nil, &SyntaxError{Line: at.line, Reason: fmt.Sprintf("`@tailwind %s` is not a valid at-rule", at.Params)}
	case "screen":
		screen, ok := lookupPath(b.theme, []string{"screens", at.Params})
		if !ok {
			return nil, &SyntaxError{Line: at.line, Reason: fmt.Sprintf("no `%s` screen found", at.Params)}
		}
		at.Name = "media"
		at.Params = screenQuery(screen)
	}

	if len(at.Decls) > 0 {
		decls, err := b.resolveDecls(at.Decls, at.line)
		if err != nil {
			return nil, err
		}
		at.Decls = decls
	}
	if len(at.Nodes) > 0 {
		nodes, err := b.expand(at.Nodes, screensPlaced)
		if err != nil {
			return nil, err
		}
		at.Nodes = nodes
	}
	return []Node{at}, nil
}

func (b *builder) resolveRule(r Rule) (Rule, error) {
	decls, err := b.resolveDecls(r.Decls, r.line)
	if err != nil {
		return r, err
	}
	r.Decls = decls
	return r, nil
}

// resolveDecls inlines @apply and evaluates theme() calls.
func (b *builder) resolveDecls(decls []Decl, line int) ([]Decl, error) {
	out := make([]Decl, 0, len(decls))
	for _, d := range decls {
		if d.Prop == "@apply" {
			applied, err := b.apply(d.Value, line)
			if err != nil {
				return nil, err
			}
			out = append(out, applied...)
			continue
		}
		value, err := b.resolveThemeCalls(d.Value, line)
		if err != nil {
			return nil, err
		}
		d.Value = value
		out = append(out, d)
	}
	return out, nil
}

func (b *builder) apply(params string, line int) ([]Decl, error) {
	classes := strings.Fields(params)
	important := false
	if n := len(classes); n > 0 && classes[n-1] == "!important" {
		important = true
		classes = classes[:n-1]
	}

	var out []Decl
	for _, class := range classes {
		class = strings.TrimPrefix(class, ".")
		decls, ok := b.lookupClass(Unescape(class))
		if !ok {
			return nil, &SyntaxError{Line: line, Reason: fmt.Sprintf(
				"`@apply` cannot be used with `.%s` because `.%s` either cannot be found, or its actual definition includes a pseudo-selector like :hover, :active, etc.",
				class, class)}
		}
		for _, d := range decls {
			if important {
				d.Important = true
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func (b *builder) resolveThemeCalls(value string, line int) (string, error) {
	if !strings.Contains(value, "theme(") {
		return value, nil
	}
	var (
		missing    string
		hasMissing bool
	)
	resolved := themeCall.ReplaceAllStringFunc(value, func(call string) string {
		m := themeCall.FindStringSubmatch(call)
		path := strings.TrimSpace(m[1] + m[2] + m[3])
		v, ok := lookupPath(b.theme, splitPath(path))
		if !ok {
			if !hasMissing {
				missing, hasMissing = path, true
			}
			return call
		}
		return cssValue(v)
	})
	if hasMissing {
		return "", &SyntaxError{Line: line, Reason: fmt.Sprintf("'%s' does not exist in your tailwind config", missing)}
	}
	return resolved, nil
}
