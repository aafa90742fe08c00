package engine

import (
	"fmt"
	"os"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// candidatePattern is the default class extractor: runs of characters that
// can appear in a class attribute, not ending in a colon.
var candidatePattern = regexp.MustCompile("[^<>\"'`\\s]*[^<>\"'`\\s:]")

type purgeOptions struct {
	enabled  bool
	content  []string
	layers   []string
	safelist []string
}

// purgeOptionsFrom reads the purge option: a list of content globs or
// {enabled, content, layers, safelist}.
func purgeOptionsFrom(val any) (purgeOptions, error) {
	if val == nil {
		return purgeOptions{}, nil
	}
	if content, ok := asStrings(val); ok {
		return purgeOptions{enabled: len(content) > 0, content: content}, nil
	}
	m, ok := asMap(val)
	if !ok {
		return purgeOptions{}, &ConfigError{Key: "purge", Reason: "must be a list of globs or a map"}
	}

	var opts purgeOptions
	for _, key := range sortedKeys(m) {
		switch key {
		case "enabled":
			if _, ok := m[key].(bool); !ok {
				return opts, &ConfigError{Key: "purge.enabled", Reason: "must be a boolean"}
			}
		case "content", "layers", "safelist":
			list, ok := asStrings(m[key])
			if !ok {
				return opts, &ConfigError{Key: "purge." + key, Reason: "must be a list of strings"}
			}
			switch key {
			case "content":
				opts.content = list
			case "layers":
				for _, l := range list {
					if l != layerBase && l != layerComponents && l != layerUtilities {
						return opts, &ConfigError{Key: "purge.layers", Reason: fmt.Sprintf("unknown layer %q", l)}
					}
				}
				opts.layers = list
			case "safelist":
				opts.safelist = list
			}
		default:
			return opts, &ConfigError{Key: "purge." + key, Reason: "unknown purge option"}
		}
	}

	enabled, set := m["enabled"].(bool)
	opts.enabled = len(opts.content) > 0 && (!set || enabled)
	return opts, nil
}

// purger removes generated rules whose classes never appear in content.
type purger struct {
	layers map[string]bool
	seen   map[string]bool
}

func newPurger(cfg Config) (*purger, error) {
	opts, err := purgeOptionsFrom(cfg["purge"])
	if err != nil || !opts.enabled {
		return nil, err
	}

	layers := opts.layers
	if len(layers) == 0 {
		layers = []string{layerUtilities}
		if cfg.futureFlag(FlagPurgeLayersByDefault) {
			layers = []string{layerBase, layerComponents, layerUtilities}
		}
	}

	p := &purger{layers: make(map[string]bool), seen: make(map[string]bool)}
	for _, l := range layers {
		p.layers[l] = true
	}
	for _, s := range opts.safelist {
		p.seen[s] = true
	}

	for _, pattern := range opts.content {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("purge content %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			// #nosec G304 - paths come from the purge configuration
			data, err := os.ReadFile(match)
			if err != nil {
				return nil, fmt.Errorf("read purge content: %w", err)
			}
			for _, c := range candidatePattern.FindAllString(string(data), -1) {
				p.seen[c] = true
			}
		}
	}
	return p, nil
}

// apply filters a layer. A selector part survives when all its classes were
// seen; selectors without classes always survive.
func (p *purger) apply(layer string, nodes []Node) []Node {
	if p == nil || !p.layers[layer] {
		return nodes
	}
	return filterRules(nodes, func(r Rule) (Rule, bool) {
		var kept []string
		for _, part := range splitSelector(r.Selector) {
			if p.keep(part) {
				kept = append(kept, part)
			}
		}
		if len(kept) == 0 {
			return r, false
		}
		r.Selector = joinSelector(kept)
		return r, true
	})
}

func (p *purger) keep(part string) bool {
	for _, class := range selectorClasses(part) {
		if !p.seen[class] {
			return false
		}
	}
	return true
}
