package engine

import (
	"strings"
)

// Node is a stylesheet item: a Rule or an AtRule.
type Node interface {
	isNode()
}

// Decl is a single declaration. Props starting with "@" hold at-rules used
// inside a declaration block, such as "@apply".
type Decl struct {
	Prop      string
	Value     string
	Important bool
}

// Rule is a qualified rule: a selector and its declarations.
type Rule struct {
	Selector string
	Decls    []Decl

	line int
}

// AtRule is an at-rule. Block at-rules carry nested nodes, declarations, or both.
type AtRule struct {
	Name   string
	Params string
	Block  bool
	Decls  []Decl
	Nodes  []Node

	line int
}

func (Rule) isNode()   {}
func (AtRule) isNode() {}

// D is shorthand for a declaration.
func D(prop, value string) Decl {
	return Decl{Prop: prop, Value: value}
}

// NewRule builds a rule from a selector and declarations.
func NewRule(selector string, decls ...Decl) Rule {
	return Rule{Selector: selector, Decls: decls}
}

// Media wraps nodes in an @media block.
func Media(params string, nodes ...Node) AtRule {
	return AtRule{Name: "media", Params: params, Block: true, Nodes: nodes}
}

// Stringify serializes nodes in expanded style: two space indentation and a
// blank line between siblings.
func Stringify(nodes []Node) string {
	var b strings.Builder
	writeNodes(&b, nodes, 0)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []Node, depth int) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeNode(b, n, depth)
	}
}

func writeNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case Rule:
		b.WriteString(indent + n.Selector + " {\n")
		writeDecls(b, n.Decls, depth+1)
		b.WriteString(indent + "}\n")
	case AtRule:
		head := "@" + n.Name
		if n.Params != "" {
			head += " " + n.Params
		}
		if !n.Block {
			b.WriteString(indent + head + ";\n")
			return
		}
		b.WriteString(indent + head + " {\n")
		writeDecls(b, n.Decls, depth+1)
		if len(n.Decls) > 0 && len(n.Nodes) > 0 {
			b.WriteByte('\n')
		}
		writeNodes(b, n.Nodes, depth+1)
		b.WriteString(indent + "}\n")
	}
}

func writeDecls(b *strings.Builder, decls []Decl, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, d := range decls {
		if strings.HasPrefix(d.Prop, "@") {
			b.WriteString(indent + d.Prop + " " + d.Value + ";\n")
			continue
		}
		b.WriteString(indent + d.Prop + ": " + d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
		b.WriteString(";\n")
	}
}

// mapRules applies fn to every rule, descending into at-rules.
func mapRules(nodes []Node, fn func(Rule) Rule) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case Rule:
			out = append(out, fn(n))
		case AtRule:
			n.Nodes = mapRules(n.Nodes, fn)
			out = append(out, n)
		}
	}
	return out
}

// filterRules keeps rules for which keep returns true and drops block
// at-rules left empty.
func filterRules(nodes []Node, keep func(Rule) (Rule, bool)) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case Rule:
			if r, ok := keep(n); ok {
				out = append(out, r)
			}
		case AtRule:
			if n.Block && len(n.Nodes) > 0 {
				n.Nodes = filterRules(n.Nodes, keep)
				if len(n.Nodes) == 0 && len(n.Decls) == 0 {
					continue
				}
			}
			out = append(out, n)
		}
	}
	return out
}
