package engine

// VariantFunc produces the variant form of a utility rule. sep is the
// configured separator (":" by default).
type VariantFunc func(r Rule, sep string) Node

// PseudoVariant builds a variant that renames classes to "name<sep>class"
// and appends a pseudo-class, e.g. `.hover\:block:hover`.
func PseudoVariant(name, pseudo string) VariantFunc {
	return func(r Rule, sep string) Node {
		r.Selector = modifySelector(r.Selector, func(part string) string {
			return renameClasses(part, name, sep) + pseudo
		})
		return r
	}
}

// groupVariant targets children of a ".group" ancestor in the given state.
func groupVariant(name, pseudo string) VariantFunc {
	return func(r Rule, sep string) Node {
		r.Selector = modifySelector(r.Selector, func(part string) string {
			return ".group" + pseudo + " " + renameClasses(part, name, sep)
		})
		return r
	}
}

func darkClassVariant(r Rule, sep string) Node {
	r.Selector = modifySelector(r.Selector, func(part string) string {
		return ".dark " + renameClasses(part, "dark", sep)
	})
	return r
}

func darkMediaVariant(r Rule, sep string) Node {
	r.Selector = modifySelector(r.Selector, func(part string) string {
		return renameClasses(part, "dark", sep)
	})
	return Media("(prefers-color-scheme: dark)", r)
}

// renameClasses prefixes the last class of a selector part, which is the
// utility itself; ancestors such as ".group" or ".dark" keep their names.
func renameClasses(part, variant, sep string) string {
	prefix := Escape(variant + sep)
	last := len(selectorClasses(part)) - 1
	i := 0
	return mapClasses(part, func(class string) string {
		defer func() { i++ }()
		if i != last {
			return class
		}
		return prefix + class
	})
}

func builtinVariants(darkMode string) map[string]VariantFunc {
	variants := map[string]VariantFunc{
		"hover":         PseudoVariant("hover", ":hover"),
		"focus":         PseudoVariant("focus", ":focus"),
		"active":        PseudoVariant("active", ":active"),
		"visited":       PseudoVariant("visited", ":visited"),
		"disabled":      PseudoVariant("disabled", ":disabled"),
		"focus-within":  PseudoVariant("focus-within", ":focus-within"),
		"focus-visible": PseudoVariant("focus-visible", ":focus-visible"),
		"first":         PseudoVariant("first", ":first-child"),
		"last":          PseudoVariant("last", ":last-child"),
		"odd":           PseudoVariant("odd", ":nth-child(odd)"),
		"even":          PseudoVariant("even", ":nth-child(even)"),
		"group-hover":   groupVariant("group-hover", ":hover"),
		"group-focus":   groupVariant("group-focus", ":focus"),
	}
	switch darkMode {
	case "class":
		variants["dark"] = darkClassVariant
	case "media":
		variants["dark"] = darkMediaVariant
	}
	return variants
}

// screenNodes renames the classes of every rule for a screen breakpoint.
func screenNodes(nodes []Node, screen, sep string) []Node {
	return mapRules(nodes, func(r Rule) Rule {
		r.Selector = modifySelector(r.Selector, func(part string) string {
			return renameClasses(part, screen, sep)
		})
		return r
	})
}
