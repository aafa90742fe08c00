package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Escape escapes a class name for use in a selector, so "hover:" becomes
// `hover\:` and "w-1/2" becomes `w-1\/2`.
func Escape(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_', r >= 0x80:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				fmt.Fprintf(&b, `\3%c `, r)
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape reverses CSS escapes, including hex escapes like `\31 `.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && j-i <= 6 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(s[j])
			i = j
			continue
		}
		code, _ := strconv.ParseUint(s[i+1:j], 16, 32)
		b.WriteRune(rune(code))
		if j < len(s) && s[j] == ' ' {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// splitSelector splits a selector list on top-level commas.
func splitSelector(sel string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(sel); i++ {
		switch sel[i] {
		case '\\':
			i++
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(sel[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(sel[start:]))
}

// modifySelector applies fn to every part of a selector list.
func modifySelector(sel string, fn func(part string) string) string {
	parts := splitSelector(sel)
	for i, part := range parts {
		parts[i] = fn(part)
	}
	return joinSelector(parts)
}

func joinSelector(parts []string) string {
	return strings.Join(parts, ", ")
}

// mapClasses rewrites every class in a selector part. fn receives the class
// as written, escapes included.
func mapClasses(part string, fn func(class string) string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(part); i++ {
		c := part[i]
		switch {
		case c == '\\' && i+1 < len(part):
			b.WriteString(part[i : i+2])
			i++
			continue
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			depth--
		case c == '.' && depth == 0:
			end := classEnd(part, i+1)
			b.WriteByte('.')
			b.WriteString(fn(part[i+1 : end]))
			i = end - 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func classEnd(s string, start int) int {
	i := start
	for i < len(s) {
		c := s[i]
		if c == '\\' {
			i += 2
			continue
		}
		if strings.IndexByte(" \t\n>+~.:#[,()", c) >= 0 {
			break
		}
		i++
	}
	if i > len(s) {
		return len(s)
	}
	return i
}

// selectorClasses returns the unescaped class names in one selector part.
func selectorClasses(part string) []string {
	var classes []string
	mapClasses(part, func(class string) string {
		classes = append(classes, Unescape(class))
		return class
	})
	return classes
}

// prefixClasses prepends an escaped prefix to every class in a selector.
func prefixClasses(sel, prefix string) string {
	if prefix == "" {
		return sel
	}
	escaped := Escape(prefix)
	return modifySelector(sel, func(part string) string {
		return mapClasses(part, func(class string) string {
			return escaped + class
		})
	})
}
