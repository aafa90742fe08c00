// Package cssnorm normalizes CSS text so that two stylesheets differing only
// in formatting compare equal.
package cssnorm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
)

type rewrite struct {
	pattern *regexp.Regexp
	repl    string
}

// rewrites run in order. Each one only removes or canonicalizes
// whitespace and semicolons.
var rewrites = []rewrite{
	{regexp.MustCompile(`(?m)^\s+`), ""},
	{regexp.MustCompile(`;`), ""},
	{regexp.MustCompile(`(?m)^[ \t]+`), ""},
	{regexp.MustCompile(`\s*,\s*`), ", "},
	{regexp.MustCompile(`\s+:\s+`), ":"},
	{regexp.MustCompile(`:\s+`), ":"},
	{regexp.MustCompile(`\s+\{`), "{"},
	{regexp.MustCompile(`\{\s+`), "{"},
	{regexp.MustCompile(`\}\s+`), "}"},
	{regexp.MustCompile(`\s+\}`), "}"},
	{regexp.MustCompile(`(?m)[ \t]+$`), ""},
	{regexp.MustCompile(`\n+`), "\n"},
}

// Strip applies the whitespace rewrites and trims the result. The output
// has no newline next to a brace.
func Strip(css string) string {
	for _, r := range rewrites {
		css = r.pattern.ReplaceAllString(css, r.repl)
	}
	return strings.TrimSpace(css)
}

// Prettify puts a newline after every "{" and before every "}".
func Prettify(css string) string {
	css = strings.ReplaceAll(css, "}", "\n}")
	return strings.ReplaceAll(css, "{", "{\n")
}

// Clean returns the canonical form of css. Clean(Clean(x)) == Clean(x).
func Clean(css string) string {
	return Prettify(Strip(css))
}

// MismatchError reports two stylesheets that differ after normalization.
type MismatchError struct {
	Actual   string
	Expected string
}

func (e *MismatchError) Error() string {
	return "css mismatch (-expected +actual):\n" + e.Diff()
}

// Diff is a line diff of the normalized stylesheets.
func (e *MismatchError) Diff() string {
	return cmp.Diff(strings.Split(e.Expected, "\n"), strings.Split(e.Actual, "\n"))
}

// MissingFragmentError reports a fragment absent from a stylesheet.
type MissingFragmentError struct {
	Fragment    string
	Superstring string
}

func (e *MissingFragmentError) Error() string {
	return fmt.Sprintf("expected %s to contain %s", e.Superstring, e.Fragment)
}

// Equal compares two stylesheets modulo formatting.
func Equal(actual, expected string) error {
	a, e := Clean(actual), Clean(expected)
	if a == e {
		return nil
	}
	return &MismatchError{Actual: a, Expected: e}
}

// Contains checks that every fragment occurs in superstring modulo
// formatting. All missing fragments are reported.
func Contains(superstring string, fragments ...string) error {
	super := Clean(superstring)
	var result *multierror.Error
	for _, f := range fragments {
		if err := ContainsOne(super, f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// ContainsOne checks a single fragment against an already cleaned
// superstring.
func ContainsOne(cleanSuper, fragment string) error {
	frag := Clean(fragment)
	if strings.Contains(cleanSuper, frag) {
		return nil
	}
	return &MissingFragmentError{Fragment: frag, Superstring: cleanSuper}
}
