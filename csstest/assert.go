package csstest

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twtest/internal/cssnorm"
)

type tHelper interface {
	Helper()
}

// Clean normalizes css: indentation, semicolons and the whitespace around
// braces, colons and commas are canonicalized. Clean is idempotent.
func Clean(css string) string {
	return cssnorm.Clean(css)
}

// AssertExactCSS asserts that actual and expected are the same stylesheet
// modulo formatting.
func AssertExactCSS(t assert.TestingT, actual, expected string, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return assert.Equal(t, Clean(expected), Clean(actual), msgAndArgs...)
}

// AssertContainsCSS asserts that every fragment appears in superstring
// modulo formatting. Each missing fragment is reported.
func AssertContainsCSS(t assert.TestingT, superstring string, fragments ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	super := Clean(superstring)
	ok := true
	for _, f := range fragments {
		if err := cssnorm.ContainsOne(super, f); err != nil {
			ok = assert.Fail(t, err.Error())
		}
	}
	return ok
}

// RequireExactCSS is AssertExactCSS but stops the test on failure.
func RequireExactCSS(t require.TestingT, actual, expected string, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !AssertExactCSS(t, actual, expected, msgAndArgs...) {
		t.FailNow()
	}
}

// RequireContainsCSS stops the test at the first missing fragment.
func RequireContainsCSS(t require.TestingT, superstring string, fragments ...string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	super := Clean(superstring)
	for _, f := range fragments {
		if err := cssnorm.ContainsOne(super, f); err != nil {
			require.Fail(t, err.Error())
			return
		}
	}
}
