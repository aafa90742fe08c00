package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"block", "block"},
		{"hover:", `hover\:`},
		{"w-1/2", `w-1\/2`},
		{"p-0.5", `p-0\.5`},
		{"2xl", `\32 xl`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), tt.in)
		assert.Equal(t, tt.in, Unescape(tt.want), tt.want)
	}
}

func TestSplitSelector(t *testing.T) {
	assert.Equal(t,
		[]string{".a", ".b:not(.c, .d)", `.e\,f`},
		splitSelector(`.a,.b:not(.c, .d) , .e\,f`))
}

func TestPrefixClasses(t *testing.T) {
	assert.Equal(t,
		`.tw-a > .tw-b:hover, #id .tw-c[data-x=".y"]`,
		prefixClasses(`.a > .b:hover, #id .c[data-x=".y"]`, "tw-"))
	assert.Equal(t, ".a", prefixClasses(".a", ""))
}

func TestSelectorClasses(t *testing.T) {
	assert.Equal(t, []string{"hover:bg-red", "group"}, selectorClasses(`.hover\:bg-red:hover .group`))
}

func TestRenameClasses(t *testing.T) {
	assert.Equal(t, `.md\:hover\:a:hover`, renameClasses(`.hover\:a:hover`, "md", ":"))
	assert.Equal(t, `.group:hover .md\:group-hover\:a`, renameClasses(`.group:hover .group-hover\:a`, "md", ":"))
	assert.Equal(t, "div > p", renameClasses("div > p", "md", ":"))
}
