package engine

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
)

const cssMediaType = "text/css"

func minifyCSS(text string) (string, error) {
	m := minify.New()
	m.AddFunc(cssMediaType, mincss.Minify)
	out, err := m.String(cssMediaType, text)
	if err != nil {
		return "", fmt.Errorf("minify: %w", err)
	}
	return out, nil
}
