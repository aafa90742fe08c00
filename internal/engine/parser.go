package engine

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// SyntaxError reports malformed input CSS.
type SyntaxError struct {
	Line   int
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// nestingAtRules hold rules rather than declarations.
var nestingAtRules = map[string]bool{
	"media":      true,
	"supports":   true,
	"document":   true,
	"layer":      true,
	"container":  true,
	"screen":     true,
	"responsive": true,
	"variants":   true,
}

// parser builds a node tree from the tdewolff CSS lexer.
type parser struct {
	lexer *css.Lexer
	line  int

	tokLine  int
	unread   bool
	lastTT   css.TokenType
	lastData []byte
}

// Parse parses a stylesheet. Comments are dropped.
func Parse(src string) ([]Node, error) {
	p := &parser{
		lexer: css.NewLexer(parse.NewInputString(src)),
		line:  1,
	}
	return p.parseStatements(false)
}

func (p *parser) next() (css.TokenType, []byte) {
	if p.unread {
		p.unread = false
		return p.lastTT, p.lastData
	}
	tt, data := p.lexer.Next()
	p.tokLine = p.line
	p.line += bytes.Count(data, []byte{'\n'})
	p.lastTT, p.lastData = tt, data
	return tt, data
}

func (p *parser) back() {
	p.unread = true
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.tokLine, Reason: fmt.Sprintf(format, args...)}
}

// eof returns the lexer error unless it is a clean end of input.
func (p *parser) eof() error {
	if err := p.lexer.Err(); err != nil && err != io.EOF {
		return p.errorf("%v", err)
	}
	return nil
}

func (p *parser) parseStatements(nested bool) ([]Node, error) {
	var nodes []Node
	for {
		tt, data := p.next()
		switch tt {
		case css.ErrorToken:
			if err := p.eof(); err != nil {
				return nil, err
			}
			if nested {
				return nil, p.errorf("unclosed block")
			}
			return nodes, nil
		case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken, css.SemicolonToken:
			continue
		case css.RightBraceToken:
			if !nested {
				return nil, p.errorf("unexpected }")
			}
			return nodes, nil
		case css.AtKeywordToken:
			n, err := p.parseAtRule(strings.ToLower(string(data[1:])))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		default:
			p.back()
			r, err := p.parseRule()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, r)
		}
	}
}

func (p *parser) parseAtRule(name string) (Node, error) {
	line := p.tokLine
	params, end := p.readUntil(css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken)
	switch end {
	case css.SemicolonToken, css.ErrorToken:
		if err := p.eof(); err != nil {
			return nil, err
		}
		return AtRule{Name: name, Params: params, line: line}, nil
	case css.RightBraceToken:
		p.back()
		return AtRule{Name: name, Params: params, line: line}, nil
	}

	if nestingAtRules[name] {
		nodes, err := p.parseStatements(true)
		if err != nil {
			return nil, err
		}
		return AtRule{Name: name, Params: params, Block: true, Nodes: nodes, line: line}, nil
	}

	decls, err := p.parseDeclarations()
	if err != nil {
		return nil, err
	}
	return AtRule{Name: name, Params: params, Block: true, Decls: decls, line: line}, nil
}

func (p *parser) parseRule() (Node, error) {
	line := p.tokLine
	selector, end := p.readUntil(css.LeftBraceToken, css.SemicolonToken, css.RightBraceToken)
	if end != css.LeftBraceToken {
		if err := p.eof(); err != nil {
			return nil, err
		}
		return nil, p.errorf("expected { after %q", selector)
	}
	decls, err := p.parseDeclarations()
	if err != nil {
		return nil, err
	}
	return Rule{Selector: selector, Decls: decls, line: line}, nil
}

func (p *parser) parseDeclarations() ([]Decl, error) {
	var decls []Decl
	for {
		tt, data := p.next()
		switch tt {
		case css.WhitespaceToken, css.CommentToken, css.SemicolonToken:
			continue
		case css.RightBraceToken:
			return decls, nil
		case css.ErrorToken:
			if err := p.eof(); err != nil {
				return nil, err
			}
			return nil, p.errorf("unclosed block")
		case css.AtKeywordToken:
			params, end := p.readUntil(css.SemicolonToken, css.RightBraceToken)
			decls = append(decls, Decl{Prop: strings.ToLower(string(data)), Value: params})
			switch end {
			case css.RightBraceToken:
				return decls, nil
			case css.ErrorToken:
				if err := p.eof(); err != nil {
					return nil, err
				}
				return nil, p.errorf("unclosed block")
			}
		case css.IdentToken, css.CustomPropertyNameToken:
			prop := string(data)
			if tt == css.IdentToken {
				prop = strings.ToLower(prop)
			}
			if !p.skipTo(css.ColonToken) {
				return nil, p.errorf("expected : after %q", prop)
			}
			value, end := p.readUntil(css.SemicolonToken, css.RightBraceToken)
			d := Decl{Prop: prop, Value: value}
			if v, ok := cutImportant(value); ok {
				d.Value, d.Important = v, true
			}
			decls = append(decls, d)
			switch end {
			case css.RightBraceToken:
				return decls, nil
			case css.ErrorToken:
				if err := p.eof(); err != nil {
					return nil, err
				}
				return nil, p.errorf("unclosed block")
			}
		default:
			return nil, p.errorf("unexpected %q in declaration block", string(data))
		}
	}
}

// skipTo consumes whitespace and reports whether the next token is tt.
func (p *parser) skipTo(want css.TokenType) bool {
	for {
		tt, _ := p.next()
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		}
		return tt == want
	}
}

// readUntil collects tokens as text until one of stops appears outside
// parentheses and brackets. Whitespace collapses to one space and the
// result is trimmed. The stop token is consumed.
func (p *parser) readUntil(stops ...css.TokenType) (string, css.TokenType) {
	var b strings.Builder
	depth := 0
	space := false
	for {
		tt, data := p.next()
		if tt == css.ErrorToken {
			return strings.TrimSpace(b.String()), tt
		}
		if depth == 0 {
			for _, stop := range stops {
				if tt == stop {
					return strings.TrimSpace(b.String()), tt
				}
			}
		}
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			space = b.Len() > 0
			continue
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(data)
	}
}

func cutImportant(value string) (string, bool) {
	const important = "!important"
	if len(value) < len(important) || !strings.EqualFold(value[len(value)-len(important):], important) {
		return value, false
	}
	return strings.TrimSpace(value[:len(value)-len(important)]), true
}
