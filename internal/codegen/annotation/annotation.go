// Package annotation parses //httperr: comment directives.
//
// A directive occupies one comment line and has the form
//
//	//httperr:<name> <payload>
//
// For the detail block the payload is a comma separated list of
// key = expression entries, e.g.
//
//	//httperr:detail status = http.StatusNotFound, message = "resource not found"
//
// Values are kept as Go expression text and are never evaluated.
package annotation

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Prefix introduces every directive understood by httperrgen.
const Prefix = "//httperr:"

// Block is a single directive attached to a declaration.
type Block struct {
	Name       string
	Payload    string
	Pos        token.Position // start of the directive
	PayloadPos token.Position // start of Payload, used for column reporting
}

// Entry is one key = value pair of a block payload.
type Entry struct {
	Key   string
	Value Expr
	Pos   token.Position
}

// Expr is unevaluated Go expression text.
type Expr string

func (e Expr) String() string { return string(e) }

// Error is a parse failure inside a directive payload.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() || e.Pos.Filename != "" {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// Directives collects the directives found in the given comment groups, in
// source order. Groups may be nil. Block comments are ignored.
func Directives(fset *token.FileSet, groups ...*ast.CommentGroup) []Block {
	var blocks []Block
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}
			rest := c.Text[len(Prefix):]
			name, payload, sep := rest, "", 0
			if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
				_, sep = utf8.DecodeRuneInString(rest[i:])
				name, payload = rest[:i], rest[i+sep:]
			}
			if name == "" {
				continue
			}
			pos := fset.Position(c.Slash)
			payloadPos := pos
			payloadPos.Column += len(Prefix) + len(name) + sep
			payloadPos.Offset += len(Prefix) + len(name) + sep
			blocks = append(blocks, Block{
				Name:       name,
				Payload:    payload,
				Pos:        pos,
				PayloadPos: payloadPos,
			})
		}
	}
	return blocks
}

// Entries parses the block payload into key = value entries.
func (b Block) Entries() ([]Entry, error) {
	return parseEntries(b.Payload, b.PayloadPos)
}

func parseEntries(payload string, base token.Position) ([]Entry, error) {
	src := []byte(payload)
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)

	errorAt := func(offset int, format string, args ...any) error {
		pos := base
		pos.Column += offset
		pos.Offset += offset
		return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
	}
	scanErr := func() error {
		if len(errs) == 0 {
			return nil
		}
		return errorAt(errs[0].Pos.Offset, "%s", errs[0].Msg)
	}

	var entries []Entry
	for {
		pos, tok, lit := s.Scan()
		if err := scanErr(); err != nil {
			return nil, err
		}
		if isEnd(tok, lit) {
			break
		}
		if tok != token.IDENT {
			return nil, errorAt(file.Offset(pos), "expected key, found %s", describe(tok, lit))
		}
		key, keyOffset := lit, file.Offset(pos)

		pos, tok, lit = s.Scan()
		if err := scanErr(); err != nil {
			return nil, err
		}
		if tok != token.ASSIGN {
			return nil, errorAt(file.Offset(pos), "expected '=' after %s, found %s", key, describe(tok, lit))
		}

		// end is the offset just past the last value token; comments are
		// skipped by the scanner and never become part of the value.
		start, end, depth := -1, -1, 0
		for {
			pos, tok, lit = s.Scan()
			if err := scanErr(); err != nil {
				return nil, err
			}
			if isEnd(tok, lit) || (tok == token.COMMA && depth == 0) {
				break
			}
			switch tok {
			case token.LPAREN, token.LBRACK, token.LBRACE:
				depth++
			case token.RPAREN, token.RBRACK, token.RBRACE:
				depth--
				if depth < 0 {
					return nil, errorAt(file.Offset(pos), "unbalanced %s in value of %s", tok, key)
				}
			}
			if start < 0 {
				start = file.Offset(pos)
			}
			end = file.Offset(pos) + tokenLen(tok, lit)
		}
		if start < 0 {
			return nil, errorAt(keyOffset, "empty value for %s", key)
		}
		if depth != 0 {
			return nil, errorAt(start, "unbalanced brackets in value of %s", key)
		}

		text := payload[start:end]
		if _, err := parser.ParseExpr(text); err != nil {
			return nil, errorAt(start, "value of %s is not a Go expression: %v", key, err)
		}
		entryPos := base
		entryPos.Column += keyOffset
		entryPos.Offset += keyOffset
		entries = append(entries, Entry{Key: key, Value: Expr(text), Pos: entryPos})

		if tok != token.COMMA {
			break
		}
	}
	return entries, nil
}

// isEnd reports the end of a payload. The scanner inserts a newline
// semicolon at EOF and before a trailing line comment.
func isEnd(tok token.Token, lit string) bool {
	return tok == token.EOF || (tok == token.SEMICOLON && lit == "\n")
}

// tokenLen is the source length of a scanned token.
func tokenLen(tok token.Token, lit string) int {
	if lit == "" {
		return len(tok.String())
	}
	return len(lit)
}

func describe(tok token.Token, lit string) string {
	if isEnd(tok, lit) {
		return "end of annotation"
	}
	if lit != "" {
		return fmt.Sprintf("%q", lit)
	}
	return fmt.Sprintf("'%s'", tok)
}
