//
// Tencent is pleased to support the open source community by making pipeline-metrics available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// pipeline-metrics is licensed under the Apache License Version 2.0.
//

// Package listlit parses bracketed string-list literals such as
// ['cat', 'dog'] or ["cat"]. The accepted language is deliberately small:
// a single pair of brackets enclosing zero or more quoted strings separated
// by commas. Elements may use single or double quotes, so JSON arrays of
// strings parse as well. Nothing is ever evaluated.
package listlit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse scans s as a string-list literal and returns its elements in order.
// An empty list yields an empty, non-nil slice. Trailing commas, unquoted
// atoms, nested lists, and trailing garbage are rejected.
func Parse(s string) ([]string, error) {
	p := &parser{input: s}
	p.skipSpace()
	if !p.consume('[') {
		return nil, p.errorf("expected '['")
	}
	values := []string{}
	p.skipSpace()
	if p.consume(']') {
		p.skipSpace()
		if !p.done() {
			return nil, p.errorf("unexpected trailing characters")
		}
		return values, nil
	}
	for {
		p.skipSpace()
		value, err := p.scanString()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, p.errorf("expected ',' or ']'")
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.errorf("unexpected trailing characters")
	}
	return values, nil
}

// Format renders values as a bracketed literal with double-quoted elements.
// The output round-trips through Parse.
func Format(values []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, value := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		for _, r := range value {
			switch r {
			case '\\', '"':
				b.WriteByte('\\')
				b.WriteRune(r)
			case '\n':
				b.WriteString(`\n`)
			case '\t':
				b.WriteString(`\t`)
			case '\r':
				b.WriteString(`\r`)
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte('"')
	}
	b.WriteByte(']')
	return b.String()
}

// parser walks the input rune by rune, tracking the byte position for errors.
type parser struct {
	input string
	pos   int
}

// done reports whether the whole input has been consumed.
func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

// peek returns the rune at the current position without consuming it.
func (p *parser) peek() (rune, int) {
	if p.done() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(p.input[p.pos:])
}

// consume advances past r when it is the next rune and reports whether it did.
func (p *parser) consume(r rune) bool {
	next, size := p.peek()
	if size == 0 || next != r {
		return false
	}
	p.pos += size
	return true
}

// skipSpace advances past any unicode whitespace.
func (p *parser) skipSpace() {
	for {
		r, size := p.peek()
		if size == 0 || !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// scanString scans one quoted string element, resolving escape sequences.
func (p *parser) scanString() (string, error) {
	quote, size := p.peek()
	if size == 0 {
		return "", p.errorf("expected quoted string")
	}
	if quote != '\'' && quote != '"' {
		return "", p.errorf("expected quoted string")
	}
	p.pos += size
	var out []rune
	for {
		r, size := p.peek()
		if size == 0 {
			return "", p.errorf("unterminated string")
		}
		p.pos += size
		if r == quote {
			return string(out), nil
		}
		if r != '\\' {
			out = append(out, r)
			continue
		}
		esc, size := p.peek()
		if size == 0 {
			return "", p.errorf("unterminated escape sequence")
		}
		p.pos += size
		switch esc {
		case '\\', '\'', '"':
			out = append(out, esc)
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		default:
			return "", p.errorf("unsupported escape sequence %q", string([]rune{'\\', esc}))
		}
	}
}

// errorf builds an error annotated with the current byte position.
func (p *parser) errorf(format string, args ...any) error {
	prefix := fmt.Sprintf("offset %d: ", p.pos)
	return fmt.Errorf(prefix+format, args...)
}
