// Package vcd reads IEEE 1364 value change dump files.
//
// Only what is needed to replay per-signal activity is kept: the scope hierarchy,
// variable declarations, the timescale, and every value change keyed by identifier
// code. Vector values are stored without their 'b' / 'r' prefix.
package vcd

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Var is a declared variable.
type Var struct {
	Type string
	Size int
	ID   string
	// Path is the dotted scope chain followed by the reference name and its bit
	// range if one was declared, e.g. "tb.UUT_clean.result[7:0]".
	Path string
}

// Change is one value change of an identifier code.
type Change struct {
	Time  uint64
	Value string
}

// Dump is a parsed value change dump.
type Dump struct {
	Timescale string
	Vars      []Var
	Changes   map[string][]Change
	EndTime   uint64
}

type token struct {
	text string
	line int
}

type lexer struct {
	sc   *bufio.Scanner
	line int
	buf  []string
}

func newLexer(r io.Reader) *lexer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &lexer{sc: sc}
}

func (l *lexer) next() (token, error) {
	for len(l.buf) == 0 {
		if !l.sc.Scan() {
			if err := l.sc.Err(); err != nil {
				return token{}, errors.Wrap(err, "read dump")
			}

			return token{}, io.EOF
		}

		l.line++
		l.buf = strings.Fields(l.sc.Text())
	}

	t := token{text: l.buf[0], line: l.line}
	l.buf = l.buf[1:]

	return t, nil
}

// until collects tokens up to the closing $end.
func (l *lexer) until(keyword string, line int) ([]string, error) {
	var out []string

	for {
		t, err := l.next()
		if err == io.EOF {
			return nil, errors.Errorf("line %d: unterminated %s", line, keyword)
		}

		if err != nil {
			return nil, err
		}

		if t.text == "$end" {
			return out, nil
		}

		out = append(out, t.text)
	}
}

type parser struct {
	lex    *lexer
	dump   *Dump
	scopes []string
	now    uint64
	seen   map[string]bool
}

// Parse reads a complete value change dump from r.
func Parse(r io.Reader) (*Dump, error) {
	p := &parser{
		lex:  newLexer(r),
		dump: &Dump{Changes: make(map[string][]Change)},
		seen: make(map[string]bool),
	}

	for {
		t, err := p.lex.next()
		if err == io.EOF {
			return p.dump, nil
		}

		if err != nil {
			return nil, err
		}

		if err := p.token(t); err != nil {
			return nil, err
		}
	}
}

func (p *parser) token(t token) error {
	switch {
	case strings.HasPrefix(t.text, "$"):
		return p.keyword(t)
	case strings.HasPrefix(t.text, "#"):
		return p.timestamp(t)
	default:
		return p.change(t)
	}
}

func (p *parser) keyword(t token) error {
	switch t.text {
	case "$scope":
		args, err := p.lex.until(t.text, t.line)
		if err != nil {
			return err
		}

		if len(args) < 2 {
			return errors.Errorf("line %d: malformed $scope", t.line)
		}

		p.scopes = append(p.scopes, args[1])
	case "$upscope":
		if _, err := p.lex.until(t.text, t.line); err != nil {
			return err
		}

		if len(p.scopes) == 0 {
			return errors.Errorf("line %d: $upscope without open scope", t.line)
		}

		p.scopes = p.scopes[:len(p.scopes)-1]
	case "$var":
		args, err := p.lex.until(t.text, t.line)
		if err != nil {
			return err
		}

		return p.declare(args, t.line)
	case "$timescale":
		args, err := p.lex.until(t.text, t.line)
		if err != nil {
			return err
		}

		p.dump.Timescale = strings.Join(args, "")
	case "$comment", "$date", "$version", "$enddefinitions":
		_, err := p.lex.until(t.text, t.line)
		return err
	case "$dumpvars", "$dumpon", "$dumpoff", "$dumpall", "$end":
		// value changes inside dump blocks are ordinary changes
	default:
		return errors.Errorf("line %d: unknown keyword %s", t.line, t.text)
	}

	return nil
}

func (p *parser) declare(args []string, line int) error {
	if len(args) < 4 {
		return errors.Errorf("line %d: malformed $var", line)
	}

	size, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(err, "line %d: $var size", line)
	}

	ref := strings.Join(args[3:], "")
	path := strings.Join(append(append([]string{}, p.scopes...), ref), ".")

	if p.seen[path] {
		return nil
	}

	p.seen[path] = true
	p.dump.Vars = append(p.dump.Vars, Var{Type: args[0], Size: size, ID: args[2], Path: path})

	return nil
}

func (p *parser) timestamp(t token) error {
	ts, err := strconv.ParseUint(t.text[1:], 10, 64)
	if err != nil {
		return errors.Wrapf(err, "line %d: timestamp", t.line)
	}

	if ts < p.now {
		return errors.Errorf("line %d: timestamp #%d goes back in time from #%d", t.line, ts, p.now)
	}

	p.now = ts
	p.dump.EndTime = ts

	return nil
}

func (p *parser) change(t token) error {
	var value, id string

	switch t.text[0] {
	case 'b', 'B', 'r', 'R':
		next, err := p.lex.next()
		if err == io.EOF {
			return errors.Errorf("line %d: value %s without identifier", t.line, t.text)
		}

		if err != nil {
			return err
		}

		value, id = t.text[1:], next.text
	default:
		if !isScalar(t.text[0]) || len(t.text) < 2 {
			return errors.Errorf("line %d: unexpected token %q", t.line, t.text)
		}

		value, id = t.text[:1], t.text[1:]
	}

	p.dump.Changes[id] = append(p.dump.Changes[id], Change{Time: p.now, Value: value})

	return nil
}

func isScalar(c byte) bool {
	return strings.IndexByte("01xXzZuUwWlLhH-", c) >= 0
}
