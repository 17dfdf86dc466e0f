package tableparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// --- Line level scanner ----------------------------------------------------

// Scanner is a type for a line-level scanner.
//
// Our line-level scanner will operate by calling scanning steps in a chain, iteratively.
// Each step function inspects the current line and then possibly branches out to a
// subsequent step function.
type Scanner struct {
	lines     *bufio.Scanner // where we get lines from
	line      string         // current line
	lineNo    int            // 1-based number of current line
	Step      scannerStep    // the next scanner step to execute in a chain
	LastError error          // last error, if any
	Token     *Token         // last token produced by scanner
}

// We're building up a scanner from chains of scanner step functions.
// Tokens may be modified by a step function.
// A scanner step will return the next step in the chain, or nil to stop/accept.
type scannerStep func(*Token) (*Token, scannerStep)

// New creates a scanner for an input reader.
func New(inputReader io.Reader) (*Scanner, error) {
	if inputReader == nil {
		return nil, errors.New("no input present")
	}
	return &Scanner{lines: bufio.NewScanner(inputReader)}, nil
}

// Parse iterates over the data items of a table and calls f on each of them.
// Blank lines and comment lines are skipped. Parsing stops at the first
// syntax error or at the first error returned by f.
func Parse(r io.Reader, f func(token *Token) error) error {
	sc, err := New(r)
	if err != nil {
		return err
	}
	for sc.Next() {
		if sc.Token.TokenType != DataItem {
			continue
		}
		if err := f(sc.Token); err != nil {
			return fmt.Errorf("line %d: %w", sc.Token.LineNo, err)
		}
	}
	return sc.LastError
}

// Next is called to receive the next line-level token.
//
// Next iterates over a chain of step functions until it reaches an
// accepting state. Acceptance is signalled by getting a nil-step return value from a
// step function. If a step function returns an error-signalling token, Next
// records the error and returns false.
func (sc *Scanner) Next() bool {
	if !sc.lines.Scan() {
		if err := sc.lines.Err(); err != nil {
			sc.LastError = err
		}
		sc.Token = newToken(sc.lineNo)
		sc.Token.TokenType = EOF
		return false
	}
	sc.lineNo++
	sc.line = sc.lines.Text()
	sc.Token = newToken(sc.lineNo)
	sc.Step = sc.ScanLine
	for sc.Step != nil {
		sc.Token, sc.Step = sc.Step(sc.Token)
		if sc.Token.Error != nil {
			sc.LastError = fmt.Errorf("line %d: %w", sc.lineNo, sc.Token.Error)
			return false
		}
	}
	return true
}

// ScanLine is the first step for every line. It splits off comments.
//
//    line:
//      -> empty:   blank
//      -> '#' …:   comment
//      -> other:   fields
func (sc *Scanner) ScanLine(token *Token) (*Token, scannerStep) {
	text := strings.TrimSpace(strings.TrimPrefix(sc.line, "\ufeff"))
	if text == "" {
		token.TokenType = BlankLine
		return token, nil
	}
	if text[0] == '#' {
		token.TokenType = CommentLine
		token.Comment = strings.TrimSpace(text[1:])
		return token, nil
	}
	if i := strings.IndexByte(text, '#'); i >= 0 {
		token.Comment = strings.TrimSpace(text[i+1:])
		text = text[:i]
	}
	sc.line = text
	token.TokenType = DataItem
	return token, sc.ScanFields
}

// ScanFields splits a data line at semicolons.
func (sc *Scanner) ScanFields(token *Token) (*Token, scannerStep) {
	parts := strings.Split(sc.line, ";")
	for _, p := range parts {
		token.Fields = append(token.Fields, strings.TrimSpace(p))
	}
	if len(token.Fields) < 2 {
		token.Error = fmt.Errorf("expected at least 2 fields, have %d", len(token.Fields))
		return token, nil
	}
	return token, sc.ScanLiteral
}

// ScanLiteral decodes the first field into a unit literal.
func (sc *Scanner) ScanLiteral(token *Token) (*Token, scannerStep) {
	token.Literal, token.Error = DecodeLiteral(token.Fields[0])
	return token, nil
}

// DecodeLiteral decodes a literal as written in a table: either verbatim or
// as a sequence of code-points in U+XXXX notation.
func DecodeLiteral(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("empty unit literal")
	}
	if !strings.HasPrefix(raw, "U+") {
		if !utf8.ValidString(raw) {
			return "", fmt.Errorf("unit literal %q is not valid UTF-8", raw)
		}
		return raw, nil
	}
	var sb strings.Builder
	for _, cp := range strings.Fields(raw) {
		if !strings.HasPrefix(cp, "U+") {
			return "", fmt.Errorf("mixed code point notation in %q", raw)
		}
		n, err := strconv.ParseUint(cp[2:], 16, 32)
		if err != nil {
			return "", fmt.Errorf("hex decoding error: %w", err)
		}
		r := rune(n)
		if !utf8.ValidRune(r) {
			return "", fmt.Errorf("%s is not a valid code point", cp)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
