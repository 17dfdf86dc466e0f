/* Package tableparse provides a scanner for inventory table files.

Inventory tables borrow their format from the Unicode Character Database:
one data item per line, fields separated by semicolons, '#' starting a
rest-of-line comment.

    # Na phonemes
    tɕʰ    ; phoneme
    U+0020 ; whitespace       # blank
    [      ; bracket-open ; ] # span to discard

The first field is the unit literal. Literals which cannot be written
verbatim (blanks, '#', ';', invisible marks) may be given as a sequence of
code points in U+XXXX notation, separated by blanks.
*/
package tableparse

import "fmt"

// Token is a type for communicating between the line-level scanner and its
// clients. A token subsumes the properties of one line of input.
type Token struct {
	LineNo    int       // line of the item within the input source
	TokenType TokenType // type of token
	Literal   string    // decoded unit literal of a data item
	Fields    []string  // trimmed fields of the line, including the raw literal
	Comment   string    // rest-of-line comment
	Error     error     // error condition, if any
}

// TokenType tells data lines from blank or comment lines.
type TokenType int8

// Types of lines.
const (
	Undefined TokenType = iota
	EOF
	BlankLine
	CommentLine
	DataItem
)

func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case BlankLine:
		return "blank"
	case CommentLine:
		return "comment"
	case DataItem:
		return "item"
	}
	return "undefined"
}

// newToken creates a token initialized with a line index.
func newToken(line int) *Token {
	return &Token{
		LineNo: line,
		Fields: []string{},
	}
}

func (token *Token) String() string {
	return fmt.Sprintf("token[line %d type=%s %q %#v]", token.LineNo, token.TokenType,
		token.Literal, token.Fields)
}

// Field gets field #i (1…n) from the current data item.
func (token *Token) Field(i int) string {
	if i > 0 && i <= len(token.Fields) {
		return token.Fields[i-1]
	}
	return ""
}
