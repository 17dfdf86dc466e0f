package segment

import (
	"github.com/npillmayer/gorgo/lr/scanner"
	"github.com/npillmayer/phonseg"
)

// Scanner implements the scanner.Tokenizer interface for one transcription.
// It hands out every emitted unit as a token, with the token value set to
// the unit's category and the token itself set to the unit's text.
// Positions are byte offsets into the prepared transcription.
//
// Scanners are meant for parser-style consumers. They are not safe for
// concurrent use.
type Scanner struct {
	lx      *lexer
	handler func(error)
	done    bool
	err     error
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// Scanner creates a tokenizer over a transcription. Input errors (too long)
// are reported to the error handler on the first call to NextToken.
func (s *Segmenter) Scanner(text string) *Scanner {
	sc := &Scanner{}
	input, err := s.prepare(text)
	if err != nil {
		sc.err = err
		return sc
	}
	sc.lx = &lexer{seg: s, input: input}
	return sc
}

// SetErrorHandler sets an error handler function, which receives errors
// (unrecognized characters, unterminated brackets). Without a handler,
// errors are traced and the scanner stops.
func (sc *Scanner) SetErrorHandler(h func(error)) {
	sc.handler = h
}

// Err returns the first terminal error the scanner encountered, if any.
func (sc *Scanner) Err() error {
	return sc.err
}

// NextToken returns the next emitted unit as a token
// (category, text, byte position, byte length). At the end of input it
// returns scanner.EOF. The expected parameter is ignored.
func (sc *Scanner) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	if sc.err != nil && !sc.done {
		sc.report(sc.err)
		sc.done = true
	}
	for !sc.done {
		st, ok, err := sc.lx.next()
		if err != nil {
			sc.report(err)
			if !IsWarning(err) {
				sc.err = err
			}
		}
		if !ok {
			sc.done = true
			break
		}
		if st.action == phonseg.Emit {
			CT().Debugf("token %s", st)
			return int(st.unit.Category), st.unit.Text, uint64(st.pos), uint64(st.len)
		}
	}
	var pos uint64
	if sc.lx != nil {
		pos = uint64(sc.lx.pos)
	}
	return scanner.EOF, "", pos, 0
}

func (sc *Scanner) report(err error) {
	if sc.handler != nil {
		sc.handler(err)
		return
	}
	CT().Errorf("scanner: %v", err)
}
