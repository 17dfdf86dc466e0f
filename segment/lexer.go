package segment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/inventory"
)

// lexer holds the state of a single segmenting run over one transcription.
type lexer struct {
	seg    *Segmenter
	input  string
	pos    int // byte position of the next character
	rpos   int // code-point position of the next character
	out    []inventory.Unit
	pooled bool // borrowed from the lexer pool
}

// step is a unit consumed by the lexer, together with the policy decision.
type step struct {
	unit   inventory.Unit
	action phonseg.Action
	pos    int // byte position of the unit
	rpos   int // code-point position of the unit
	len    int // length of the consumed input in bytes
}

func (st step) String() string {
	return fmt.Sprintf("%s@%d:%s", st.unit, st.pos, st.action)
}

// next consumes the next unit of input. If no more input is left, next
// returns false. Unknown characters in strict mode produce a terminal error,
// unterminated brackets produce a warning and end the input.
func (lx *lexer) next() (step, bool, error) {
	for lx.pos < len(lx.input) {
		r, sz := utf8.DecodeRuneInString(lx.input[lx.pos:])
		if r == utf8.RuneError && sz <= 1 {
			if err := lx.unknown(r, sz); err != nil {
				return step{}, false, err
			}
			continue
		}
		if cat, ok := lx.seg.inv.Structural(r); ok {
			switch cat {
			case phonseg.BracketOpen:
				return lx.bracketSpan(sz)
			case phonseg.Whitespace:
				st := lx.advance(inventory.Unit{Category: cat, Text: WordBoundary}, sz, 1)
				return st, true, nil
			default: // pipe
				st := lx.advance(inventory.Unit{Category: cat, Text: lx.input[lx.pos : lx.pos+sz]}, sz, 1)
				st.action = phonseg.Discard
				return st, true, nil
			}
		}
		if m, ok := lx.seg.inv.Lookup(lx.input[lx.pos:]); ok {
			return lx.advance(m.Unit, m.Bytes, m.Runes), true, nil
		}
		if err := lx.unknown(r, sz); err != nil {
			return step{}, false, err
		}
	}
	return step{}, false, nil
}

// advance consumes n bytes / r code-points as unit u.
func (lx *lexer) advance(u inventory.Unit, n, r int) step {
	st := step{
		unit:   u,
		action: lx.seg.policy.Action(u.Category),
		pos:    lx.pos,
		rpos:   lx.rpos,
		len:    n,
	}
	lx.pos += n
	lx.rpos += r
	return st
}

// bracketSpan skips a bracket span, including its closer. sz is the byte
// length of the opener.
func (lx *lexer) bracketSpan(sz int) (step, bool, error) {
	open := lx.input[lx.pos : lx.pos+sz]
	closer, _ := lx.seg.inv.Closer(open)
	end := strings.Index(lx.input[lx.pos+sz:], closer)
	if closer == "" || end < 0 {
		err := &UnterminatedBracketError{Open: open, Offset: lx.rpos, ByteOffset: lx.pos}
		CT().Infof("%v", err)
		lx.pos, lx.rpos = len(lx.input), lx.rpos+utf8.RuneCountInString(lx.input[lx.pos:])
		return step{}, false, err
	}
	n := sz + end + len(closer)
	span := lx.input[lx.pos : lx.pos+n]
	st := lx.advance(inventory.Unit{Category: phonseg.BracketOpen, Text: span}, n,
		utf8.RuneCountInString(span))
	st.action = phonseg.Discard
	return st, true, nil
}

// unknown handles a character which is not in the inventory. For lenient
// segmenters it is skipped.
func (lx *lexer) unknown(r rune, sz int) error {
	if lx.seg.unknown == phonseg.Strict {
		return &UnrecognizedCharacterError{Char: r, Offset: lx.rpos, ByteOffset: lx.pos}
	}
	CT().Debugf("skipping unknown character %#U at offset %d", r, lx.rpos)
	lx.pos += sz
	lx.rpos++
	return nil
}

// --- Lexer pool ------------------------------------------------------------

// Segmenting happens for every utterance of a corpus. We pool lexers to
// re-use their output buffers.
type lexerPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalLexerPool *lexerPool

func init() {
	globalLexerPool = &lexerPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			lx := &lexer{out: make([]inventory.Unit, 0, 64), pooled: true}
			return lx, nil
		})
	globalLexerPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalLexerPool.opool = pool.NewObjectPool(globalLexerPool.ctx, factory, config)
}

// borrowLexer returns a lexer for an input, taken from the pool.
func borrowLexer(seg *Segmenter, input string) *lexer {
	o, err := globalLexerPool.opool.BorrowObject(globalLexerPool.ctx)
	if err != nil {
		CT().Errorf("lexer pool: %v", err)
		o = &lexer{}
	}
	lx := o.(*lexer)
	lx.seg = seg
	lx.input = input
	return lx
}

// releaseIntoPool clears the lexer and puts it back into the pool. Lexers
// which did not come from the pool are just cleared.
func (lx *lexer) releaseIntoPool() {
	lx.seg = nil
	lx.input = ""
	lx.pos, lx.rpos = 0, 0
	for i := range lx.out {
		lx.out[i] = inventory.Unit{}
	}
	lx.out = lx.out[:0]
	if !lx.pooled {
		return
	}
	if err := globalLexerPool.opool.ReturnObject(globalLexerPool.ctx, lx); err != nil {
		CT().Errorf("lexer pool: %v", err)
	}
}
