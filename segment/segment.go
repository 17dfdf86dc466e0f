/*
Package segment is about segmenting transcriptions into phonemes and tones.

Typical Usage

A Segmenter is configured once with a symbol inventory, an emission policy
and an explicit choice of how to handle unknown characters. After that it
may be used from any number of goroutines.

  inv := …                                             // see package inventory
  policy := phonseg.NewPolicy("phonemes", phonseg.Phoneme)
  seg, err := segment.NewSegmenter(inv, policy, phonseg.Strict)
  …
  units, err := seg.Segment("tɕʰi˧ | ʈʂʰæ˩ [laughs]")
  // units = [tɕʰ i ʈʂʰ æ]

How it works

Segment walks the transcription left to right. At every position it first
checks structural rules, in this order:

  1. A bracket opener starts a span, which is discarded up to and including
  its closer. Without a closer, everything up to the end is discarded and
  an UnterminatedBracketError is returned alongside the units found so far.
  2. Whitespace is kept or discarded as the policy says for phonseg.Whitespace.
  Kept whitespace is emitted as WordBoundary.
  3. Pipes (word delimiters) are discarded.

Otherwise the inventory is asked for the longest unit at the current
position. Matched units are always consumed; whether they are emitted is up
to the policy. Characters unknown to the inventory either end segmenting with
an UnrecognizedCharacterError (strict) or are skipped (lenient).

Segmenting is deterministic. The per-call state of a segmenter lives in
a lexer, which is taken from a pool and returned after the call.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package segment

import (
	"errors"
	"strings"

	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/inventory"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return phonseg.CT()
}

// MaxInputSize is the default maximum size of a transcription, in bytes.
// Clients may change it for a segmenter with option MaxInputLength.
const MaxInputSize = 64 * 1024

// WordBoundary is emitted for whitespace if a policy emits phonseg.Whitespace.
const WordBoundary = " "

// A Segmenter splits transcriptions into units of a symbol inventory.
// Segmenters are immutable and safe for concurrent use.
type Segmenter struct {
	inv      *inventory.Inventory
	policy   phonseg.Policy
	unknown  phonseg.UnknownHandling
	maxInput int
}

// Option configures a segmenter.
type Option func(*Segmenter)

// MaxInputLength sets the maximum size of transcriptions in bytes. A value
// ≤ 0 removes the limit.
func MaxInputLength(n int) Option {
	return func(s *Segmenter) {
		s.maxInput = n
	}
}

// NewSegmenter creates a segmenter for an inventory and an emission policy.
// unknown must be either phonseg.Strict or phonseg.Lenient.
func NewSegmenter(inv *inventory.Inventory, policy phonseg.Policy, unknown phonseg.UnknownHandling,
	opts ...Option) (*Segmenter, error) {
	//
	if inv == nil {
		return nil, ErrNoInventory
	}
	if unknown != phonseg.Strict && unknown != phonseg.Lenient {
		return nil, ErrUnknownHandlingUnset
	}
	s := &Segmenter{
		inv:      inv,
		policy:   policy,
		unknown:  unknown,
		maxInput: MaxInputSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	CT().Debugf("new segmenter for %s with %s, %s", inv, policy, unknown)
	return s, nil
}

// Inventory returns the inventory of a segmenter.
func (s *Segmenter) Inventory() *inventory.Inventory {
	return s.inv
}

// Policy returns the emission policy of a segmenter.
func (s *Segmenter) Policy() phonseg.Policy {
	return s.policy
}

// Unknown returns how a segmenter handles unknown characters.
func (s *Segmenter) Unknown() phonseg.UnknownHandling {
	return s.unknown
}

// Segment splits a transcription into the texts of emitted units.
//
// The error is nil, an *UnterminatedBracketError (a warning: the units are
// valid up to the opening bracket), or a terminal error with no units.
func (s *Segmenter) Segment(text string) ([]string, error) {
	tokens, err := s.Tokens(text)
	if tokens == nil {
		return nil, err
	}
	units := make([]string, len(tokens))
	for i, t := range tokens {
		units[i] = t.Text
	}
	return units, err
}

// Tokens splits a transcription into emitted units, together with their
// categories. Errors are reported as for Segment.
func (s *Segmenter) Tokens(text string) ([]inventory.Unit, error) {
	input, err := s.prepare(text)
	if err != nil {
		return nil, err
	}
	lx := borrowLexer(s, input)
	defer lx.releaseIntoPool()
	var warning error
	for {
		st, ok, err := lx.next()
		if err != nil {
			if !IsWarning(err) {
				CT().P("offset", offsetString(err)).Debugf("segmenting failed: %v", err)
				return nil, err
			}
			warning = err
		}
		if !ok {
			break
		}
		if st.action == phonseg.Emit {
			lx.out = append(lx.out, st.unit)
		}
	}
	tokens := make([]inventory.Unit, len(lx.out))
	copy(tokens, lx.out)
	return tokens, warning
}

// prepare checks the input size and applies the inventory's input conventions.
func (s *Segmenter) prepare(text string) (string, error) {
	if s.maxInput > 0 && len(text) > s.maxInput {
		return "", &InputTooLongError{Size: len(text), Max: s.maxInput}
	}
	return s.inv.Prepare(text), nil
}

// Join concatenates units with blanks in between, which is the format label
// files are written in.
func Join(units []string) string {
	return strings.Join(units, " ")
}

// Split breaks a line of blank-separated units into units. It is the
// inverse of Join for units without whitespace, i.e. WordBoundary units
// are lost.
func Split(line string) []string {
	return strings.Fields(line)
}

func offsetString(err error) string {
	var uerr *UnrecognizedCharacterError
	if errors.As(err, &uerr) {
		return uerr.offsetString()
	}
	return "-"
}
