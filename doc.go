/*
Package phonseg is about segmenting transcriptions of spoken language into
phonemes and tones.

Description

Transcriptions of under-documented languages arrive as strings of phonetic or
orthographic symbols, interspersed with annotation artifacts: brackets around
comments, punctuation, control markers, word delimiters. Sequence models for
speech recognition want none of that. They want a clean sequence of atomic
units (phonemes, tones or both) drawn from a closed label set.

Segmenting a transcription into units is not as simple as splitting runes.
Units vary in length ("t", "tɕ", "tɕʰ"), shorter units are prefixes of longer
ones, and combining marks belong to the unit they modify. Segmenting is
therefore done by maximal munch: at each position, the longest unit known to
the inventory wins.

Contents

Base package phonseg holds the vocabulary shared by all sub-packages:
categories of units, emission actions and policies, target modes and the
handling of unknown characters.

Sub-package inventory implements symbol inventories, i.e. closed, versioned
sets of units bucketed by length. Sub-package segment implements the
segmenter, a single-pass lexer driven by an inventory and an emission policy.
Sub-package variant provides the built-in language variants (Na, Kunwinjku)
as embedded data tables. Sub-package labels maps units to indices for model
input and output, and sub-package batch segments many utterances concurrently.

Matching and Emitting

Matching a unit and deciding whether to emit it are separate steps. The lexer
always consumes what the inventory recognizes, then consults a Policy for the
unit's category. Segmenting for tones only thus walks over phonemes just the
same, but drops them from the output.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package phonseg

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
