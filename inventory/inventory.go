/*
Package inventory implements symbol inventories for phoneme segmentation.

An inventory is the closed set of units recognized for one language or
transcription convention. Every unit is a short string of 1 to
MaxUnitLength characters (Unicode code-points) and belongs to exactly one
category. Units are kept in buckets by length, and lookups try the longest
bucket first ("maximal munch"):

    inv, err := inventory.NewBuilder("na").
        Add(phonseg.Phoneme, "t", "ɕ", "tɕ", "tɕʰ").
        Add(phonseg.Control, "ʰ").
        Build()
    m, ok := inv.Lookup("tɕʰa")  // => "tɕʰ", 3 runes consumed

Inventories are immutable once built and may be shared between any number of
goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package inventory

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return phonseg.CT()
}

// MaxUnitLength is the maximum number of code-points a unit may consist of.
const MaxUnitLength = 8

// Unit is an atomic phoneme, tone or discardable symbol of an inventory.
// Units are also what segmenters hand out as tokens.
type Unit struct {
	Category phonseg.Category
	Text     string
}

// Len returns the length of a unit in code-points.
func (u Unit) Len() int {
	return utf8.RuneCountInString(u.Text)
}

func (u Unit) String() string {
	return fmt.Sprintf("%q:%s", u.Text, u.Category)
}

// Match is the result of an inventory lookup.
type Match struct {
	Unit  Unit
	Runes int // number of code-points consumed
	Bytes int // number of bytes consumed
}

// Inventory is a named, versioned set of units, bucketed by length.
type Inventory struct {
	name     string
	version  string
	lang     language.Tag
	buckets  [MaxUnitLength + 1]map[string]phonseg.Category // index is unit length
	maxLen   int                                            // longest unit length present
	closers  map[string]string                              // bracket opener → closer
	size     int
	fold     bool
	foldLang language.Tag
	normal   bool
	form     norm.Form
}

// Name returns the name of an inventory.
func (inv *Inventory) Name() string {
	return inv.name
}

// Version returns the version of an inventory's tables.
func (inv *Inventory) Version() string {
	return inv.version
}

// Language returns the language tag an inventory is made for.
func (inv *Inventory) Language() language.Tag {
	return inv.lang
}

// Len returns the number of units in an inventory.
func (inv *Inventory) Len() int {
	return inv.size
}

// MaxUnitLength returns the length of the longest unit, in code-points.
func (inv *Inventory) MaxUnitLength() int {
	return inv.maxLen
}

func (inv *Inventory) String() string {
	return fmt.Sprintf("inventory[%s v%s, %d units]", inv.name, inv.version, inv.size)
}

// Lookup attempts to match the longest known unit at the start of s.
// It tries length MaxUnitLength() first and proceeds down to single
// code-points. Lengths without any units are skipped.
//
// Lookup does not allocate.
func (inv *Inventory) Lookup(s string) (Match, bool) {
	var ends [MaxUnitLength + 1]int
	n, pos := 0, 0
	for n < inv.maxLen && pos < len(s) {
		_, sz := utf8.DecodeRuneInString(s[pos:])
		pos += sz
		n++
		ends[n] = pos
	}
	for l := n; l > 0; l-- {
		bucket := inv.buckets[l]
		if len(bucket) == 0 {
			continue
		}
		if cat, ok := bucket[s[:ends[l]]]; ok {
			return Match{
				Unit:  Unit{Category: cat, Text: s[:ends[l]]},
				Runes: l,
				Bytes: ends[l],
			}, true
		}
	}
	return Match{}, false
}

// CategoryOf returns the category of a unit.
func (inv *Inventory) CategoryOf(unit string) (phonseg.Category, bool) {
	l := utf8.RuneCountInString(unit)
	if l == 0 || l > MaxUnitLength {
		return phonseg.NoCategory, false
	}
	cat, ok := inv.buckets[l][unit]
	return cat, ok
}

// Structural returns the category of r if r is a bracket opener, whitespace
// or a pipe. Segmenters check structural rules before regular lookups.
// Blank, tab and newline are whitespace for every inventory, whether or not
// the table lists them.
func (inv *Inventory) Structural(r rune) (phonseg.Category, bool) {
	switch r {
	case ' ', '\t', '\n':
		return phonseg.Whitespace, true
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	cat, ok := inv.buckets[1][string(buf[:n])]
	if !ok || !cat.IsStructural() {
		return phonseg.NoCategory, false
	}
	return cat, true
}

// Closer returns the closing bracket for a bracket opener.
func (inv *Inventory) Closer(open string) (string, bool) {
	cl, ok := inv.closers[open]
	return cl, ok
}

// Units lists the units of the given categories, sorted. With no categories
// given, all units are listed.
func (inv *Inventory) Units(cats ...phonseg.Category) []string {
	want := func(c phonseg.Category) bool {
		if len(cats) == 0 {
			return true
		}
		for _, w := range cats {
			if w == c {
				return true
			}
		}
		return false
	}
	set := treeset.NewWithStringComparator()
	for l := 1; l <= inv.maxLen; l++ {
		for u, c := range inv.buckets[l] {
			if want(c) {
				set.Add(u)
			}
		}
	}
	units := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		units = append(units, v.(string))
	}
	return units
}

// Count returns the number of units per length for a category.
// Index 0 of the result is unused.
func (inv *Inventory) Count(cat phonseg.Category) []int {
	cnt := make([]int, inv.maxLen+1)
	for l := 1; l <= inv.maxLen; l++ {
		for _, c := range inv.buckets[l] {
			if c == cat {
				cnt[l]++
			}
		}
	}
	return cnt
}

// Prepare applies an inventory's input conventions to a transcription:
// lower-casing, if the inventory folds case, and Unicode normalization, if
// the inventory's tables are normalized. Segmenters call Prepare before
// segmenting.
func (inv *Inventory) Prepare(s string) string {
	if inv.fold {
		// Casers are stateful, we must not share them between goroutines
		s = cases.Lower(inv.foldLang).String(s)
	}
	if inv.normal {
		s = inv.form.String(s)
	}
	return s
}

// Stats print some useful information about the inventory on the Info log channel.
func (inv *Inventory) Stats() {
	tracer().Infof("Inventory Statistics:")
	tracer().Infof("  Name:     %s v%s (%s)", inv.name, inv.version, inv.lang)
	tracer().Infof("  Units:    %d, longest has %d code-points", inv.size, inv.maxLen)
	for _, c := range phonseg.Categories() {
		cnt := inv.Count(c)
		total := 0
		var sb strings.Builder
		for l := 1; l < len(cnt); l++ {
			total += cnt[l]
			fmt.Fprintf(&sb, " %d:%d", l, cnt[l])
		}
		if total > 0 {
			tracer().Infof("  %-13s %3d  by length%s", c.String()+":", total, sb.String())
		}
	}
}
