/*
Package labels maps segmented units to integer indices and back.

Acoustic models are trained on sequences of label indices. A label table is
a bijection between the units a segmenter may emit and the indices
1 … Len(). Index 0 is reserved for padding and never produced by a unit.

    tab, _ := labels.NewTable("˧", "˥", "˧˥")
    idx, _ := tab.Encode([]string{"˧˥", "˥"})   // => [3 1]
    units, _ := tab.Decode(idx)                  // => [˧˥ ˥]

Units are sorted by their code-points, which makes indices stable for a given
inventory version.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package labels

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/inventory"
	"github.com/npillmayer/phonseg/segment"
)

// Pad is the label at index 0.
const Pad = "pad"

// ErrReservedLabel is returned if a unit collides with the padding label.
// ErrUnknownLabel is returned when encoding a unit not in the table.
// ErrInvalidIndex is returned when decoding index 0 or an out-of-range index.
var (
	ErrReservedLabel = errors.New("labels: unit collides with reserved padding label")
	ErrUnknownLabel  = errors.New("labels: unit not in label table")
	ErrInvalidIndex  = errors.New("labels: invalid label index")
)

// Table is an immutable unit ↔ index bijection.
type Table struct {
	labels []string // labels[0] == Pad
	index  map[string]int
}

// NewTable creates a label table from units. Duplicates are removed, and
// the remaining units are sorted.
func NewTable(units ...string) (*Table, error) {
	set := treeset.NewWithStringComparator()
	for _, u := range units {
		if u == Pad {
			return nil, fmt.Errorf("%w: %q", ErrReservedLabel, u)
		}
		if u == "" {
			return nil, fmt.Errorf("%w: empty unit", ErrUnknownLabel)
		}
		set.Add(u)
	}
	t := &Table{
		labels: make([]string, 1, set.Size()+1),
		index:  make(map[string]int, set.Size()),
	}
	t.labels[0] = Pad
	it := set.Iterator()
	for it.Next() {
		u := it.Value().(string)
		t.index[u] = len(t.labels)
		t.labels = append(t.labels, u)
	}
	phonseg.CT().Debugf("label table with %d labels", t.Len())
	return t, nil
}

// ForInventory creates the label table of all units an inventory may emit
// under a policy. If the policy emits whitespace, segment.WordBoundary is
// included.
func ForInventory(inv *inventory.Inventory, policy phonseg.Policy) (*Table, error) {
	var cats []phonseg.Category
	boundary := false
	for _, c := range policy.Emitted() {
		switch c {
		case phonseg.Whitespace:
			boundary = true
		case phonseg.Pipe, phonseg.BracketOpen:
			// never emitted
		default:
			cats = append(cats, c)
		}
	}
	var units []string
	if len(cats) > 0 {
		units = inv.Units(cats...)
	}
	if boundary {
		units = append(units, segment.WordBoundary)
	}
	return NewTable(units...)
}

// Len returns the number of labels, not counting Pad.
func (t *Table) Len() int {
	return len(t.labels) - 1
}

// VocabSize returns the number of indices in use, including Pad.
func (t *Table) VocabSize() int {
	return len(t.labels)
}

// Index returns the index of a unit.
func (t *Table) Index(unit string) (int, bool) {
	i, ok := t.index[unit]
	return i, ok
}

// Unit returns the unit for an index. Index 0 is reported as Pad, but with
// ok set to false.
func (t *Table) Unit(i int) (string, bool) {
	if i <= 0 || i >= len(t.labels) {
		if i == 0 {
			return Pad, false
		}
		return "", false
	}
	return t.labels[i], true
}

// Units returns all units in index order, without Pad.
func (t *Table) Units() []string {
	u := make([]string, t.Len())
	copy(u, t.labels[1:])
	return u
}

// Encode maps a sequence of units to indices.
func (t *Table) Encode(units []string) ([]int, error) {
	idx := make([]int, len(units))
	for i, u := range units {
		n, ok := t.index[u]
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownLabel, u, i)
		}
		idx[i] = n
	}
	return idx, nil
}

// Decode maps a sequence of indices back to units. Padding is not decoded;
// clients have to strip it beforehand.
func (t *Table) Decode(idx []int) ([]string, error) {
	units := make([]string, len(idx))
	for i, n := range idx {
		u, ok := t.Unit(n)
		if !ok {
			return nil, fmt.Errorf("%w: %d at position %d", ErrInvalidIndex, n, i)
		}
		units[i] = u
	}
	return units, nil
}
