package inventory

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/phonseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrCollision is matched by collision errors (see CollisionError).
// ErrInvalidUnit flags units which are empty, too long or not valid UTF-8.
// ErrStructuralUnit flags structural units (bracket openers, whitespace,
// pipes) which are longer than a single code-point.
// ErrUnpairedBracket flags bracket openers without a closer.
var (
	ErrCollision       = errors.New("inventory: unit collision")
	ErrInvalidUnit     = errors.New("inventory: invalid unit")
	ErrStructuralUnit  = errors.New("inventory: structural units must be single code-points")
	ErrUnpairedBracket = errors.New("inventory: bracket opener without closer")
)

// CollisionError is raised during construction of an inventory if the same
// literal is entered with two different categories.
type CollisionError struct {
	Unit     string
	Existing phonseg.Category
	Category phonseg.Category
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("inventory: unit %q of length %d entered as %s, is already %s",
		e.Unit, utf8.RuneCountInString(e.Unit), e.Category, e.Existing)
}

// Is makes CollisionError match ErrCollision.
func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// Builder collects units and builds an inventory from them.
// Builders record the first error and will return it from Build().
type Builder struct {
	name     string
	version  string
	lang     language.Tag
	units    map[string]phonseg.Category
	order    []string // insertion order, for deterministic error reporting
	closers  map[string]string
	fold     bool
	foldLang language.Tag
	normal   bool
	form     norm.Form
	err      error
}

// NewBuilder creates a builder for an inventory with a given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		version:  "0",
		lang:     language.Und,
		foldLang: language.Und,
		units:    make(map[string]phonseg.Category),
		closers:  make(map[string]string),
	}
}

// Derive creates a builder pre-filled with all the units and settings of an
// existing inventory. It is used to create variants of an inventory.
func (inv *Inventory) Derive(name string) *Builder {
	b := NewBuilder(name)
	b.version, b.lang = inv.version, inv.lang
	b.fold, b.foldLang = inv.fold, inv.foldLang
	b.normal, b.form = inv.normal, inv.form
	for _, u := range inv.Units() {
		b.units[u], _ = inv.CategoryOf(u)
		b.order = append(b.order, u)
	}
	for o, c := range inv.closers {
		b.closers[o] = c
	}
	return b
}

// Version sets the version of the inventory's tables.
func (b *Builder) Version(v string) *Builder {
	b.version = v
	return b
}

// Language sets the language tag of the inventory.
func (b *Builder) Language(tag language.Tag) *Builder {
	b.lang = tag
	return b
}

// FoldCase makes the inventory lower-case its input, using the case mapping
// rules of tag. Units are lower-cased as they are added.
func (b *Builder) FoldCase(tag language.Tag) *Builder {
	b.fold, b.foldLang = true, tag
	return b
}

// Normalize puts units into Unicode normalization form f as they are added.
// Input will be normalized before segmenting as well.
// Must be called before any units are added.
func (b *Builder) Normalize(f norm.Form) *Builder {
	b.normal, b.form = true, f
	return b
}

// Add enters units of a category. Entering the same literal twice with the
// same category is harmless; entering it with a different category is a
// collision.
func (b *Builder) Add(cat phonseg.Category, units ...string) *Builder {
	if cat <= phonseg.NoCategory || int(cat) >= phonseg.CategoryCount {
		b.setErr(fmt.Errorf("%w: illegal category %s", ErrInvalidUnit, cat))
		return b
	}
	for _, u := range units {
		b.add(cat, u)
	}
	return b
}

// AddBracket enters a pair of bracket units. Everything from the opener up to
// and including the closer will be discarded by segmenters.
func (b *Builder) AddBracket(open, close string) *Builder {
	b.add(phonseg.BracketOpen, open)
	b.add(phonseg.BracketClose, close)
	b.closers[b.prepare(open)] = b.prepare(close)
	return b
}

// Remove deletes units from the builder.
func (b *Builder) Remove(units ...string) *Builder {
	for _, u := range units {
		u = b.prepare(u)
		if b.units[u] == phonseg.BracketOpen {
			delete(b.closers, u)
		}
		delete(b.units, u)
	}
	return b
}

func (b *Builder) prepare(u string) string {
	if b.fold {
		u = cases.Lower(b.foldLang).String(u)
	}
	if b.normal {
		u = b.form.String(u)
	}
	return u
}

func (b *Builder) add(cat phonseg.Category, u string) {
	if !utf8.ValidString(u) {
		b.setErr(fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidUnit, u))
		return
	}
	u = b.prepare(u)
	l := utf8.RuneCountInString(u)
	if l == 0 || l > MaxUnitLength {
		b.setErr(fmt.Errorf("%w: %q has length %d", ErrInvalidUnit, u, l))
		return
	}
	if cat.IsStructural() && l > 1 {
		b.setErr(fmt.Errorf("%w: %q (%s)", ErrStructuralUnit, u, cat))
		return
	}
	if existing, ok := b.units[u]; ok {
		if existing != cat {
			b.setErr(&CollisionError{Unit: u, Existing: existing, Category: cat})
		}
		return
	}
	b.units[u] = cat
	b.order = append(b.order, u)
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error encountered while adding units, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build creates an immutable inventory. It fails if any units collided or
// were invalid, or if a bracket opener lacks its closer.
func (b *Builder) Build() (*Inventory, error) {
	if b.err != nil {
		return nil, b.err
	}
	inv := &Inventory{
		name:     b.name,
		version:  b.version,
		lang:     b.lang,
		closers:  make(map[string]string, len(b.closers)),
		fold:     b.fold,
		foldLang: b.foldLang,
		normal:   b.normal,
		form:     b.form,
	}
	for _, u := range b.order {
		cat, ok := b.units[u]
		if !ok { // removed
			continue
		}
		if cat == phonseg.BracketOpen {
			cl, ok := b.closers[u]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnpairedBracket, u)
			}
			if b.units[cl] != phonseg.BracketClose {
				return nil, fmt.Errorf("%w: %q closes with %q, which is not a closer", ErrUnpairedBracket, u, cl)
			}
			inv.closers[u] = cl
		}
		l := utf8.RuneCountInString(u)
		if inv.buckets[l] == nil {
			inv.buckets[l] = make(map[string]phonseg.Category)
		}
		if _, dup := inv.buckets[l][u]; dup {
			continue
		}
		inv.buckets[l][u] = cat
		inv.size++
		if l > inv.maxLen {
			inv.maxLen = l
		}
	}
	tracer().Debugf("built %s", inv)
	return inv, nil
}
