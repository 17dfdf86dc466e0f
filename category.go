package phonseg

import (
	"fmt"
	"strings"
)

// Category is the class of a unit within an inventory. Every unit belongs to
// exactly one category.
type Category int8

// Categories of units. Phonemes, tones, diphthongs and double stops are what
// sequence models are trained on; everything else is structure or noise.
const (
	NoCategory   Category = iota // not a unit (unknown characters)
	Phoneme                      // basic phoneme
	Tone                         // tone letter or tone contour
	Diphthong                    // diphthong, a sub-kind of phoneme
	DoubleStop                   // geminated stop, a sub-kind of phoneme
	Whitespace                   // space, tab, newline
	Control                      // discardable control and misc symbols
	Punctuation                  // always discarded
	BracketOpen                  // opens a span to be discarded
	BracketClose                 // closes a span
	Pipe                         // word delimiter
	maxCategory
)

// CategoryCount is the number of categories, including NoCategory.
const CategoryCount = int(maxCategory)

var categoryNames = [...]string{
	"none",
	"phoneme",
	"tone",
	"diphthong",
	"double-stop",
	"whitespace",
	"control",
	"punctuation",
	"bracket-open",
	"bracket-close",
	"pipe",
}

func (c Category) String() string {
	if c < 0 || c >= maxCategory {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory finds a category by name. Names are the ones returned by
// Category.String, matched case-insensitively; underscores may be used
// instead of hyphens.
func ParseCategory(name string) (Category, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for c := Phoneme; c < maxCategory; c++ {
		if categoryNames[c] == n {
			return c, nil
		}
	}
	return NoCategory, fmt.Errorf("unknown unit category %q", name)
}

// IsStructural is true for categories which are handled by the segmenter
// before any inventory lookup: bracket openers, whitespace and pipes.
func (c Category) IsStructural() bool {
	return c == BracketOpen || c == Whitespace || c == Pipe
}

// IsPhonemic is true for phonemes and their sub-kinds.
func (c Category) IsPhonemic() bool {
	return c == Phoneme || c == Diphthong || c == DoubleStop
}

// Categories returns all categories except NoCategory, in order.
func Categories() []Category {
	cats := make([]Category, 0, CategoryCount-1)
	for c := Phoneme; c < maxCategory; c++ {
		cats = append(cats, c)
	}
	return cats
}
