package phonseg

import (
	"fmt"
	"sort"
	"strings"
)

// Action tells the segmenter what to do with a matched unit.
type Action int8

// Discard is the zero value: categories not mentioned by a policy are dropped.
const (
	Discard Action = iota
	Emit
)

func (a Action) String() string {
	if a == Emit {
		return "emit"
	}
	return "discard"
}

// Mode is a target mode, i.e. the kind of labels a model is trained on.
// A language variant maps each of its modes to a Policy.
type Mode string

// Target modes known from the Na and Kunwinjku corpora. Variants may define
// additional ones.
const (
	ModePhonemes         Mode = "phonemes"
	ModeTones            Mode = "tones"
	ModePhonemesAndTones Mode = "phonemes_and_tones"
)

// Policy is an emission policy: a table from category to action.
// Policies are small values and safe for concurrent use.
type Policy struct {
	name    string
	actions [CategoryCount]Action
}

// NewPolicy creates a policy emitting the given categories and discarding
// all others.
func NewPolicy(name string, emitted ...Category) Policy {
	p := Policy{name: name}
	for _, c := range emitted {
		if c > NoCategory && c < maxCategory {
			p.actions[c] = Emit
		}
	}
	return p
}

// Name returns the name a policy has been created with, usually a Mode.
func (p Policy) Name() string {
	return p.name
}

// Action returns the action for units of category c.
func (p Policy) Action(c Category) Action {
	if c <= NoCategory || c >= maxCategory {
		return Discard
	}
	return p.actions[c]
}

// Emits is a shortcut for p.Action(c) == Emit.
func (p Policy) Emits(c Category) bool {
	return p.Action(c) == Emit
}

// Emitted lists the categories a policy emits, in category order.
func (p Policy) Emitted() []Category {
	var cats []Category
	for c := Phoneme; c < maxCategory; c++ {
		if p.actions[c] == Emit {
			cats = append(cats, c)
		}
	}
	return cats
}

func (p Policy) String() string {
	names := make([]string, 0, 4)
	for _, c := range p.Emitted() {
		names = append(names, c.String())
	}
	sort.Strings(names)
	return fmt.Sprintf("policy[%s: emit %s]", p.name, strings.Join(names, ","))
}

// UnknownHandling selects what a segmenter does with characters which are
// neither units of its inventory nor covered by a structural rule.
// There is no default: the zero value is invalid and must be replaced by an
// explicit choice.
type UnknownHandling int8

// Strict segmenters fail with an error, lenient ones skip the character.
const (
	UnknownUnset UnknownHandling = iota
	Strict
	Lenient
)

func (u UnknownHandling) String() string {
	switch u {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	}
	return "unset"
}

// ParseUnknownHandling reads "strict" or "lenient".
func ParseUnknownHandling(s string) (UnknownHandling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	}
	return UnknownUnset, fmt.Errorf("unknown-character handling must be 'strict' or 'lenient', is %q", s)
}
