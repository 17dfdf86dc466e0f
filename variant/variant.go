/*
Package variant provides the language variants shipped with phonseg.

A variant bundles a symbol inventory with the settings needed to segment
transcriptions of one language: input conventions, handling of unknown
characters and the label modes (which categories are emitted). Variants are
described by a YAML manifest and a unit table:

    name: na
    version: "1.0"
    language: nru
    normalization: none
    unknown: strict
    table: na.tab
    default_mode: phonemes_and_tones
    modes:
      phonemes: [phoneme]
      tones: [tone]
      phonemes_and_tones: [phoneme, tone]

Variants "na" (Yongning Na) and "kunwinjku" are compiled into the package.
Clients may load additional variants from a file system with LoadFS.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package variant

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/inventory"
	"github.com/npillmayer/phonseg/labels"
	"github.com/npillmayer/phonseg/segment"
	"golang.org/x/text/language"
)

//go:embed data/*.yaml data/*.tab
var builtin embed.FS

// ErrUnknownVariant is returned by Load for names not compiled into the package.
// ErrUnknownMode is returned for modes a variant does not declare.
var (
	ErrUnknownVariant = errors.New("variant: unknown variant")
	ErrUnknownMode    = errors.New("variant: unknown mode")
)

// Variant is a loaded language variant. Variants are immutable.
type Variant struct {
	Name        string
	Version     string
	Language    language.Tag
	Inventory   *inventory.Inventory
	Unknown     phonseg.UnknownHandling
	DefaultMode phonseg.Mode
	manifest    *Manifest
}

func (v *Variant) String() string {
	return fmt.Sprintf("%s v%s (%s, %d units)", v.Name, v.Version, v.Language, v.Inventory.Len())
}

var cache = struct {
	sync.Mutex
	variants map[string]*Variant
}{variants: make(map[string]*Variant)}

// Names lists the variants compiled into the package, sorted.
func Names() []string {
	entries, err := fs.ReadDir(builtin, "data")
	if err != nil {
		panic(err) // embedded data is broken
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

// Load returns a built-in variant. Variants are loaded once and then cached.
func Load(name string) (*Variant, error) {
	cache.Lock()
	defer cache.Unlock()
	if v, ok := cache.variants[name]; ok {
		return v, nil
	}
	manifest := path.Join("data", name+".yaml")
	if _, err := fs.Stat(builtin, manifest); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	v, err := LoadFS(builtin, manifest)
	if err != nil {
		return nil, err
	}
	cache.variants[name] = v
	return v, nil
}

// MustLoad is like Load, but panics on error.
func MustLoad(name string) *Variant {
	v, err := Load(name)
	if err != nil {
		panic(err)
	}
	return v
}

// LoadFS loads a variant from a manifest in a file system. The manifest's
// table is located relative to the manifest.
func LoadFS(fsys fs.FS, manifest string) (*Variant, error) {
	m, err := ReadManifest(fsys, manifest)
	if err != nil {
		return nil, err
	}
	unknown, _ := m.unknown()
	lang, _ := m.language()
	b := inventory.NewBuilder(m.Name).Version(m.Version).Language(lang)
	if m.FoldCase {
		b.FoldCase(lang)
	}
	if form, ok, _ := m.form(); ok {
		b.Normalize(form)
	}
	f, err := fsys.Open(m.Table)
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", m.Name, err)
	}
	defer f.Close()
	if err = inventory.ReadTable(f, b); err != nil {
		return nil, fmt.Errorf("variant %s: %s: %w", m.Name, m.Table, err)
	}
	inv, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", m.Name, err)
	}
	v := &Variant{
		Name:        m.Name,
		Version:     m.Version,
		Language:    lang,
		Inventory:   inv,
		Unknown:     unknown,
		DefaultMode: phonseg.Mode(m.DefaultMode),
		manifest:    m,
	}
	phonseg.CT().Infof("loaded variant %s", v)
	return v, nil
}

// Modes lists the label modes of a variant, sorted.
func (v *Variant) Modes() []phonseg.Mode {
	modes := make([]phonseg.Mode, 0, len(v.manifest.Modes))
	for m := range v.manifest.Modes {
		modes = append(modes, phonseg.Mode(m))
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// Policy returns the emission policy for a mode. An empty mode selects the
// variant's default mode.
func (v *Variant) Policy(mode phonseg.Mode) (phonseg.Policy, error) {
	if mode == "" {
		mode = v.DefaultMode
	}
	return v.manifest.policy(mode)
}

// Segmenter creates a segmenter for a mode, using the variant's handling of
// unknown characters.
func (v *Variant) Segmenter(mode phonseg.Mode, opts ...segment.Option) (*segment.Segmenter, error) {
	p, err := v.Policy(mode)
	if err != nil {
		return nil, err
	}
	return segment.NewSegmenter(v.Inventory, p, v.Unknown, opts...)
}

// Labels creates the label table for a mode.
func (v *Variant) Labels(mode phonseg.Mode) (*labels.Table, error) {
	p, err := v.Policy(mode)
	if err != nil {
		return nil, err
	}
	return labels.ForInventory(v.Inventory, p)
}
