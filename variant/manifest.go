package variant

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/npillmayer/phonseg"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrManifest flags invalid variant manifests.
var ErrManifest = errors.New("variant: invalid manifest")

// Manifest is the YAML description of a language variant.
type Manifest struct {
	Name          string              `yaml:"name"`
	Version       string              `yaml:"version"`
	Language      string              `yaml:"language"`
	Normalization string              `yaml:"normalization"` // none, NFC, NFD, NFKC or NFKD
	FoldCase      bool                `yaml:"fold_case"`
	Unknown       string              `yaml:"unknown"` // strict or lenient; required
	Table         string              `yaml:"table"`   // relative to the manifest
	DefaultMode   string              `yaml:"default_mode"`
	Modes         map[string][]string `yaml:"modes"` // mode → emitted categories
}

// ReadManifest reads and parses a manifest from a file system.
func ReadManifest(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifest, name, err)
	}
	if m.Table != "" && !path.IsAbs(m.Table) {
		m.Table = path.Join(path.Dir(name), m.Table)
	}
	return &m, m.validate()
}

func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: missing name", ErrManifest)
	}
	if m.Table == "" {
		return fmt.Errorf("%w: %s: missing table", ErrManifest, m.Name)
	}
	if len(m.Modes) == 0 {
		return fmt.Errorf("%w: %s: no modes", ErrManifest, m.Name)
	}
	if _, ok := m.Modes[m.DefaultMode]; !ok {
		return fmt.Errorf("%w: %s: default mode %q not declared", ErrManifest, m.Name, m.DefaultMode)
	}
	if _, err := m.unknown(); err != nil {
		return err
	}
	if _, _, err := m.form(); err != nil {
		return err
	}
	if _, err := m.language(); err != nil {
		return err
	}
	for mode := range m.Modes {
		if _, err := m.policy(phonseg.Mode(mode)); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) unknown() (phonseg.UnknownHandling, error) {
	u, err := phonseg.ParseUnknownHandling(m.Unknown)
	if err != nil {
		return phonseg.UnknownUnset, fmt.Errorf("%w: %s: %v", ErrManifest, m.Name, err)
	}
	return u, nil
}

// form returns the normalization form, and false if no normalization is
// to be done.
func (m *Manifest) form() (norm.Form, bool, error) {
	switch strings.ToUpper(m.Normalization) {
	case "", "NONE":
		return norm.NFC, false, nil
	case "NFC":
		return norm.NFC, true, nil
	case "NFD":
		return norm.NFD, true, nil
	case "NFKC":
		return norm.NFKC, true, nil
	case "NFKD":
		return norm.NFKD, true, nil
	}
	return norm.NFC, false, fmt.Errorf("%w: %s: unknown normalization form %q",
		ErrManifest, m.Name, m.Normalization)
}

func (m *Manifest) language() (language.Tag, error) {
	if m.Language == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(m.Language)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %s: %v", ErrManifest, m.Name, err)
	}
	return tag, nil
}

func (m *Manifest) policy(mode phonseg.Mode) (phonseg.Policy, error) {
	names, ok := m.Modes[string(mode)]
	if !ok {
		return phonseg.Policy{}, fmt.Errorf("%w: %q for variant %s", ErrUnknownMode, mode, m.Name)
	}
	cats := make([]phonseg.Category, 0, len(names))
	for _, n := range names {
		c, err := phonseg.ParseCategory(n)
		if err != nil {
			return phonseg.Policy{}, fmt.Errorf("%w: %s: mode %s: %v", ErrManifest, m.Name, mode, err)
		}
		cats = append(cats, c)
	}
	return phonseg.NewPolicy(string(mode), cats...), nil
}
