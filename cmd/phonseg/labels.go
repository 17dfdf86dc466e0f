package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/batch"
	"github.com/npillmayer/phonseg/variant"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// vocabulary is the YAML document written by the labels command.
type vocabulary struct {
	Variant string   `yaml:"variant"`
	Version string   `yaml:"version"`
	Mode    string   `yaml:"mode"`
	Size    int      `yaml:"size"`
	Labels  []string `yaml:"labels"` // index is the label index, 0 is padding
}

func newLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Print the label vocabulary of a variant and mode as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			v, err := loadVariant(cfg)
			if err != nil {
				return err
			}
			mode := phonseg.Mode(cfg.Segment.Mode)
			if mode == "" {
				mode = v.DefaultMode
			}
			tab, err := v.Labels(mode)
			if err != nil {
				return err
			}
			voc := vocabulary{
				Variant: v.Name,
				Version: v.Version,
				Mode:    string(mode),
				Size:    tab.VocabSize(),
			}
			for i := 0; i < tab.VocabSize(); i++ {
				u, _ := tab.Unit(i)
				voc.Labels = append(voc.Labels, u)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(voc); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// writeIndices writes label indices for segmented utterances.
func writeIndices(w io.Writer, v *variant.Variant, mode string, results []batch.Result) error {
	tab, err := v.Labels(phonseg.Mode(mode))
	if err != nil {
		return err
	}
	for _, r := range results {
		idx, err := tab.Encode(r.Units)
		if err != nil {
			return fmt.Errorf("utterance %d: %w", r.Index, err)
		}
		s := make([]string, len(idx))
		for i, n := range idx {
			s[i] = strconv.Itoa(n)
		}
		if _, err = fmt.Fprintln(w, strings.Join(s, " ")); err != nil {
			return err
		}
	}
	return nil
}
