package main

import (
	"fmt"

	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/variant"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type inventoryListing struct {
	Variant  string              `yaml:"variant"`
	Version  string              `yaml:"version"`
	Language string              `yaml:"language"`
	Unknown  string              `yaml:"unknown"`
	Modes    []string            `yaml:"modes"`
	Units    map[string][]string `yaml:"units"` // category → units
}

func newInventoryCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Describe the units of a variant, or list the built-in variants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				for _, name := range variant.Names() {
					v, err := variant.Load(name)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
				return nil
			}
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			v, err := loadVariant(cfg)
			if err != nil {
				return err
			}
			v.Inventory.Stats()
			listing := inventoryListing{
				Variant:  v.Name,
				Version:  v.Version,
				Language: v.Language.String(),
				Unknown:  v.Unknown.String(),
				Units:    make(map[string][]string),
			}
			for _, m := range v.Modes() {
				listing.Modes = append(listing.Modes, string(m))
			}
			for _, c := range phonseg.Categories() {
				if units := v.Inventory.Units(c); len(units) > 0 {
					listing.Units[c.String()] = units
				}
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(listing); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List built-in variants")

	return cmd
}
