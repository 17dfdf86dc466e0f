package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/internal/config"
	"github.com/npillmayer/phonseg/segment"
	"github.com/npillmayer/phonseg/variant"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "phonseg",
		Short:         "Segment phonetic transcriptions into phonemes and tones",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupTracing(loaded.Log.Level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newSegmentCmd())
	cmd.AddCommand(newLabelsCmd())
	cmd.AddCommand(newInventoryCmd())

	return cmd
}

// setupTracing installs a Go log tracer as core tracer.
func setupTracing(level string) {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(traceLevel(level))
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

func requireConfig() (config.Config, error) {
	if activeCfg.Segment.Variant == "" && activeCfg.Segment.Manifest == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// loadVariant loads the configured variant, either a built-in one or one
// from a manifest file.
func loadVariant(cfg config.Config) (*variant.Variant, error) {
	if cfg.Segment.Manifest != "" {
		dir, name := filepath.Split(cfg.Segment.Manifest)
		if dir == "" {
			dir = "."
		}
		return variant.LoadFS(os.DirFS(dir), name)
	}
	return variant.Load(cfg.Segment.Variant)
}

// newSegmenter creates a segmenter for the configured variant and mode,
// applying an override for unknown characters, if configured.
func newSegmenter(cfg config.Config, v *variant.Variant) (*segment.Segmenter, error) {
	policy, err := v.Policy(phonseg.Mode(cfg.Segment.Mode))
	if err != nil {
		return nil, err
	}
	unknown := v.Unknown
	if u := cfg.UnknownHandling(); u != phonseg.UnknownUnset {
		unknown = u
	}
	return segment.NewSegmenter(v.Inventory, policy, unknown,
		segment.MaxInputLength(cfg.Segment.MaxInput))
}
