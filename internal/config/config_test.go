package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/phonseg"
	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

func newFlagBinder(defaults Config, args ...string) (*fakeBinder, error) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)
	return &fakeBinder{fs: fs}, fs.Parse(args)
}

// chdir switches to an empty directory, so that no phonseg.yaml is found.
func chdir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Segment.Variant != "na" {
		t.Errorf("Segment.Variant = %q; want %q", cfg.Segment.Variant, "na")
	}
	if cfg.Segment.Workers != 4 {
		t.Errorf("Segment.Workers = %d; want 4", cfg.Segment.Workers)
	}
	if cfg.Segment.MaxInput != 64*1024 {
		t.Errorf("Segment.MaxInput = %d; want %d", cfg.Segment.MaxInput, 64*1024)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q; want %q", cfg.Log.Level, "error")
	}
	if cfg.UnknownHandling() != phonseg.UnknownUnset {
		t.Errorf("expected no override for unknown characters")
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	binder, err := newFlagBinder(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v; want defaults", cfg)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	chdir(t)
	binder, err := newFlagBinder(DefaultConfig(),
		"--variant=kunwinjku", "--workers=8", "--unknown=strict", "--log-level=debug")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Segment.Variant != "kunwinjku" || cfg.Segment.Workers != 8 || cfg.Log.Level != "debug" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.UnknownHandling() != phonseg.Strict {
		t.Errorf("expected strict override, have %s", cfg.UnknownHandling())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t)
	t.Setenv("PHONSEG_SEGMENT_MODE", "tones")
	t.Setenv("PHONSEG_LOG_LEVEL", "info")
	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Segment.Mode != "tones" {
		t.Errorf("Segment.Mode = %q; want %q", cfg.Segment.Mode, "tones")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q; want %q", cfg.Log.Level, "info")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "phonseg.yaml")
	content := `
segment:
  variant: kunwinjku
  workers: 2
  max_input: 1024
log:
  level: info
`
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	binder, err := newFlagBinder(DefaultConfig(), "--workers=3")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(LoadOptions{Cmd: binder, ConfigFile: cfgFile, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Segment.Variant != "kunwinjku" || cfg.Segment.MaxInput != 1024 || cfg.Log.Level != "info" {
		t.Errorf("config file not applied: %+v", cfg)
	}
	if cfg.Segment.Workers != 3 {
		t.Errorf("expected flag to win over config file, have %d workers", cfg.Segment.Workers)
	}
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t)
	for _, args := range [][]string{
		{"--unknown=maybe"},
		{"--workers=0"},
		{"--log-level=verbose"},
		{"--variant="},
	} {
		binder, err := newFlagBinder(DefaultConfig(), args...)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Load(LoadOptions{Cmd: binder, Defaults: DefaultConfig()}); err == nil {
			t.Errorf("expected %v to be rejected", args)
		}
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "missing.yaml"),
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
