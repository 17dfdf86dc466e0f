package config

import (
	"fmt"
	"strings"

	"github.com/npillmayer/phonseg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Segment SegmentConfig `mapstructure:"segment"`
	Log     LogConfig     `mapstructure:"log"`
}

type SegmentConfig struct {
	Variant  string `mapstructure:"variant"`
	Manifest string `mapstructure:"manifest"` // custom variant manifest, overrides Variant
	Mode     string `mapstructure:"mode"`     // empty: the variant's default mode
	Unknown  string `mapstructure:"unknown"`  // empty: as declared by the variant
	Workers  int    `mapstructure:"workers"`
	MaxInput int    `mapstructure:"max_input"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Segment: SegmentConfig{
			Variant:  "na",
			Workers:  4,
			MaxInput: 64 * 1024,
		},
		Log: LogConfig{
			Level: "error",
		},
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"variant":   "segment.variant",
	"manifest":  "segment.manifest",
	"mode":      "segment.mode",
	"unknown":   "segment.unknown",
	"workers":   "segment.workers",
	"max-input": "segment.max_input",
	"log-level": "log.level",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("variant", defaults.Segment.Variant, "Built-in language variant (na, kunwinjku)")
	fs.String("manifest", defaults.Segment.Manifest, "Path to a custom variant manifest (YAML)")
	fs.String("mode", defaults.Segment.Mode, "Label mode, e.g. phonemes, tones, phonemes_and_tones")
	fs.String("unknown", defaults.Segment.Unknown, "Override handling of unknown characters: strict or lenient")
	fs.Int("workers", defaults.Segment.Workers, "Number of concurrent segmenting workers")
	fs.Int("max-input", defaults.Segment.MaxInput, "Maximum size of an utterance in bytes")
	fs.String("log-level", defaults.Log.Level, "Log level: debug, info or error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		fs := opts.Cmd.Flags()
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix("PHONSEG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("phonseg")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("segment.variant", c.Segment.Variant)
	v.SetDefault("segment.manifest", c.Segment.Manifest)
	v.SetDefault("segment.mode", c.Segment.Mode)
	v.SetDefault("segment.unknown", c.Segment.Unknown)
	v.SetDefault("segment.workers", c.Segment.Workers)
	v.SetDefault("segment.max_input", c.Segment.MaxInput)
	v.SetDefault("log.level", c.Log.Level)
}

// Validate checks values which cannot be checked by decoding.
func (c Config) Validate() error {
	if c.Segment.Unknown != "" {
		if _, err := phonseg.ParseUnknownHandling(c.Segment.Unknown); err != nil {
			return fmt.Errorf("segment.unknown: %w", err)
		}
	}
	if c.Segment.Variant == "" && c.Segment.Manifest == "" {
		return fmt.Errorf("segment.variant: no variant given")
	}
	if c.Segment.Workers < 1 {
		return fmt.Errorf("segment.workers must be at least 1, is %d", c.Segment.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "error":
	default:
		return fmt.Errorf("log.level must be debug, info or error, is %q", c.Log.Level)
	}
	return nil
}

// UnknownHandling returns the override for unknown characters, or
// phonseg.UnknownUnset if the variant's setting applies.
func (c Config) UnknownHandling() phonseg.UnknownHandling {
	u, err := phonseg.ParseUnknownHandling(c.Segment.Unknown)
	if err != nil {
		return phonseg.UnknownUnset
	}
	return u
}
