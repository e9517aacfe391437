package config

import (
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/ontogen/internal/errors"
)

// FileName is the configuration file written by init.
const FileName = "ontogen.yml"

// SeedDrivers are the stores the seed command can write to.
var SeedDrivers = []string{"memory", "sqlite3", "postgres", "pgx", "redis"}

// Config represents the ontogen configuration
type Config struct {
	Ontology     string     `mapstructure:"ontology" yaml:"ontology"`
	Output       string     `mapstructure:"output" yaml:"output"`
	Package      string     `mapstructure:"package" yaml:"package"`
	PrefixMode   bool       `mapstructure:"prefix_mode" yaml:"prefix_mode"`
	SetMode      bool       `mapstructure:"set_mode" yaml:"set_mode"`
	AbstractMode bool       `mapstructure:"abstract_mode" yaml:"abstract_mode"`
	FactoryName  string     `mapstructure:"factory_name" yaml:"factory_name"`
	Strict       bool       `mapstructure:"strict" yaml:"strict"`
	Log          LogConfig  `mapstructure:"log" yaml:"log"`
	Seed         SeedConfig `mapstructure:"seed" yaml:"seed"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	JSON  bool   `mapstructure:"json" yaml:"json"`
	Level string `mapstructure:"level" yaml:"level"`
}

// SeedConfig selects the store individuals are seeded into
type SeedConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Ontology:    "ontology.yaml",
		Output:      "generated",
		Package:     "model",
		FactoryName: "Factory",
		Log:         LogConfig{Level: "info"},
		Seed:        SeedConfig{Driver: "memory"},
	}
}

// Load loads the configuration from ontogen.{yml,yaml,toml,json} in the
// working directory, then ONTOGEN_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("ontology", def.Ontology)
	v.SetDefault("output", def.Output)
	v.SetDefault("package", def.Package)
	v.SetDefault("prefix_mode", false)
	v.SetDefault("set_mode", false)
	v.SetDefault("abstract_mode", false)
	v.SetDefault("factory_name", def.FactoryName)
	v.SetDefault("strict", false)
	v.SetDefault("log.json", false)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("seed.driver", def.Seed.Driver)
	v.SetDefault("seed.dsn", "")

	v.SetConfigName("ontogen")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ONTOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Mark(errors.Wrap(err, "failed to read config file"), errors.ErrInvalidConfig)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to unmarshal config"), errors.ErrInvalidConfig)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Write saves cfg as YAML at path, refusing to overwrite unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing %s", path)
}

// Validate checks values that would otherwise fail late in generation.
func Validate(cfg *Config) error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Mark(errors.Newf(format, args...), errors.ErrInvalidConfig)
	}

	if !token.IsIdentifier(cfg.Package) {
		return invalid("package must be a Go identifier, got: %q", cfg.Package)
	}
	if cfg.FactoryName != "" && !token.IsIdentifier(cfg.FactoryName) {
		return invalid("factory_name must be a Go identifier, got: %q", cfg.FactoryName)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(cfg.Log.Level)) {
		return invalid("log.level must be debug, info, warn or error, got: %q", cfg.Log.Level)
	}
	if !slices.Contains(SeedDrivers, cfg.Seed.Driver) {
		return errors.WithHintf(invalid("seed.driver %q is not supported", cfg.Seed.Driver),
			"use one of %s", strings.Join(SeedDrivers, ", "))
	}
	return nil
}
