package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-nitf/internal/parsers/cursor"
)

// Output formats accepted by the command line tool
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ReaderConfig holds configuration for reading NITF files
type ReaderConfig struct {
	// BufferSize is the read buffer of the field cursor in octets
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size" json:"buffer_size"`
	// MaxExtendedHeaderLength rejects files whose XHDL exceeds it; 0 disables the check
	MaxExtendedHeaderLength int    `mapstructure:"max_extended_header_length" yaml:"max_extended_header_length" json:"max_extended_header_length"`
	OutputFormat            string `mapstructure:"output_format" yaml:"output_format" json:"output_format"`
	ExtractDirectory        string `mapstructure:"extract_directory" yaml:"extract_directory" json:"extract_directory"`
	// StrictConsistency turns consistency findings into inspection failures
	StrictConsistency bool `mapstructure:"strict_consistency" yaml:"strict_consistency" json:"strict_consistency"`
	// Timeout bounds each command run; 0 disables it
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// DefaultReaderConfig returns the configuration used when no file or
// environment overrides are present
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		BufferSize:              cursor.DefaultBufferSize,
		MaxExtendedHeaderLength: 0,
		OutputFormat:            OutputTable,
		ExtractDirectory:        "./extracted",
		StrictConsistency:       false,
		Timeout:                 30 * time.Second,
	}
}

// LoadReaderConfig loads reader configuration using Viper. When configFile is
// empty the standard locations are searched for nitf-config.yaml; a missing
// file is not an error. Environment variables prefixed NITF_ override both.
func LoadReaderConfig(configFile string) (*ReaderConfig, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nitf-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.nitf")
		v.AddConfigPath("/etc/nitf")
	}

	defaults := DefaultReaderConfig()
	v.SetDefault("buffer_size", defaults.BufferSize)
	v.SetDefault("max_extended_header_length", defaults.MaxExtendedHeaderLength)
	v.SetDefault("output_format", defaults.OutputFormat)
	v.SetDefault("extract_directory", defaults.ExtractDirectory)
	v.SetDefault("strict_consistency", defaults.StrictConsistency)
	v.SetDefault("timeout", defaults.Timeout)

	// Allow environment variables
	v.SetEnvPrefix("NITF")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ReaderConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values
func (c *ReaderConfig) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer_size cannot be negative: %d", c.BufferSize)
	}
	if c.MaxExtendedHeaderLength < 0 {
		return fmt.Errorf("max_extended_header_length cannot be negative: %d", c.MaxExtendedHeaderLength)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative: %s", c.Timeout)
	}
	switch c.OutputFormat {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output_format %q (use table, json or yaml)", c.OutputFormat)
	}
	return nil
}
