package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-nitf/internal/config"
	"github.com/deploymenttheory/go-nitf/pkg/app"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	noColor      bool
	outputFormat string
	configFile   string

	// readerConfig is loaded once before any subcommand runs
	readerConfig *config.ReaderConfig
)

var rootCmd = &cobra.Command{
	Use:   "go-nitf",
	Short: "NITF and NSIF file header and segment inspector",
	Long: `go-nitf is a read-only command-line tool for decoding the file header and
segment structure of NITF 2.0, NITF 2.1 and NSIF 1.0 files.

It reports the header, security markings and segment index, checks the
declared lengths against the file, and extracts segment payloads for
downstream codecs without decoding them.

Commands:
  inspect     Decode the file header and every segment subheader
  segments    List segment placements and codes
  extract     Copy segment payloads to separate files
  config      Show the effective configuration`,
	Version:           "0.1.0-dev",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "plain logfmt log output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", config.OutputTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: nitf-config.yaml in ., ./config, $HOME/.nitf, /etc/nitf)")
}

// loadConfig reads the reader configuration. An explicit --output wins over
// the configured output format.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadReaderConfig(configFile)
	if err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "failed to load configuration", err)
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputFormat = outputFormat
		if err := cfg.Validate(); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid --output", err)
		}
	}
	readerConfig = cfg
	return nil
}

// newAppContext creates the application context shared by all subcommands,
// bounded by the configured timeout. The caller must call the returned cancel.
func newAppContext(cmd *cobra.Command) (*app.Context, context.CancelFunc) {
	ctx := app.NewContextWithWriter(cmd.ErrOrStderr())
	ctx.Context = cmd.Context()
	ctx.OutputFormat = GetOutputFormat()
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	ctx.NoColor = noColor
	ctx.DefaultTimeout = readerConfig.Timeout
	ctx.ApplyVerbosity()

	if ctx.DefaultTimeout <= 0 {
		return ctx.WithCancel()
	}
	return ctx.WithTimeout(ctx.DefaultTimeout)
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format, taking the configuration file into account
func GetOutputFormat() string {
	if readerConfig != nil {
		return readerConfig.OutputFormat
	}
	return outputFormat
}
