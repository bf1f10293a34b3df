package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the reader configuration after defaults, the config file and NITF_
environment variables have been applied.`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	switch GetOutputFormat() {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(readerConfig)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(readerConfig)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "buffer_size\t%d\n", readerConfig.BufferSize)
		fmt.Fprintf(tw, "max_extended_header_length\t%d\n", readerConfig.MaxExtendedHeaderLength)
		fmt.Fprintf(tw, "output_format\t%s\n", readerConfig.OutputFormat)
		fmt.Fprintf(tw, "extract_directory\t%s\n", readerConfig.ExtractDirectory)
		fmt.Fprintf(tw, "strict_consistency\t%t\n", readerConfig.StrictConsistency)
		fmt.Fprintf(tw, "timeout\t%s\n", readerConfig.Timeout)
		return tw.Flush()
	}
}
