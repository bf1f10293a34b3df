package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-nitf/pkg/app"
	"github.com/deploymenttheory/go-nitf/pkg/app/extract"
)

var (
	// Destination (extract-specific)
	extractDest  string
	extractKinds []string
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Copy segment payloads to separate files",
	Long: `Copy the payload of each segment to <dest>/<kind>_<number>.bin and write a
manifest.yaml describing the run. Payloads are copied as stored; compressed
image data is not decoded.

Examples:
  # Extract everything to the configured extract_directory
  go-nitf extract scene.ntf

  # Extract only image payloads
  go-nitf extract scene.ntf --dest ./images --kind image`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractDest, "dest", "d", "", "destination directory (default from extract_directory)")
	extractCmd.Flags().StringSliceVarP(&extractKinds, "kind", "k", nil, "segment kinds to extract (image,graphic,text,data-extension)")
}

func runExtract(cmd *cobra.Command, filePath string) error {
	ctx, cancel := newAppContext(cmd)
	defer cancel()

	dest := extractDest
	if dest == "" {
		dest = readerConfig.ExtractDirectory
	}

	response, err := extract.Handle(ctx, &extract.Request{
		FilePath:  filePath,
		OutputDir: dest,
		Filter:    app.SegmentFilter{Kinds: extractKinds},
		Config:    readerConfig,
	})
	if err != nil {
		return err
	}

	return extract.FormatOutput(cmd.OutOrStdout(), response, ctx.OutputFormat)
}
