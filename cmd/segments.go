package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-nitf/pkg/app"
	"github.com/deploymenttheory/go-nitf/pkg/app/inspect"
)

var segmentKinds []string

var segmentsCmd = &cobra.Command{
	Use:   "segments [file]",
	Short: "List segment placements and codes",
	Long: `List every segment of a file with its subheader offset, payload offset and
length, and the compression or format code a codec would dispatch on.

Examples:
  # All segments
  go-nitf segments scene.ntf

  # Image segments as json
  go-nitf segments scene.ntf --kind image -o json`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSegments(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(segmentsCmd)

	segmentsCmd.Flags().StringSliceVarP(&segmentKinds, "kind", "k", nil, "segment kinds to list (image,graphic,text,data-extension)")
}

func runSegments(cmd *cobra.Command, filePath string) error {
	ctx, cancel := newAppContext(cmd)
	defer cancel()

	response, err := inspect.Handle(ctx, &inspect.Request{
		FilePath: filePath,
		Filter:   app.SegmentFilter{Kinds: segmentKinds},
		Config:   readerConfig,
	})
	if err != nil {
		return err
	}

	return inspect.FormatSegments(cmd.OutOrStdout(), response, ctx.OutputFormat)
}
