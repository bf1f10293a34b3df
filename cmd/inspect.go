package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-nitf/pkg/app"
	"github.com/deploymenttheory/go-nitf/pkg/app/inspect"
)

var (
	// Segment selection (inspect command only)
	inspectKinds []string

	// Report options
	inspectStrict   bool
	inspectSecurity bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Decode the file header and segment subheaders",
	Long: `Decode a NITF or NSIF file and report its header, segment index and
segment subheaders, followed by any consistency findings.

Examples:
  # Summarise a file
  go-nitf inspect scene.ntf

  # Include every security field, as yaml
  go-nitf inspect scene.ntf --security -o yaml

  # Fail when declared lengths disagree with the file
  go-nitf inspect scene.ntf --strict`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringSliceVarP(&inspectKinds, "kind", "k", nil, "segment kinds to report (image,graphic,text,data-extension)")
	inspectCmd.Flags().BoolVar(&inspectStrict, "strict", false, "fail on consistency findings (default from strict_consistency)")
	inspectCmd.Flags().BoolVar(&inspectSecurity, "security", false, "include security blocks")
}

func runInspect(cmd *cobra.Command, filePath string) error {
	// Create application context
	ctx, cancel := newAppContext(cmd)
	defer cancel()

	strict := inspectStrict
	if !cmd.Flags().Changed("strict") {
		strict = readerConfig.StrictConsistency
	}

	// Create inspection request
	request := &inspect.Request{
		FilePath:        filePath,
		Filter:          app.SegmentFilter{Kinds: inspectKinds},
		Strict:          strict,
		IncludeSecurity: inspectSecurity,
		Config:          readerConfig,
	}

	// Handle the request through application layer
	response, err := inspect.Handle(ctx, request)
	if response != nil {
		if ferr := inspect.FormatOutput(cmd.OutOrStdout(), response, ctx.OutputFormat); ferr != nil {
			return ferr
		}
	}
	return err
}
