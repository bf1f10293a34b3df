package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-nitf/pkg/app/inspect"
)

// FormatOutput writes extraction results to w according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(w io.Writer, response *Response) error {
	if len(response.Files) == 0 {
		fmt.Fprintln(w, "No payloads extracted.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "KIND\tNUMBER\tCODE\tOFFSET\tLENGTH\tPATH\n")
		fmt.Fprintf(tw, "----\t------\t----\t------\t------\t----\n")
		for _, f := range response.Files {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%s\n",
				f.Kind, f.Number, f.Code, f.Offset, inspect.FormatSize(f.Length), f.Path)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n%s\n", FormatSummary(response))
	return nil
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	return fmt.Sprintf("Extracted %d payload(s), %s, to %s in %v (manifest %s, run %s)",
		len(response.Files), inspect.FormatSize(response.TotalBytes), response.OutputDir,
		response.ElapsedTime, response.ManifestPath, response.RunID)
}
