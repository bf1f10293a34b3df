package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes inspection results to w according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatSegments writes only the segment list to w
func FormatSegments(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response.Segments)
	case "yaml":
		return formatYAML(w, response.Segments)
	case "table":
		return formatSegmentTable(w, response.Segments)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a header block, segment table and findings
func formatTable(w io.Writer, response *Response) error {
	h := response.Header

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", response.File.Path)
	if response.File.Size >= 0 {
		fmt.Fprintf(tw, "Size:\t%s\n", FormatSize(uint64(response.File.Size)))
	}
	fmt.Fprintf(tw, "Profile:\t%s (%s)\n", h.Profile, h.FileType)
	fmt.Fprintf(tw, "Complexity:\t%02d\n", h.ComplexityLevel)
	fmt.Fprintf(tw, "Station:\t%s\n", h.StationID)
	fmt.Fprintf(tw, "Date/Time:\t%s\n", h.DateTime)
	fmt.Fprintf(tw, "Title:\t%s\n", h.Title)
	fmt.Fprintf(tw, "Classification:\t%s\n", h.Classification)
	fmt.Fprintf(tw, "Originator:\t%s %s\n", h.OriginatorName, h.OriginatorPhone)
	if h.Streaming {
		fmt.Fprintf(tw, "File Length:\tstreaming\n")
	} else {
		fmt.Fprintf(tw, "File Length:\t%d\n", h.FileLength)
	}
	fmt.Fprintf(tw, "Header Length:\t%d (decoded %d)\n", h.HeaderLength, h.HeaderBytes)
	if err := tw.Flush(); err != nil {
		return err
	}

	if h.Security != nil {
		fmt.Fprintf(w, "\nSecurity:\n")
		if err := formatSecurity(w, h.Security); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n")
	if err := formatSegmentTable(w, response.Segments); err != nil {
		return err
	}

	if len(response.Findings) > 0 {
		fmt.Fprintf(w, "\nConsistency findings:\n")
		for _, f := range response.Findings {
			fmt.Fprintf(w, "  - %s\n", f.Error())
		}
	}

	fmt.Fprintf(w, "\n%s\n", FormatSummary(response))
	return nil
}

// formatSegmentTable formats segments as a table
func formatSegmentTable(w io.Writer, segments []SegmentSummary) error {
	if len(segments) == 0 {
		fmt.Fprintln(w, "No segments.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	fmt.Fprintf(tw, "KIND\tNUMBER\tID\tCODE\tDESCRIPTION\tCLASS\tSUBHEADER\tPAYLOAD\tLENGTH\n")
	fmt.Fprintf(tw, "----\t------\t--\t----\t-----------\t-----\t---------\t-------\t------\n")

	// Data rows
	for _, s := range segments {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			s.Kind, s.Number, s.ID, s.Code, s.Description, s.Classification,
			s.SubheaderOffset, s.PayloadOffset, s.PayloadLength)
	}

	return tw.Flush()
}

// formatSecurity formats a security block as indented key/value rows
func formatSecurity(w io.Writer, s *SecuritySummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Classification", s.Classification},
		{"System", s.ClassificationSystem},
		{"Codewords", s.Codewords},
		{"Control/Handling", s.ControlAndHandling},
		{"Release", s.ReleaseInstructions},
		{"Declassification", s.DeclassificationType + " " + s.DeclassificationDate},
		{"Downgrade", s.Downgrade + " " + s.DowngradeDate},
		{"Authority", s.ClassificationAuthority},
		{"Control Number", s.SecurityControlNumber},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(v)
}

// FormatSummary provides a brief summary for verbose output
func FormatSummary(response *Response) string {
	summary := fmt.Sprintf("%d segment", len(response.Segments))
	if len(response.Segments) != 1 {
		summary += "s"
	}

	var payload uint64
	for _, s := range response.Segments {
		payload += s.PayloadLength
	}
	summary += fmt.Sprintf(" carrying %s of data", FormatSize(payload))

	switch n := len(response.Findings); n {
	case 0:
		summary += ", consistent"
	case 1:
		summary += ", 1 finding"
	default:
		summary += fmt.Sprintf(", %d findings", n)
	}

	return summary + fmt.Sprintf(" (decoded in %v)", response.ParseTime)
}
