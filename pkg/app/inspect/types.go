package inspect

import (
	"fmt"
	"time"

	"github.com/deploymenttheory/go-nitf/internal/config"
	"github.com/deploymenttheory/go-nitf/internal/services"
	"github.com/deploymenttheory/go-nitf/pkg/app"
)

// Request represents a file inspection request
type Request struct {
	FilePath string
	Filter   app.SegmentFilter

	// Strict fails the request when the consistency checker reports findings
	Strict          bool
	IncludeSecurity bool

	// Config overrides the reader defaults when set
	Config *config.ReaderConfig
}

// Response represents inspection results
type Response struct {
	RequestID string             `json:"request_id" yaml:"request_id"`
	File      FileInfo           `json:"file" yaml:"file"`
	Header    HeaderSummary      `json:"header" yaml:"header"`
	Index     []IndexEntry       `json:"index" yaml:"index"`
	Segments  []SegmentSummary   `json:"segments" yaml:"segments"`
	Findings  []services.Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
	ParseTime time.Duration      `json:"parse_time" yaml:"parse_time"`
}

// FileInfo describes the inspected source
type FileInfo struct {
	Path string `json:"path" yaml:"path"`
	// Size is -1 when the source is not a regular file
	Size int64 `json:"size" yaml:"size"`
}

// HeaderSummary represents the decoded file header
type HeaderSummary struct {
	Profile         string `json:"profile" yaml:"profile"`
	FileType        string `json:"file_type" yaml:"file_type"`
	Dialect         string `json:"dialect" yaml:"dialect"`
	ComplexityLevel int    `json:"complexity_level" yaml:"complexity_level"`
	StandardType    string `json:"standard_type" yaml:"standard_type"`
	StationID       string `json:"station_id" yaml:"station_id"`
	DateTime        string `json:"date_time" yaml:"date_time"`
	// DateTimeUTC is empty when the date-time has unknown parts
	DateTimeUTC     string `json:"date_time_utc,omitempty" yaml:"date_time_utc,omitempty"`
	Title           string `json:"title" yaml:"title"`
	Classification  string `json:"classification" yaml:"classification"`
	OriginatorName  string `json:"originator_name" yaml:"originator_name"`
	OriginatorPhone string `json:"originator_phone" yaml:"originator_phone"`
	BackgroundColor string `json:"background_color,omitempty" yaml:"background_color,omitempty"`

	FileLength     uint64 `json:"file_length" yaml:"file_length"`
	HeaderLength   uint64 `json:"header_length" yaml:"header_length"`
	HeaderBytes    uint64 `json:"header_bytes" yaml:"header_bytes"`
	Streaming      bool   `json:"streaming" yaml:"streaming"`
	CopyNumber     int    `json:"copy_number" yaml:"copy_number"`
	NumberOfCopies int    `json:"number_of_copies" yaml:"number_of_copies"`

	ExtendedHeaderDataLength int `json:"extended_header_data_length" yaml:"extended_header_data_length"`

	Security *SecuritySummary `json:"security,omitempty" yaml:"security,omitempty"`
}

// SecuritySummary represents a security block. Fields absent from the
// file's dialect read N/A.
type SecuritySummary struct {
	Dialect                   string `json:"dialect" yaml:"dialect"`
	Classification            string `json:"classification" yaml:"classification"`
	Classified                bool   `json:"classified" yaml:"classified"`
	ClassificationSystem      string `json:"classification_system" yaml:"classification_system"`
	Codewords                 string `json:"codewords" yaml:"codewords"`
	ControlAndHandling        string `json:"control_and_handling" yaml:"control_and_handling"`
	ReleaseInstructions       string `json:"release_instructions" yaml:"release_instructions"`
	DeclassificationType      string `json:"declassification_type" yaml:"declassification_type"`
	DeclassificationDate      string `json:"declassification_date" yaml:"declassification_date"`
	DeclassificationExemption string `json:"declassification_exemption" yaml:"declassification_exemption"`
	Downgrade                 string `json:"downgrade" yaml:"downgrade"`
	DowngradeDate             string `json:"downgrade_date" yaml:"downgrade_date"`
	ClassificationAuthority   string `json:"classification_authority" yaml:"classification_authority"`
	SecurityControlNumber     string `json:"security_control_number" yaml:"security_control_number"`
	DowngradeEvent            string `json:"downgrade_event" yaml:"downgrade_event"`
}

// IndexEntry represents one row of a segment index table
type IndexEntry struct {
	Kind            string `json:"kind" yaml:"kind"`
	Number          int    `json:"number" yaml:"number"`
	SubheaderLength uint32 `json:"subheader_length" yaml:"subheader_length"`
	DataLength      uint64 `json:"data_length" yaml:"data_length"`
}

// SegmentSummary represents a decoded segment
type SegmentSummary struct {
	Kind           string `json:"kind" yaml:"kind"`
	Number         int    `json:"number" yaml:"number"`
	ID             string `json:"id" yaml:"id"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Code           string `json:"code" yaml:"code"`
	Description    string `json:"description" yaml:"description"`
	Classification string `json:"classification" yaml:"classification"`

	SubheaderOffset uint64 `json:"subheader_offset" yaml:"subheader_offset"`
	SubheaderLength uint32 `json:"subheader_length" yaml:"subheader_length"`
	PayloadOffset   uint64 `json:"payload_offset" yaml:"payload_offset"`
	PayloadLength   uint64 `json:"payload_length" yaml:"payload_length"`

	// Image segments only
	Rows    uint32 `json:"rows,omitempty" yaml:"rows,omitempty"`
	Columns uint32 `json:"columns,omitempty" yaml:"columns,omitempty"`
	Bands   int    `json:"bands,omitempty" yaml:"bands,omitempty"`

	Security *SecuritySummary `json:"security,omitempty" yaml:"security,omitempty"`
}

// Label names the segment as "<kind> <number>"
func (s *SegmentSummary) Label() string {
	return fmt.Sprintf("%s %d", s.Kind, s.Number)
}

// FormatSize returns a human-readable size string
func FormatSize(size uint64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
