package extract

import (
	"time"

	"github.com/deploymenttheory/go-nitf/internal/config"
	"github.com/deploymenttheory/go-nitf/pkg/app"
)

// ManifestName is the file written next to the extracted payloads
const ManifestName = "manifest.yaml"

// Request represents a payload extraction request
type Request struct {
	FilePath  string
	OutputDir string
	Filter    app.SegmentFilter

	// Config overrides the reader defaults when set
	Config *config.ReaderConfig
}

// Response represents extraction results
type Response struct {
	RunID        string          `json:"run_id" yaml:"run_id"`
	OutputDir    string          `json:"output_dir" yaml:"output_dir"`
	ManifestPath string          `json:"manifest_path" yaml:"manifest_path"`
	Files        []ExtractedFile `json:"files" yaml:"files"`
	TotalBytes   uint64          `json:"total_bytes" yaml:"total_bytes"`
	ElapsedTime  time.Duration   `json:"elapsed_time" yaml:"elapsed_time"`
}

// ExtractedFile represents one payload written to disk
type ExtractedFile struct {
	Kind   string `json:"kind" yaml:"kind"`
	Number int    `json:"number" yaml:"number"`
	// Code is the compression or format code a payload codec dispatches on
	Code   string `json:"code" yaml:"code"`
	Path   string `json:"path" yaml:"path"`
	Offset uint64 `json:"offset" yaml:"offset"`
	Length uint64 `json:"length" yaml:"length"`
}

// Manifest is the yaml document describing one extraction run
type Manifest struct {
	RunID     string          `yaml:"run_id"`
	Source    string          `yaml:"source"`
	Profile   string          `yaml:"profile"`
	CreatedAt time.Time       `yaml:"created_at"`
	Segments  []ExtractedFile `yaml:"segments"`
}
