package services

import (
	"errors"

	"github.com/hashicorp/go-multierror"

	"github.com/deploymenttheory/go-nitf/internal/types"
)

// ParseResult is a decoded file together with what is known about its source
type ParseResult struct {
	FilePath string
	// FileSize is the size of the source in octets, or -1 when it is not known
	FileSize    int64
	Model       *types.FileModel
	HeaderBytes uint64
	// Consistency holds the non-fatal findings of the consistency checker, or nil
	Consistency error
}

// Findings returns the individual consistency findings
func (pr *ParseResult) Findings() []Finding {
	return FindingsOf(pr.Consistency)
}

// Finding is one non-fatal inconsistency between declared and observed values
type Finding struct {
	Check   string `json:"check" yaml:"check"`
	Segment string `json:"segment,omitempty" yaml:"segment,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (f Finding) Error() string {
	if f.Segment != "" {
		return f.Check + " (" + f.Segment + "): " + f.Message
	}
	return f.Check + ": " + f.Message
}

// FindingsOf flattens a consistency error into its findings
func FindingsOf(err error) []Finding {
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var f Finding
		if errors.As(err, &f) {
			return []Finding{f}
		}
		return []Finding{{Check: "unknown", Message: err.Error()}}
	}

	findings := make([]Finding, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		findings = append(findings, FindingsOf(e)...)
	}
	return findings
}
