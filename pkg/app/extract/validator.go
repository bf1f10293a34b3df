package extract

import (
	"os"

	"github.com/deploymenttheory/go-nitf/pkg/app"
)

// Validate validates an extraction request
func (r *Request) Validate() error {
	if r.FilePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "file path is required", nil)
	}
	if r.OutputDir == "" {
		return app.NewError(app.ErrCodeInvalidInput, "output directory is required", nil)
	}

	if err := r.Filter.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid segment filter", err)
	}

	if r.Config != nil {
		if err := r.Config.Validate(); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid reader configuration", err)
		}
	}

	info, err := os.Stat(r.FilePath)
	if err != nil {
		return app.NewError(app.ErrCodeFileAccess, "cannot access "+r.FilePath, err)
	}
	if !info.Mode().IsRegular() {
		return app.NewError(app.ErrCodeInvalidInput, r.FilePath+" is not a regular file", nil)
	}

	// The output directory may not exist yet, but must not be a file
	if info, err := os.Stat(r.OutputDir); err == nil && !info.IsDir() {
		return app.NewError(app.ErrCodeInvalidInput, r.OutputDir+" is not a directory", nil)
	}

	return nil
}
