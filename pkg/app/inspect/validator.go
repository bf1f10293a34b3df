package inspect

import (
	"os"

	"github.com/deploymenttheory/go-nitf/pkg/app"
)

// Validate validates an inspection request
func (r *Request) Validate() error {
	if r.FilePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "file path is required", nil)
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
	if info.IsDir() {
		return app.NewError(app.ErrCodeInvalidInput, r.FilePath+" is a directory", nil)
	}

	return nil
}
