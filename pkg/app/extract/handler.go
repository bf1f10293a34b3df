package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-nitf/internal/services"
	"github.com/deploymenttheory/go-nitf/internal/types"
	"github.com/deploymenttheory/go-nitf/pkg/app"
)

// Handle processes an extraction request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx.Log("extracting payloads", "path", req.FilePath, "output", req.OutputDir, "run_id", runID)
	ctx.Progress("Decoding file...", 5)

	// 2. Decode the file to locate every payload
	reader := services.NewNitfReader(req.Config, ctx.Logger)
	result, err := reader.ParseFile(ctx, req.FilePath)
	if err != nil {
		return nil, app.FromParseError("failed to decode "+req.FilePath, err)
	}

	var selected []types.Segment
	progress := app.ProgressUpdate{StartedAt: startTime}
	for _, seg := range result.Model.Segments() {
		if req.Filter.Includes(seg.Kind()) {
			selected = append(selected, seg)
			progress.Total += int64(seg.Placement().Payload.Length)
		}
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, app.NewError(app.ErrCodeFileAccess, "failed to create output directory", err)
	}

	source, err := os.Open(req.FilePath)
	if err != nil {
		return nil, app.NewError(app.ErrCodeFileAccess, "failed to reopen "+req.FilePath, err)
	}
	defer source.Close()

	// 3. Copy each payload
	response := &Response{
		RunID:     runID,
		OutputDir: req.OutputDir,
		Files:     make([]ExtractedFile, 0, len(selected)),
	}
	var access services.PayloadService = services.NewPayloadAccess()

	for _, seg := range selected {
		if err := ctx.Err(); err != nil {
			return nil, app.FromParseError("extraction cancelled", err)
		}

		file, err := writePayload(access, source, seg, req.OutputDir)
		if err != nil {
			return nil, app.NewError(app.ErrCodeFileAccess, "failed to extract payload", err)
		}
		response.Files = append(response.Files, file)
		response.TotalBytes += file.Length

		progress.Completed += int64(file.Length)
		progress.ElapsedTime = time.Since(startTime)
		progress.Message = fmt.Sprintf("Wrote %s", filepath.Base(file.Path))
		ctx.Progress(progress.Message, 10+progress.Percent()*80/100)
	}

	// 4. Write the manifest
	manifest := Manifest{
		RunID:     runID,
		Source:    req.FilePath,
		Profile:   result.Model.Header.FileType.Code(),
		CreatedAt: time.Now().UTC(),
		Segments:  response.Files,
	}
	response.ManifestPath = filepath.Join(req.OutputDir, ManifestName)
	if err := writeManifest(response.ManifestPath, &manifest); err != nil {
		return nil, app.NewError(app.ErrCodeFileAccess, "failed to write manifest", err)
	}

	response.ElapsedTime = time.Since(startTime)
	ctx.Progress("Complete", 100)
	ctx.Log("extraction completed", "files", len(response.Files), "bytes", response.TotalBytes, "rate", progress.Rate())

	return response, nil
}

// writePayload copies one payload to <dir>/<kind>_<number>.bin
func writePayload(access services.PayloadService, source *os.File, seg types.Segment, dir string) (ExtractedFile, error) {
	p := seg.Placement()
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.bin", seg.Kind(), p.Number))

	out, err := os.Create(path)
	if err != nil {
		return ExtractedFile{}, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := access.CopyPayload(out, source, seg); err != nil {
		out.Close()
		return ExtractedFile{}, err
	}
	if err := out.Close(); err != nil {
		return ExtractedFile{}, fmt.Errorf("failed to close %s: %w", path, err)
	}

	return ExtractedFile{
		Kind:   seg.Kind().String(),
		Number: p.Number,
		Code:   seg.TypeCode(),
		Path:   path,
		Offset: p.Payload.Offset,
		Length: p.Payload.Length,
	}, nil
}

// writeManifest writes the run manifest as yaml
func writeManifest(path string, manifest *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(manifest); err != nil {
		f.Close()
		return err
	}
	if err := encoder.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
