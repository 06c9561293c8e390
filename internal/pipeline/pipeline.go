// Package pipeline runs the linear fill-and-convert flow: unpack the
// template container into a scratch workspace, substitute the field map,
// repack the rendered document, and convert it to PDF. The workspace is
// destroyed on every exit path; the two output files are owned by the
// caller.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"bunkerlab/internal/docxtpl"
	"bunkerlab/internal/logging"
	"bunkerlab/internal/staging"
)

// Converter renders a DOCX file to PDF inside outDir and returns the
// converted file path.
type Converter interface {
	Convert(ctx context.Context, inputPath, outDir string) (string, error)
}

// Request describes one generation run.
type Request struct {
	// TemplatePath is the read-only input container.
	TemplatePath string
	// OutputPath is the destination for the rendered DOCX; the converted
	// PDF lands next to it with the extension swapped.
	OutputPath string
	// Fields is the substitution map; read-only for the duration of the run.
	Fields *docxtpl.FieldMap
}

// Result carries the output file paths. Both outlive the pipeline call and
// the caller is responsible for their eventual deletion.
type Result struct {
	DocxPath string
	PDFPath  string
	Stats    docxtpl.FillStats
}

// Pipeline generates documents. It holds no mutable state, so one value may
// serve concurrent invocations; isolation comes from workspace naming alone.
type Pipeline struct {
	stagingDir string
	converter  Converter
	logger     *slog.Logger
}

// New constructs a pipeline.
func New(stagingDir string, converter Converter, logger *slog.Logger) (*Pipeline, error) {
	if strings.TrimSpace(stagingDir) == "" {
		return nil, errors.New("staging directory required")
	}
	if converter == nil {
		return nil, errors.New("converter required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		stagingDir: stagingDir,
		converter:  converter,
		logger:     logging.WithComponent(logger, "pipeline"),
	}, nil
}

// Generate runs the full flow for one request. On any failure the scratch
// workspace and any already-created output files are removed before the
// error is returned; cleanup problems are logged, never escalated over the
// primary error.
func (p *Pipeline) Generate(ctx context.Context, req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	ws, err := staging.NewWorkspace(p.stagingDir, p.logger)
	if err != nil {
		return Result{}, wrap(ErrIO, "stage workspace", "", err)
	}
	defer ws.Cleanup()

	if err := docxtpl.Unpack(req.TemplatePath, ws.Root()); err != nil {
		// A bad source is an extraction failure; trouble writing
		// extracted entries to disk is an IO failure.
		marker := ErrIO
		if errors.Is(err, docxtpl.ErrBadContainer) {
			marker = ErrExtraction
		}
		return Result{}, wrap(marker, "unpack template", req.TemplatePath, err)
	}

	stats, err := docxtpl.FillTree(ws.Root(), req.Fields)
	if err != nil {
		return Result{}, wrap(ErrIO, "substitute fields", "", err)
	}
	p.logger.Info("template filled",
		logging.String("template", req.TemplatePath),
		logging.Int("parts_scanned", stats.PartsScanned),
		logging.Int("parts_changed", stats.PartsChanged),
		logging.Int("replacements", stats.Replacements),
	)

	if err := docxtpl.Repack(ws.Root(), req.OutputPath); err != nil {
		p.removeOutputs(req.OutputPath)
		return Result{}, wrap(ErrIO, "repack document", req.OutputPath, err)
	}

	outDir := filepath.Dir(req.OutputPath)
	pdfPath, err := p.converter.Convert(ctx, req.OutputPath, outDir)
	if err != nil {
		p.removeOutputs(req.OutputPath)
		if errors.Is(err, exec.ErrNotFound) {
			return Result{}, wrap(ErrToolMissing, "convert document", "", err)
		}
		return Result{}, wrap(ErrConversion, "convert document", "", err)
	}

	p.logger.Info("document generated",
		logging.String("docx", req.OutputPath),
		logging.String("pdf", pdfPath),
	)
	return Result{DocxPath: req.OutputPath, PDFPath: pdfPath, Stats: stats}, nil
}

// removeOutputs deletes the rendered document and its sibling PDF if they
// exist. Best effort only.
func (p *Pipeline) removeOutputs(docxPath string) {
	pdfPath := strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf"
	for _, path := range []string{docxPath, pdfPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.logger.Warn("failed to remove output after error",
				logging.String("path", path),
				logging.Error(err),
			)
		}
	}
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.TemplatePath) == "" {
		return fmt.Errorf("template path required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return fmt.Errorf("output path required")
	}
	if req.Fields == nil || req.Fields.Len() == 0 {
		return fmt.Errorf("field map required")
	}
	if sameFile(req.TemplatePath, req.OutputPath) {
		return fmt.Errorf("output must not alias the template")
	}
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
