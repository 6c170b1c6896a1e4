// Package fill orchestrates one worksheet run: read the input record, map
// it, write the template's form, then the optional best-effort steps.
package fill

import (
	"fmt"
	"os"

	"github.com/riskworks/draw2977/internal/draw"
	"github.com/riskworks/draw2977/internal/form"
)

// Service runs worksheet operations for the CLI and the MCP server.
type Service struct {
	maxFileSize int64
}

// NewService creates a fill service. maxFileSize bounds both the template
// and the input record.
func NewService(maxFileSize int64) *Service {
	return &Service{maxFileSize: maxFileSize}
}

// FillRequest describes one fill run.
type FillRequest struct {
	TemplatePath string
	InputPath    string
	OutputPath   string

	// PreviewPath, when set, also renders a first-page PNG there.
	PreviewPath string

	Strategy form.Strategy

	// Refresh regenerates widget appearances after writing, when an
	// external renderer is available.
	Refresh bool

	// Verify re-opens the output with a second PDF reader afterwards.
	Verify bool
}

// FillResult reports a completed run.
type FillResult struct {
	OutputPath    string   `json:"output_path"`
	Strategy      string   `json:"strategy"`
	FieldsWritten int      `json:"fields_written"`
	RowsWritten   int      `json:"rows_written"`
	Refreshed     bool     `json:"refreshed,omitempty"`
	PreviewPath   string   `json:"preview_path,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Fill executes the whole pipeline. Fatal errors (missing template or
// input, unusable form definition) are returned before any output exists;
// everything non-fatal lands in Warnings.
func (s *Service) Fill(req FillRequest) (*FillResult, error) {
	if err := s.checkReadable(req.TemplatePath, "template"); err != nil {
		return nil, err
	}
	if err := s.checkReadable(req.InputPath, "input record"); err != nil {
		return nil, err
	}

	rec, err := draw.LoadRecord(req.InputPath)
	if err != nil {
		return nil, err
	}

	assignments := draw.Map(rec)

	written, err := form.Fill(req.TemplatePath, req.OutputPath, assignments, req.Strategy)
	if err != nil {
		return nil, err
	}

	result := &FillResult{
		OutputPath:    written.OutputPath,
		Strategy:      string(written.Strategy),
		FieldsWritten: written.FieldsWritten,
		RowsWritten:   written.RowsWritten,
		Warnings:      written.Warnings,
	}

	if req.Refresh {
		refreshed, warning := form.RefreshAppearances(req.OutputPath)
		result.Refreshed = refreshed
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	if req.Verify {
		result.Warnings = append(result.Warnings, form.VerifyOutput(req.TemplatePath, req.OutputPath)...)
	}

	if req.PreviewPath != "" {
		if err := form.RenderPreview(req.OutputPath, req.PreviewPath); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			result.PreviewPath = req.PreviewPath
		}
	}

	return result, nil
}

// InspectRequest asks for a template's AcroForm field listing.
type InspectRequest struct {
	TemplatePath string
}

// InspectResult lists the template's fields.
type InspectResult struct {
	TemplatePath string       `json:"template_path"`
	Fields       []form.Field `json:"fields"`
}

// Inspect lists the AcroForm fields of a template.
func (s *Service) Inspect(req InspectRequest) (*InspectResult, error) {
	if err := s.checkReadable(req.TemplatePath, "template"); err != nil {
		return nil, err
	}
	fields, err := form.InspectTemplate(req.TemplatePath)
	if err != nil {
		return nil, err
	}
	return &InspectResult{TemplatePath: req.TemplatePath, Fields: fields}, nil
}

// ValidateRequest asks for a contract check of a template.
type ValidateRequest struct {
	TemplatePath string
	Strategy     form.Strategy
}

// ValidateResult reports which expected destination slots the template has.
type ValidateResult struct {
	TemplatePath string               `json:"template_path"`
	Report       *form.ContractReport `json:"report"`
}

// Validate checks a template against the DD 2977 destination-name contract.
func (s *Service) Validate(req ValidateRequest) (*ValidateResult, error) {
	if err := s.checkReadable(req.TemplatePath, "template"); err != nil {
		return nil, err
	}
	report, err := form.CheckContract(req.TemplatePath, req.Strategy)
	if err != nil {
		return nil, err
	}
	return &ValidateResult{TemplatePath: req.TemplatePath, Report: report}, nil
}

func (s *Service) checkReadable(path, what string) error {
	if path == "" {
		return fmt.Errorf("%s path cannot be empty", what)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s not found: %s", what, path)
	}
	if err != nil {
		return fmt.Errorf("cannot access %s %s: %w", what, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s path is a directory: %s", what, path)
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return fmt.Errorf("%s too large: %d bytes (max: %d bytes)", what, info.Size(), s.maxFileSize)
	}
	return nil
}
