package form

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/riskworks/draw2977/internal/draw"
)

// Strategy selects the form technology to write.
type Strategy string

const (
	// StrategyAuto picks XFA when the template embeds a datasets packet,
	// otherwise the flat AcroForm field dictionary.
	StrategyAuto     Strategy = "auto"
	StrategyAcroForm Strategy = "acroform"
	StrategyXFA      Strategy = "xfa"
)

// ParseStrategy validates a strategy name from configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAuto, StrategyAcroForm, StrategyXFA:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown form strategy %q (must be auto, acroform, or xfa)", s)
}

// Result reports what a fill run wrote.
type Result struct {
	OutputPath    string
	Strategy      Strategy
	FieldsWritten int
	RowsWritten   int

	// Warnings collects non-fatal write problems, most commonly button
	// group widgets whose appearance state could not be synchronized.
	// Text values are still written when these occur.
	Warnings []string
}

// Fill opens the template, writes every assignment through the selected
// strategy, and persists the result to outputPath. The template is never
// modified. A missing template or a template without the expected form
// definition is a fatal error before anything is written; absence of an
// individual field or node in the template is tolerated silently.
func Fill(templatePath, outputPath string, a *draw.Assignments, strategy Strategy) (*Result, error) {
	if a == nil {
		a = &draw.Assignments{}
	}

	if _, err := os.Stat(templatePath); err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	ctx, err := readContext(templatePath)
	if err != nil {
		return nil, err
	}

	acroDict, err := acroFormDict(ctx)
	if err != nil {
		return nil, err
	}
	if acroDict == nil {
		return nil, ErrNoFormDefinition
	}

	hasXFA := false
	if _, found := acroDict.Find("XFA"); found {
		hasXFA = true
	}

	effective := strategy
	if effective == StrategyAuto || effective == "" {
		if hasXFA {
			effective = StrategyXFA
		} else {
			effective = StrategyAcroForm
		}
	}

	var result *Result
	switch effective {
	case StrategyXFA:
		if !hasXFA {
			return nil, ErrNoDatasets
		}
		result, err = fillXFA(ctx, acroDict, a)
	default:
		result, err = fillAcroForm(ctx, acroDict, a)
	}
	if err != nil {
		return nil, err
	}

	if err := api.WriteContextFile(ctx, outputPath); err != nil {
		return nil, fmt.Errorf("write filled document: %w", err)
	}

	result.OutputPath = outputPath
	result.Strategy = effective
	return result, nil
}

// readContext opens a PDF into a pdfcpu context with relaxed validation, so
// the slightly out-of-spec government template still parses.
func readContext(path string) (*model.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("template page count: %w", err)
	}
	return ctx, nil
}

// acroFormDict resolves the catalog's AcroForm dictionary, or nil when the
// document has none.
func acroFormDict(ctx *model.Context) (types.Dict, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("template catalog: %w", err)
	}

	obj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, nil
	}

	d, err := ctx.DereferenceDict(obj)
	if err != nil {
		return nil, fmt.Errorf("dereference AcroForm: %w", err)
	}
	return d, nil
}
