package form

import (
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/riskworks/draw2977/internal/draw"
)

// Field describes one AcroForm field of a template, for operator-facing
// inspection.
type Field struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Value   string   `json:"value,omitempty"`
	Options []string `json:"options,omitempty"`
}

// InspectTemplate lists a template's AcroForm fields in name order.
func InspectTemplate(path string) ([]Field, error) {
	ctx, err := readContext(path)
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

	dicts, err := indexFields(ctx, acroDict)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(dicts))
	for name, d := range dicts {
		fields = append(fields, Field{
			Name:    name,
			Type:    fieldType(ctx, d),
			Value:   fieldValue(ctx, d),
			Options: fieldOptions(ctx, d),
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields, nil
}

// fieldType resolves the FT entry, walking up to the parent when inherited.
func fieldType(ctx *model.Context, d types.Dict) string {
	ftObj, found := d.Find("FT")
	if !found {
		if parentObj, found := d.Find("Parent"); found {
			if parent, err := ctx.DereferenceDict(parentObj); err == nil && parent != nil {
				return fieldType(ctx, parent)
			}
		}
		return "unknown"
	}

	ft, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return "unknown"
	}

	switch ft {
	case "Tx":
		return "text"
	case "Ch":
		return "choice"
	case "Sig":
		return "signature"
	case "Btn":
		if flagsObj, found := d.Find("Ff"); found {
			if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				switch {
				case *flags&(1<<15) != 0:
					return "radio"
				case *flags&(1<<16) != 0:
					return "button"
				}
			}
		}
		return "checkbox"
	default:
		return "unknown"
	}
}

func fieldValue(ctx *model.Context, d types.Dict) string {
	vObj, found := d.Find("V")
	if !found {
		return ""
	}
	if s, err := ctx.DereferenceStringOrHexLiteral(vObj, model.V10, nil); err == nil {
		return s
	}
	if n, err := ctx.DereferenceName(vObj, model.V10, nil); err == nil {
		return string(n)
	}
	return ""
}

func fieldOptions(ctx *model.Context, d types.Dict) []string {
	optObj, found := d.Find("Opt")
	if !found {
		return nil
	}
	arr, err := ctx.DereferenceArray(optObj)
	if err != nil {
		return nil
	}

	var options []string
	for _, opt := range arr {
		if s, err := ctx.DereferenceStringOrHexLiteral(opt, model.V10, nil); err == nil {
			options = append(options, s)
			continue
		}
		// [export, display] pairs keep the export value
		if pair, err := ctx.DereferenceArray(opt); err == nil && len(pair) > 0 {
			if s, err := ctx.DereferenceStringOrHexLiteral(pair[0], model.V10, nil); err == nil {
				options = append(options, s)
			}
		}
	}
	return options
}

// ContractReport is the outcome of checking a template against the DD 2977
// destination-name contract.
type ContractReport struct {
	Strategy Strategy `json:"strategy"`
	Present  []string `json:"present"`
	Missing  []string `json:"missing"`
}

// CheckContract verifies which of the expected destination slots exist in a
// template. Missing entries are informational: the writers skip absent slots
// silently, so a partial template still fills.
func CheckContract(path string, strategy Strategy) (*ContractReport, error) {
	ctx, err := readContext(path)
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
	if strategy == StrategyAuto || strategy == "" {
		if hasXFA {
			strategy = StrategyXFA
		} else {
			strategy = StrategyAcroForm
		}
	}

	if strategy == StrategyXFA {
		return checkXFAContract(ctx, acroDict)
	}
	return checkAcroContract(ctx, acroDict)
}

func checkAcroContract(ctx *model.Context, acroDict types.Dict) (*ContractReport, error) {
	dicts, err := indexFields(ctx, acroDict)
	if err != nil {
		return nil, err
	}

	report := &ContractReport{Strategy: StrategyAcroForm}
	for _, name := range expectedAcroFields() {
		if _, ok := dicts[name]; ok {
			report.Present = append(report.Present, name)
		} else {
			report.Missing = append(report.Missing, name)
		}
	}
	return report, nil
}

// expectedAcroFields returns the full AcroForm name contract in form order.
func expectedAcroFields() []string {
	names := make([]string, 0, len(acroFields))
	for _, slot := range draw.ScalarSlots {
		names = append(names, acroFields[slot])
	}
	for i := 1; i <= draw.MaxRows; i++ {
		for _, kind := range []string{"sub", "haz", "control", "how", "who", "init_risk", "res_risk"} {
			names = append(names, acroRowField(kind, i))
		}
	}
	return append(names, acroOverallField, acroApprovalField)
}

func checkXFAContract(ctx *model.Context, acroDict types.Dict) (*ContractReport, error) {
	sd, _, err := datasetsStream(ctx, acroDict)
	if err != nil {
		return nil, err
	}
	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("decode datasets stream: %w", err)
	}
	root, err := parseXMLTree(sd.Content)
	if err != nil {
		return nil, err
	}

	data := root
	if root.Name.Local == "datasets" {
		if data = root.child("data"); data == nil {
			return nil, fmt.Errorf("%w: datasets packet has no data element", ErrNoDatasets)
		}
	}
	page := data.path(xfaFormRoot, xfaPageRoot)
	if page == nil {
		return nil, fmt.Errorf("%w: missing %s/%s root", ErrNoDatasets, xfaFormRoot, xfaPageRoot)
	}

	report := &ContractReport{Strategy: StrategyXFA}
	note := func(name string, present bool) {
		if present {
			report.Present = append(report.Present, name)
		} else {
			report.Missing = append(report.Missing, name)
		}
	}

	for _, slot := range draw.ScalarSlots {
		name := xfaScalarNodes[slot]
		note(name, page.child(name) != nil)
	}
	note(xfaOverallNode, page.child(xfaOverallNode) != nil)
	note(xfaApprovalNode, page.child(xfaApprovalNode) != nil)
	note(xfaRowsNode+"/"+xfaRowName, page.path(xfaRowsNode, xfaRowName) != nil)

	return report, nil
}
