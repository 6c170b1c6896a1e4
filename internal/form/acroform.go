package form

import (
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/unicode"

	"github.com/riskworks/draw2977/internal/draw"
)

// fillAcroForm writes assignments straight onto the template's AcroForm
// field dictionaries. The form stays fully editable: widgets and field
// definitions are untouched except for their values, and NeedAppearances
// asks viewers to regenerate on-screen text for the values we set.
func fillAcroForm(ctx *model.Context, acroDict types.Dict, a *draw.Assignments) (*Result, error) {
	acroDict.Update("NeedAppearances", types.Boolean(true))

	fields, err := indexFields(ctx, acroDict)
	if err != nil {
		return nil, err
	}

	result := &Result{RowsWritten: len(a.Rows)}

	for name, value := range acroTextValues(a) {
		d, ok := fields[name]
		if !ok {
			// unused template slot, e.g. a letter field this form never had
			continue
		}
		if err := setTextValue(d, value); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("field %s: %v", name, err))
			continue
		}
		result.FieldsWritten++
	}

	for name, token := range acroButtonValues(a) {
		d, ok := fields[name]
		if !ok {
			continue
		}
		// Button state sync is the least critical part of the write; a
		// failure here must not take the text fields down with it.
		if err := syncButton(ctx, d, token); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("button group %s: %v", name, err))
			continue
		}
		result.FieldsWritten++
	}

	return result, nil
}

// acroTextValues renders every text and choice assignment against the
// AcroForm field name contract.
func acroTextValues(a *draw.Assignments) map[string]string {
	values := make(map[string]string)

	for slot, name := range acroFields {
		values[name] = draw.ReplaceOddSpaces(a.Fields[slot])
	}

	for i, row := range a.Rows {
		n := i + 1
		values[acroRowField("sub", n)] = draw.ReplaceOddSpaces(row.Subtask)
		values[acroRowField("haz", n)] = draw.ReplaceOddSpaces(row.Hazard)

		if len(row.Controls) > 0 {
			values[acroRowField("control", n)] = renderBullets(row.Controls)
		}
		if len(row.How) > 0 {
			values[acroRowField("how", n)] = renderLines(row.How)
		}
		if len(row.Who) > 0 {
			values[acroRowField("who", n)] = renderLines(row.Who)
		}

		if code := row.InitialRisk.RowCode(); code != "" {
			values[acroRowField("init_risk", n)] = code
		}
		if code := row.ResidualRisk.RowCode(); code != "" {
			values[acroRowField("res_risk", n)] = code
		}
	}

	return values
}

// acroButtonValues renders the radio group selections.
func acroButtonValues(a *draw.Assignments) map[string]string {
	token := "dis"
	if a.Decision == draw.DecisionApproved {
		token = "app"
	}
	return map[string]string{
		acroOverallField:  a.OverallRisk.OverallExport(),
		acroApprovalField: token,
	}
}

// renderBullets joins control values as a bulleted list, one "- " line per
// value.
func renderBullets(values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString("- ")
		b.WriteString(draw.ReplaceOddSpaces(v))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderLines joins values with newlines.
func renderLines(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = draw.ReplaceOddSpaces(v)
	}
	return strings.Join(out, "\n")
}

// indexFields walks the AcroForm Fields array and indexes each terminal
// field dictionary by its partial name. The DD 2977 form is flat, so partial
// names are fully qualified.
func indexFields(ctx *model.Context, acroDict types.Dict) (map[string]types.Dict, error) {
	fieldsObj, found := acroDict.Find("Fields")
	if !found {
		return nil, ErrNoFormDefinition
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("dereference Fields array: %w", err)
	}

	fields := make(map[string]types.Dict, len(fieldsArray))
	for _, ref := range fieldsArray {
		d, err := ctx.DereferenceDict(ref)
		if err != nil || d == nil {
			continue
		}
		nameObj, found := d.Find("T")
		if !found {
			continue
		}
		name, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil)
		if err != nil || name == "" {
			continue
		}
		fields[name] = d
	}
	return fields, nil
}

// setTextValue sets a text or choice field's value as a UTF-16BE hex
// literal, which needs no escaping and survives every viewer.
func setTextValue(d types.Dict, value string) error {
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	b, err := enc.Bytes([]byte(value))
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	d.Update("V", types.NewHexLiteral(b))
	return nil
}

// syncButton sets a button group's value and aligns every bound widget's
// appearance state. A widget whose appearance dictionary does not define the
// selection token is switched to Off instead, so an invalid token can never
// leave the group in a visually undefined state.
func syncButton(ctx *model.Context, d types.Dict, token string) error {
	d.Update("V", types.Name(token))

	widgets, err := buttonWidgets(ctx, d)
	if err != nil {
		return err
	}

	for _, w := range widgets {
		state := "Off"
		if widgetHasState(ctx, w, token) {
			state = token
		}
		w.Update("AS", types.Name(state))
	}
	return nil
}

// buttonWidgets returns the widget dictionaries bound to a button field:
// its Kids when present, otherwise the field itself (merged widget).
func buttonWidgets(ctx *model.Context, d types.Dict) ([]types.Dict, error) {
	kidsObj, found := d.Find("Kids")
	if !found {
		return []types.Dict{d}, nil
	}

	kids, err := ctx.DereferenceArray(kidsObj)
	if err != nil {
		return nil, fmt.Errorf("dereference Kids: %w", err)
	}

	var widgets []types.Dict
	for _, ref := range kids {
		w, err := ctx.DereferenceDict(ref)
		if err != nil || w == nil {
			continue
		}
		widgets = append(widgets, w)
	}
	return widgets, nil
}

// widgetHasState reports whether a widget's normal appearance dictionary
// defines the given state name.
func widgetHasState(ctx *model.Context, w types.Dict, state string) bool {
	apObj, found := w.Find("AP")
	if !found {
		return false
	}
	ap, err := ctx.DereferenceDict(apObj)
	if err != nil || ap == nil {
		return false
	}
	nObj, found := ap.Find("N")
	if !found {
		return false
	}
	n, err := ctx.DereferenceDict(nObj)
	if err != nil || n == nil {
		return false
	}
	_, found = n.Find(state)
	return found
}
