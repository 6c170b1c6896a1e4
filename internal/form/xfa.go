package form

import (
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/riskworks/draw2977/internal/draw"
)

// fillXFA rewrites the template's embedded XFA datasets packet. Only leaf
// text changes; node structure, attributes, and ordering stay exactly as the
// template defines them, and the mutated packet goes back into the same
// stream object so nothing else referencing it is invalidated. Page content
// streams are untouched: an XFA-aware viewer re-renders from the data.
func fillXFA(ctx *model.Context, acroDict types.Dict, a *draw.Assignments) (*Result, error) {
	sd, ir, err := datasetsStream(ctx, acroDict)
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

	result := &Result{}

	for slot, nodeName := range xfaScalarNodes {
		node := page.child(nodeName)
		if node == nil {
			// a slot the template dropped; nothing to write
			continue
		}
		text := a.Fields[slot]
		if transform, ok := xfaTransforms[slot]; ok {
			text = transform(text)
		}
		node.setText(draw.StripToPrintable(text))
		result.FieldsWritten++
	}

	// Block 10: one-hot flags, defaulting to Low like the blank form.
	overall := a.OverallRisk
	switch overall {
	case draw.RiskExtremelyHigh, draw.RiskHigh, draw.RiskMedium:
	default:
		overall = draw.RiskLow
	}
	if ten := page.child(xfaOverallNode); ten != nil {
		setRiskFlags(ten, overall)
		result.FieldsWritten++
	}

	// Block 12: independent booleans; an undecided run leaves both at 0.
	if twelve := page.child(xfaApprovalNode); twelve != nil {
		setFlag(twelve, "Approve", a.Decision == draw.DecisionApproved)
		setFlag(twelve, "Disapprove", a.Decision == draw.DecisionDisapproved)
		result.FieldsWritten++
	}

	if warn := fillXFARows(page, a.Rows, result); warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}

	out := serializeXMLTree(root)
	if err := storeDatasets(ctx, sd, ir, out); err != nil {
		return nil, err
	}

	return result, nil
}

// fillXFARows replaces the hazard table: the template's Row1 node is the
// structural template, cloned once per input row. Pre-existing rows are
// removed first.
func fillXFARows(page *xmlNode, rows []draw.Row, result *Result) string {
	parent := page.child(xfaRowsNode)
	if parent == nil {
		return fmt.Sprintf("template has no %s table; %d rows not written", xfaRowsNode, len(rows))
	}
	template := parent.child(xfaRowName)
	if template == nil {
		return fmt.Sprintf("table %s has no %s template row; %d rows not written", xfaRowsNode, xfaRowName, len(rows))
	}

	blank := template.clone()
	parent.removeChildren(xfaRowName)

	for _, row := range rows {
		clone := blank.clone()
		fillRowNode(clone, row)
		parent.Children = append(parent.Children, clone)
		result.RowsWritten++
	}
	return ""
}

func fillRowNode(n *xmlNode, row draw.Row) {
	setLeaf(n, xfaRowSubtask, row.Subtask)
	setLeaf(n, xfaRowHazard, row.Hazard)

	// list slots keep the template default when the source list is empty
	if len(row.Controls) > 0 {
		setLeaf(n, xfaRowControl, strings.Join(row.Controls, "\n"))
	}
	if len(row.How) > 0 {
		setLeaf(n, xfaRowHow, strings.Join(row.How, "\n"))
	}
	if len(row.Who) > 0 {
		setLeaf(n, xfaRowWho, strings.Join(row.Who, "\n"))
	}

	if init := n.child(xfaRowInitRisk); init != nil {
		setRiskFlags(init, row.InitialRisk)
	}
	if res := n.child(xfaRowResRisk); res != nil {
		setRiskFlags(res, row.ResidualRisk)
	}
}

func setLeaf(n *xmlNode, local, text string) {
	if c := n.child(local); c != nil {
		c.setText(draw.StripToPrintable(text))
	}
}

// setRiskFlags writes the one-hot encoding: exactly one "1" for a recognized
// level, all "0" otherwise.
func setRiskFlags(n *xmlNode, level draw.RiskLevel) {
	for _, flag := range riskFlagNodes {
		value := "0"
		if level.Selected(flag.Level) {
			value = "1"
		}
		if c := n.child(flag.Name); c != nil {
			c.setText(value)
		}
	}
}

func setFlag(n *xmlNode, local string, on bool) {
	value := "0"
	if on {
		value = "1"
	}
	if c := n.child(local); c != nil {
		c.setText(value)
	}
}

// datasetsStream scans the AcroForm /XFA packet array for the pair named
// "datasets" and returns its stream dictionary plus the indirect reference
// it lives behind.
func datasetsStream(ctx *model.Context, acroDict types.Dict) (*types.StreamDict, *types.IndirectRef, error) {
	xfaObj, found := acroDict.Find("XFA")
	if !found {
		return nil, nil, ErrNoDatasets
	}

	obj, err := ctx.Dereference(xfaObj)
	if err != nil {
		return nil, nil, fmt.Errorf("dereference XFA entry: %w", err)
	}

	arr, ok := obj.(types.Array)
	if !ok {
		return nil, nil, fmt.Errorf("%w: XFA entry is not a packet array", ErrNoDatasets)
	}

	for i := 0; i+1 < len(arr); i += 2 {
		name, err := ctx.DereferenceStringOrHexLiteral(arr[i], model.V10, nil)
		if err != nil || name != "datasets" {
			continue
		}
		ir, ok := arr[i+1].(types.IndirectRef)
		if !ok {
			continue
		}
		streamObj, err := ctx.Dereference(ir)
		if err != nil {
			return nil, nil, fmt.Errorf("dereference datasets stream: %w", err)
		}
		sd, ok := streamObj.(types.StreamDict)
		if !ok {
			return nil, nil, fmt.Errorf("%w: datasets entry is not a stream", ErrNoDatasets)
		}
		return &sd, &ir, nil
	}

	return nil, nil, ErrNoDatasets
}

// storeDatasets re-encodes the packet through the stream's own filter
// pipeline and writes it back over the same xref entry.
func storeDatasets(ctx *model.Context, sd *types.StreamDict, ir *types.IndirectRef, content []byte) error {
	sd.Content = content
	if err := sd.Encode(); err != nil {
		return fmt.Errorf("encode datasets stream: %w", err)
	}

	length := int64(len(sd.Raw))
	sd.StreamLength = &length
	sd.Update("Length", types.Integer(length))

	entry, ok := ctx.FindTableEntryForIndRef(ir)
	if !ok || entry == nil {
		return fmt.Errorf("datasets stream object %d not found in xref table", ir.ObjectNumber.Value())
	}
	entry.Object = *sd
	return nil
}
