// Package form writes mapped worksheet assignments into the DD 2977 PDF
// template, through either of the two form technologies the template has
// shipped with: a flat AcroForm field dictionary, or an embedded XFA
// datasets packet.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskworks/draw2977/internal/draw"
)

var (
	// ErrNoFormDefinition is returned when the template carries neither an
	// AcroForm field dictionary nor an XFA datasets packet.
	ErrNoFormDefinition = errors.New("template has no usable form definition")

	// ErrNoDatasets is returned when the XFA strategy is requested but the
	// template's /XFA entry has no "datasets" packet.
	ErrNoDatasets = errors.New("template has no XFA datasets packet")
)

// The destination names below are the template's external contract: the
// exact field and node names present in DD-Form-2977.pdf. They live in one
// place so the traversal logic never hard-codes a name and so a template can
// be checked against the contract up front.

// acroFields maps scalar slots to AcroForm field names.
var acroFields = map[draw.Slot]string{
	draw.SlotMission:     "mission",
	draw.SlotDate:        "date",
	draw.SlotPrepName:    "prep_name",
	draw.SlotPrepRank:    "prep_rank",
	draw.SlotPrepTitle:   "prep_title",
	draw.SlotPrepUnit:    "prep_unit",
	draw.SlotPrepEmail:   "prep_email",
	draw.SlotPrepPhone:   "prep_phone",
	draw.SlotPrepUIC:     "prep_uic",
	draw.SlotPrepPlan:    "prep_plan",
	draw.SlotOverallPlan: "overall_plan",
}

// Button groups and their export value domains.
const (
	acroOverallField  = "overall_res" // exports EH, H, M, L
	acroApprovalField = "xapp"        // exports app, dis
)

// Per-row field name patterns, 1-based.
func acroRowField(kind string, row int) string {
	switch kind {
	case "init_risk", "res_risk":
		// risk combos have no underscore before the index
		return fmt.Sprintf("%s%d", kind, row)
	default:
		return fmt.Sprintf("%s_%d", kind, row)
	}
}

// XFA node paths, rooted at the datasets data element. The form tree is
// form1/Page1 with positionally-named children.
const (
	xfaFormRoot = "form1"
	xfaPageRoot = "Page1"
	xfaRowsNode = "Part4thru9"
	xfaRowName  = "Row1"
)

// xfaScalarNodes maps scalar slots to node names under form1/Page1.
var xfaScalarNodes = map[draw.Slot]string{
	draw.SlotMission:     "One",
	draw.SlotDate:        "Two",
	draw.SlotPrepName:    "A",
	draw.SlotPrepRank:    "B",
	draw.SlotPrepTitle:   "C",
	draw.SlotPrepUnit:    "D",
	draw.SlotPrepEmail:   "E",
	draw.SlotPrepPhone:   "F",
	draw.SlotPrepUIC:     "G",
	draw.SlotPrepPlan:    "H",
	draw.SlotOverallPlan: "Eleven",
}

// xfaTransforms adjusts a slot's text for the XFA representation before
// sanitization. The date node carries an undashed date.
var xfaTransforms = map[draw.Slot]func(string) string{
	draw.SlotDate: func(s string) string { return strings.ReplaceAll(s, "-", "") },
}

const (
	xfaOverallNode  = "Ten"    // children EH, H, M, L: one-hot flags
	xfaApprovalNode = "Twelve" // children Approve, Disapprove: boolean flags
)

// Row children inside each Part4thru9/Row1 clone.
const (
	xfaRowSubtask  = "Subtask"
	xfaRowHazard   = "Hazard"
	xfaRowControl  = "Control"
	xfaRowHow      = "How"
	xfaRowWho      = "Who"
	xfaRowInitRisk = "InitialRisk"
	xfaRowResRisk  = "ResidualRisk"
)

// riskFlagNodes pairs one-hot flag node names with the level each stands
// for, in form order.
var riskFlagNodes = []struct {
	Name  string
	Level draw.RiskLevel
}{
	{"EH", draw.RiskExtremelyHigh},
	{"H", draw.RiskHigh},
	{"M", draw.RiskMedium},
	{"L", draw.RiskLow},
}
