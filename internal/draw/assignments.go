package draw

import "strings"

// Slot identifies one scalar destination on the form, independent of the
// form technology. Writers translate slots to AcroForm field names or XFA
// node paths through their own declarative tables.
type Slot string

const (
	SlotMission     Slot = "mission"
	SlotDate        Slot = "date"
	SlotPrepName    Slot = "prep_name"
	SlotPrepRank    Slot = "prep_rank"
	SlotPrepTitle   Slot = "prep_title"
	SlotPrepUnit    Slot = "prep_unit"
	SlotPrepEmail   Slot = "prep_email"
	SlotPrepPhone   Slot = "prep_phone"
	SlotPrepUIC     Slot = "prep_uic"
	SlotPrepPlan    Slot = "prep_plan"
	SlotOverallPlan Slot = "overall_plan"
)

// ScalarSlots lists every scalar slot in form order.
var ScalarSlots = []Slot{
	SlotMission, SlotDate,
	SlotPrepName, SlotPrepRank, SlotPrepTitle, SlotPrepUnit,
	SlotPrepEmail, SlotPrepPhone, SlotPrepUIC, SlotPrepPlan,
	SlotOverallPlan,
}

// Row is one hazard-table row, independent of how a destination clones or
// names its rows. List values stay unjoined; each writer renders them in its
// own style.
type Row struct {
	Subtask      string
	Hazard       string
	Controls     []string
	How          []string
	Who          []string
	InitialRisk  RiskLevel
	ResidualRisk RiskLevel
}

// Decision is the resolved block 12 approval state.
type Decision int

const (
	DecisionUndecided Decision = iota
	DecisionApproved
	DecisionDisapproved
)

func (d Decision) String() string {
	switch d {
	case DecisionApproved:
		return "approved"
	case DecisionDisapproved:
		return "disapproved"
	default:
		return "undecided"
	}
}

// Assignments is the complete, format-neutral set of destination values for
// one run. It is what the Data Mapper produces and what every Form Writer
// consumes.
type Assignments struct {
	Fields      map[Slot]string
	Rows        []Row
	OverallRisk RiskLevel
	Decision    Decision
}

// ResolveDecision turns either decision representation into a Decision.
// A free-text value wins when present: approve/approved/app and
// disapprove/disapproved/dis are recognized case-insensitively, anything
// else defaults to disapproved (the template ships with DISAPPROVE
// selected). The boolean-pair representation decides exactly: approve wins
// over disapprove when both are set, and both false leaves the group
// unselected.
func ResolveDecision(text string, flags *ApprovalFlags) Decision {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "approve", "approved", "app":
		return DecisionApproved
	case "disapprove", "disapproved", "dis":
		return DecisionDisapproved
	}
	if flags != nil {
		switch {
		case bool(flags.Approve):
			return DecisionApproved
		case bool(flags.Disapprove):
			return DecisionDisapproved
		default:
			return DecisionUndecided
		}
	}
	return DecisionDisapproved
}
