package draw

// MaxRows is the hazard table capacity of the DD 2977 template
// (sub_1 through sub_19). Input subtasks beyond it are dropped.
const MaxRows = 19

// Map walks the input record once and produces the complete set of
// destination assignments. It is total: missing, null, or oddly-typed
// optional fields all degrade to empty values, never to a failure.
//
// Text values are carried through untouched; sanitization is the writer's
// job because the safe character set depends on the destination technology.
func Map(rec *Record) *Assignments {
	if rec == nil {
		rec = &Record{}
	}

	a := &Assignments{
		Fields: map[Slot]string{
			SlotMission:     rec.Mission.String(),
			SlotDate:        rec.Date.String(),
			SlotPrepName:    rec.PreparedBy.Name.String(),
			SlotPrepRank:    rec.PreparedBy.Rank.String(),
			SlotPrepTitle:   rec.PreparedBy.Title.String(),
			SlotPrepUnit:    rec.PreparedBy.Unit.String(),
			SlotPrepEmail:   rec.PreparedBy.Email.String(),
			SlotPrepPhone:   rec.PreparedBy.Phone.String(),
			SlotPrepUIC:     rec.PreparedBy.UIC.String(),
			SlotPrepPlan:    rec.PreparedBy.Plan.String(),
			SlotOverallPlan: rec.OverallSupervision.String(),
		},
		OverallRisk: ParseRiskLevel(rec.OverallResidualRisk.String()),
		Decision:    ResolveDecision(rec.ApprovalDecision.String(), rec.Approval),
	}

	for i, st := range rec.Subtasks {
		if i >= MaxRows {
			break
		}
		a.Rows = append(a.Rows, Row{
			Subtask:      st.Subtask.Name.String(),
			Hazard:       st.Hazard.String(),
			Controls:     textValues(st.Control.Values),
			How:          textValues(st.HowTo.How.Values),
			Who:          textValues(st.HowTo.Who.Values),
			InitialRisk:  ParseRiskLevel(st.InitialRisk.String()),
			ResidualRisk: ParseRiskLevel(st.ResidualRisk.String()),
		})
	}

	return a
}

func textValues(values []Text) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
