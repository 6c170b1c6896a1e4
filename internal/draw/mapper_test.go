package draw

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_FullRecord(t *testing.T) {
	rec := &Record{
		Mission:            "Convoy operations",
		Date:               "2025-01-15",
		OverallSupervision: "NCOs supervise all phases",
		PreparedBy: Preparer{
			Name:  "Doe, Jane A",
			Rank:  "SSG/E-6",
			Title: "Squad Leader",
			Unit:  "1-2 IN",
			Email: "jane.doe@example.mil",
			Phone: "555-0100",
			UIC:   "WABCAA",
			Plan:  "OPORD 25-01",
		},
		Subtasks: []Subtask{
			{
				Subtask:      NamedItem{Name: "Mounted movement"},
				Hazard:       "Vehicle rollover",
				Control:      ValueList{Values: []Text{"Rollover drills", "Speed limits"}},
				HowTo:        HowTo{How: ValueList{Values: []Text{"Brief before SP"}}, Who: ValueList{Values: []Text{"VCs"}}},
				InitialRisk:  "H",
				ResidualRisk: "L",
			},
		},
		OverallResidualRisk: "M",
		ApprovalDecision:    "approve",
	}

	a := Map(rec)

	assert.Equal(t, "Convoy operations", a.Fields[SlotMission])
	assert.Equal(t, "2025-01-15", a.Fields[SlotDate])
	assert.Equal(t, "Doe, Jane A", a.Fields[SlotPrepName])
	assert.Equal(t, "OPORD 25-01", a.Fields[SlotPrepPlan])
	assert.Equal(t, "NCOs supervise all phases", a.Fields[SlotOverallPlan])
	assert.Equal(t, RiskMedium, a.OverallRisk)
	assert.Equal(t, DecisionApproved, a.Decision)

	require.Len(t, a.Rows, 1)
	row := a.Rows[0]
	assert.Equal(t, "Mounted movement", row.Subtask)
	assert.Equal(t, "Vehicle rollover", row.Hazard)
	assert.Equal(t, []string{"Rollover drills", "Speed limits"}, row.Controls)
	assert.Equal(t, []string{"Brief before SP"}, row.How)
	assert.Equal(t, []string{"VCs"}, row.Who)
	assert.Equal(t, RiskHigh, row.InitialRisk)
	assert.Equal(t, RiskLow, row.ResidualRisk)
}

func TestMap_EmptyAndNilRecord(t *testing.T) {
	for _, rec := range []*Record{nil, {}} {
		a := Map(rec)
		require.NotNil(t, a)

		for _, slot := range ScalarSlots {
			assert.Equal(t, "", a.Fields[slot])
		}
		assert.Empty(t, a.Rows)
		assert.Equal(t, RiskUnset, a.OverallRisk)
		assert.Equal(t, DecisionDisapproved, a.Decision)
	}
}

func TestMap_TruncatesRows(t *testing.T) {
	rec := &Record{}
	for i := 0; i < 25; i++ {
		rec.Subtasks = append(rec.Subtasks, Subtask{
			Subtask: NamedItem{Name: Text(fmt.Sprintf("Task %d", i+1))},
		})
	}

	a := Map(rec)

	require.Len(t, a.Rows, MaxRows)
	assert.Equal(t, "Task 1", a.Rows[0].Subtask)
	assert.Equal(t, fmt.Sprintf("Task %d", MaxRows), a.Rows[MaxRows-1].Subtask)
}

func TestMap_Deterministic(t *testing.T) {
	rec := &Record{
		Mission: "Range day",
		Subtasks: []Subtask{
			{Hazard: "Heat injury", InitialRisk: "M", ResidualRisk: "L"},
		},
		OverallResidualRisk: "L",
	}

	first := Map(rec)
	second := Map(rec)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("mapping is not deterministic (-first +second):\n%s", diff)
	}
}

func TestMap_KeepsTextUnsanitized(t *testing.T) {
	// Sanitization belongs to the writers; the mapper must not touch text.
	rec := &Record{Mission: "alpha bravo"}
	a := Map(rec)
	assert.Equal(t, "alpha bravo", a.Fields[SlotMission])
}
