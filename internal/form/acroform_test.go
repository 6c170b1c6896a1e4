package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskworks/draw2977/internal/draw"
)

func TestRenderBullets(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{name: "empty", values: nil, expected: ""},
		{name: "single", values: []string{"Wear PPE"}, expected: "- Wear PPE"},
		{
			name:     "multiple",
			values:   []string{"Wear PPE", "Check equipment"},
			expected: "- Wear PPE\n- Check equipment",
		},
		{
			name:     "odd_spaces_replaced",
			values:   []string{"hydrate often"},
			expected: "- hydrate often",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderBullets(tt.values))
		})
	}
}

func TestRenderLines(t *testing.T) {
	assert.Equal(t, "", renderLines(nil))
	assert.Equal(t, "Brief", renderLines([]string{"Brief"}))
	assert.Equal(t, "Brief\nRehearse", renderLines([]string{"Brief", "Rehearse"}))
}

func TestAcroRowField(t *testing.T) {
	assert.Equal(t, "sub_1", acroRowField("sub", 1))
	assert.Equal(t, "haz_19", acroRowField("haz", 19))
	assert.Equal(t, "control_3", acroRowField("control", 3))
	assert.Equal(t, "how_2", acroRowField("how", 2))
	assert.Equal(t, "who_2", acroRowField("who", 2))
	// risk combos carry no underscore before the index
	assert.Equal(t, "init_risk1", acroRowField("init_risk", 1))
	assert.Equal(t, "res_risk19", acroRowField("res_risk", 19))
}

func TestAcroTextValues(t *testing.T) {
	a := &draw.Assignments{
		Fields: map[draw.Slot]string{
			draw.SlotMission:  "Convoy operations",
			draw.SlotDate:     "2025-01-15",
			draw.SlotPrepName: "Doe, Jane A",
		},
		Rows: []draw.Row{
			{
				Subtask:      "Mounted movement",
				Hazard:       "Rollover",
				Controls:     []string{"Rollover drills", "Speed limits"},
				How:          []string{"Brief before SP"},
				Who:          []string{"VCs"},
				InitialRisk:  draw.RiskHigh,
				ResidualRisk: draw.RiskLow,
			},
			{
				Subtask:     "Dismounted patrol",
				Hazard:      "Heat injury",
				InitialRisk: draw.RiskUnknown,
			},
		},
	}

	values := acroTextValues(a)

	assert.Equal(t, "Convoy operations", values["mission"])
	assert.Equal(t, "2025-01-15", values["date"])
	assert.Equal(t, "Doe, Jane A", values["prep_name"])

	assert.Equal(t, "Mounted movement", values["sub_1"])
	assert.Equal(t, "Rollover", values["haz_1"])
	assert.Equal(t, "- Rollover drills\n- Speed limits", values["control_1"])
	assert.Equal(t, "Brief before SP", values["how_1"])
	assert.Equal(t, "VCs", values["who_1"])
	assert.Equal(t, "1", values["init_risk1"])
	assert.Equal(t, "4", values["res_risk1"])

	assert.Equal(t, "Dismounted patrol", values["sub_2"])
	assert.Equal(t, "Heat injury", values["haz_2"])
	assert.Equal(t, "0", values["init_risk2"])

	// Empty lists and unset risks leave the template default untouched.
	_, found := values["control_2"]
	assert.False(t, found)
	_, found = values["how_2"]
	assert.False(t, found)
	_, found = values["who_2"]
	assert.False(t, found)
	_, found = values["res_risk2"]
	assert.False(t, found)
}

func TestAcroButtonValues(t *testing.T) {
	tests := []struct {
		name             string
		risk             draw.RiskLevel
		decision         draw.Decision
		expectedRisk     string
		expectedApproval string
	}{
		{
			name:             "approved_high",
			risk:             draw.RiskHigh,
			decision:         draw.DecisionApproved,
			expectedRisk:     "H",
			expectedApproval: "app",
		},
		{
			name:             "disapproved_medium",
			risk:             draw.RiskMedium,
			decision:         draw.DecisionDisapproved,
			expectedRisk:     "M",
			expectedApproval: "dis",
		},
		{
			name:             "defaults",
			risk:             draw.RiskUnset,
			decision:         draw.DecisionUndecided,
			expectedRisk:     "L",
			expectedApproval: "dis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := acroButtonValues(&draw.Assignments{OverallRisk: tt.risk, Decision: tt.decision})
			require.Len(t, values, 2)
			assert.Equal(t, tt.expectedRisk, values["overall_res"])
			assert.Equal(t, tt.expectedApproval, values["xapp"])
		})
	}
}
