package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected RiskLevel
	}{
		{name: "extremely_high", input: "EH", expected: RiskExtremelyHigh},
		{name: "extremely_high_lowercase", input: "eh", expected: RiskExtremelyHigh},
		{name: "e_alias", input: "E", expected: RiskExtremelyHigh},
		{name: "e_alias_lowercase", input: "e", expected: RiskExtremelyHigh},
		{name: "high", input: "H", expected: RiskHigh},
		{name: "medium", input: "m", expected: RiskMedium},
		{name: "low", input: "L", expected: RiskLow},
		{name: "padded", input: "  h  ", expected: RiskHigh},
		{name: "empty", input: "", expected: RiskUnset},
		{name: "blank", input: "   ", expected: RiskUnset},
		{name: "unrecognized", input: "X", expected: RiskUnknown},
		{name: "unrecognized_word", input: "extreme", expected: RiskUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseRiskLevel(tt.input))
		})
	}
}

func TestRiskLevel_RowCode(t *testing.T) {
	tests := []struct {
		level    RiskLevel
		expected string
	}{
		{RiskExtremelyHigh, "1"},
		{RiskHigh, "2"},
		{RiskMedium, "3"},
		{RiskLow, "4"},
		{RiskUnknown, "0"},
		{RiskUnset, ""},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.RowCode())
		})
	}
}

func TestRiskLevel_OverallExport(t *testing.T) {
	tests := []struct {
		level    RiskLevel
		expected string
	}{
		{RiskExtremelyHigh, "EH"},
		{RiskHigh, "H"},
		{RiskMedium, "M"},
		{RiskLow, "L"},
		// The blank form ships with LOW selected.
		{RiskUnset, "L"},
		{RiskUnknown, "L"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.OverallExport())
		})
	}
}

func TestRiskLevel_Selected(t *testing.T) {
	levels := []RiskLevel{RiskExtremelyHigh, RiskHigh, RiskMedium, RiskLow}

	for _, r := range levels {
		for _, other := range levels {
			assert.Equal(t, r == other, r.Selected(other), "%s vs %s", r, other)
		}
	}

	for _, other := range levels {
		assert.False(t, RiskUnset.Selected(other), "unset selects nothing")
		assert.False(t, RiskUnknown.Selected(other), "unknown selects nothing")
	}
}
