package draw

import "strings"

// RiskLevel is the form's hazard severity enumeration.
type RiskLevel int

const (
	// RiskUnset means no code was supplied.
	RiskUnset RiskLevel = iota
	// RiskUnknown means a non-empty code was supplied but not recognized.
	RiskUnknown
	RiskExtremelyHigh
	RiskHigh
	RiskMedium
	RiskLow
)

// ParseRiskLevel maps a case-insensitive risk code to a RiskLevel.
// "E" is an accepted alias for "EH". Unrecognized non-empty input yields
// RiskUnknown, never an error.
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return RiskUnset
	case "EH", "E":
		return RiskExtremelyHigh
	case "H":
		return RiskHigh
	case "M":
		return RiskMedium
	case "L":
		return RiskLow
	default:
		return RiskUnknown
	}
}

func (r RiskLevel) String() string {
	switch r {
	case RiskExtremelyHigh:
		return "EH"
	case RiskHigh:
		return "H"
	case RiskMedium:
		return "M"
	case RiskLow:
		return "L"
	case RiskUnknown:
		return "unknown"
	default:
		return "unset"
	}
}

// RowCode returns the per-row combo box export value: "1" EH through "4" L,
// with "0" as the sentinel for an unrecognized code. Unset returns "" so the
// caller can leave the template default untouched.
func (r RiskLevel) RowCode() string {
	switch r {
	case RiskExtremelyHigh:
		return "1"
	case RiskHigh:
		return "2"
	case RiskMedium:
		return "3"
	case RiskLow:
		return "4"
	case RiskUnknown:
		return "0"
	default:
		return ""
	}
}

// OverallExport returns the block 10 radio group export value. The blank
// form ships with LOW selected, so anything unset or unrecognized falls back
// to "L".
func (r RiskLevel) OverallExport() string {
	switch r {
	case RiskExtremelyHigh:
		return "EH"
	case RiskHigh:
		return "H"
	case RiskMedium:
		return "M"
	case RiskLow:
		return "L"
	default:
		return "L"
	}
}

// Selected reports whether this level is the one a given one-hot flag node
// stands for. Unset and Unknown select nothing.
func (r RiskLevel) Selected(level RiskLevel) bool {
	switch r {
	case RiskExtremelyHigh, RiskHigh, RiskMedium, RiskLow:
		return r == level
	default:
		return false
	}
}
