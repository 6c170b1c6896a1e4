package draw

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/bytedance/sonic"
	hjson "github.com/hjson/hjson-go/v4"
)

// Record is the input document for one worksheet run. Every field is
// optional; absent values map to empty text downstream.
type Record struct {
	Mission             Text           `json:"mission_task_and_description"`
	Date                Text           `json:"date"`
	PreparedBy          Preparer       `json:"prepared_by"`
	OverallSupervision  Text           `json:"overall_supervision_plan"`
	Subtasks            []Subtask      `json:"subtasks"`
	OverallResidualRisk Text           `json:"overall_residual_risk_level"`
	ApprovalDecision    Text           `json:"approval_decision"`
	Approval            *ApprovalFlags `json:"approval_or_disapproval_of_mission_or_task"`
}

// Preparer describes block 2 of the worksheet.
type Preparer struct {
	Name  Text `json:"name_last_first_middle_initial"`
	Rank  Text `json:"rank_grade"`
	Title Text `json:"duty_title_position"`
	Unit  Text `json:"unit"`
	Email Text `json:"work_email"`
	Phone Text `json:"telephone"`
	UIC   Text `json:"uic_cin"`
	Plan  Text `json:"training_support_or_lesson_plan_or_opord"`
}

// Subtask is one row of the hazard table (blocks 4 through 9).
type Subtask struct {
	Subtask      NamedItem `json:"subtask"`
	Hazard       Text      `json:"hazard"`
	Control      ValueList `json:"control"`
	HowTo        HowTo     `json:"how_to_implement"`
	InitialRisk  Text      `json:"initial_risk_level"`
	ResidualRisk Text      `json:"residual_risk_level"`
}

// NamedItem wraps an object with a single "name" member.
type NamedItem struct {
	Name Text `json:"name"`
}

// ValueList wraps an object with a "values" list member.
type ValueList struct {
	Values []Text `json:"values"`
}

// HowTo holds the block 8 "how" and "who" lists.
type HowTo struct {
	How ValueList `json:"how"`
	Who ValueList `json:"who"`
}

// ApprovalFlags is the boolean-pair representation of the block 12 decision.
type ApprovalFlags struct {
	Approve    Flag `json:"approve"`
	Disapprove Flag `json:"disapprove"`
}

// Text is a string that tolerates non-string scalars in the input document.
// Numbers and booleans decode to their textual form, null and non-scalar
// values decode to the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	case '{', '[':
		*t = ""
	default:
		if string(data) == "null" {
			*t = ""
			return nil
		}
		// number, true, false: keep the literal token text
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Flag is a boolean that also accepts "true"/"false" strings and 0/1 numbers.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "true", "1", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

// UnmarshalJSON ignores input that is not a JSON object, so a malformed
// member (say, a bare string where an object is expected) degrades to the
// zero value instead of failing the whole document.
func (n *NamedItem) UnmarshalJSON(data []byte) error {
	type alias NamedItem
	if !isObject(data) {
		*n = NamedItem{}
		return nil
	}
	var a alias
	if err := sonic.Unmarshal(data, &a); err != nil {
		*n = NamedItem{}
		return nil
	}
	*n = NamedItem(a)
	return nil
}

func (v *ValueList) UnmarshalJSON(data []byte) error {
	type alias ValueList
	if !isObject(data) {
		*v = ValueList{}
		return nil
	}
	var a alias
	if err := sonic.Unmarshal(data, &a); err != nil {
		*v = ValueList{}
		return nil
	}
	*v = ValueList(a)
	return nil
}

func (h *HowTo) UnmarshalJSON(data []byte) error {
	type alias HowTo
	if !isObject(data) {
		*h = HowTo{}
		return nil
	}
	var a alias
	if err := sonic.Unmarshal(data, &a); err != nil {
		*h = HowTo{}
		return nil
	}
	*h = HowTo(a)
	return nil
}

func (p *Preparer) UnmarshalJSON(data []byte) error {
	type alias Preparer
	if !isObject(data) {
		*p = Preparer{}
		return nil
	}
	var a alias
	if err := sonic.Unmarshal(data, &a); err != nil {
		*p = Preparer{}
		return nil
	}
	*p = Preparer(a)
	return nil
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// LoadRecord reads and decodes an input record from path. Plain JSON is
// decoded directly; .hjson files go through the Hjson reader; a JSON
// document that fails to parse gets one repair pass before giving up.
// Records regularly arrive from LLM pipelines with minor syntax damage.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input record: %w", err)
	}
	return DecodeRecord(data, filepath.Ext(path))
}

// DecodeRecord decodes raw record bytes. ext selects the Hjson reader for
// ".hjson"; anything else is treated as JSON.
func DecodeRecord(data []byte, ext string) (*Record, error) {
	var rec Record

	if strings.EqualFold(ext, ".hjson") {
		var tree interface{}
		if err := hjson.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse hjson record: %w", err)
		}
		normalized, err := sonic.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("normalize hjson record: %w", err)
		}
		if err := sonic.Unmarshal(normalized, &rec); err != nil {
			return nil, fmt.Errorf("decode hjson record: %w", err)
		}
		return &rec, nil
	}

	if err := sonic.Unmarshal(data, &rec); err == nil {
		return &rec, nil
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse input record: %w", err)
	}
	if err := sonic.Unmarshal([]byte(repaired), &rec); err != nil {
		return nil, fmt.Errorf("parse repaired input record: %w", err)
	}
	return &rec, nil
}
