package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDatasets = `<?xml version="1.0" encoding="UTF-8"?>
<xfa:datasets xmlns:xfa="http://www.xfa.org/schema/xfa-data/1.0/">
<xfa:data>
<form1>
<Page1>
<One/>
<Two>20240101</Two>
<Part4thru9>
<Row1>
<Subtask/>
<Hazard/>
<Control>Default control</Control>
<How/>
<Who/>
<InitialRisk><EH>0</EH><H>0</H><M>0</M><L>0</L></InitialRisk>
<ResidualRisk><EH>0</EH><H>0</H><M>0</M><L>0</L></ResidualRisk>
</Row1>
</Part4thru9>
<Ten><EH>0</EH><H>0</H><M>0</M><L>1</L></Ten>
<Eleven/>
<Twelve><Approve>0</Approve><Disapprove>1</Disapprove></Twelve>
</Page1>
</form1>
</xfa:data>
</xfa:datasets>`

func TestParseXMLTree(t *testing.T) {
	root, err := parseXMLTree([]byte(sampleDatasets))
	require.NoError(t, err)

	assert.Equal(t, "datasets", root.Name.Local)
	assert.Equal(t, "http://www.xfa.org/schema/xfa-data/1.0/", root.Name.Space)

	data := root.child("data")
	require.NotNil(t, data)

	page := data.path("form1", "Page1")
	require.NotNil(t, page)
	assert.Equal(t, "20240101", page.child("Two").Text)

	row := page.path("Part4thru9", "Row1")
	require.NotNil(t, row)
	assert.Equal(t, "Default control", row.child("Control").Text)
}

func TestParseXMLTree_Errors(t *testing.T) {
	_, err := parseXMLTree([]byte(""))
	assert.Error(t, err)

	_, err = parseXMLTree([]byte("not xml at all <"))
	assert.Error(t, err)
}

func TestXMLNode_SetText(t *testing.T) {
	root, err := parseXMLTree([]byte(sampleDatasets))
	require.NoError(t, err)

	page := root.path("data", "form1", "Page1")
	require.NotNil(t, page)

	one := page.child("One")
	one.setText("Convoy operations")
	assert.Equal(t, "Convoy operations", one.Text)

	// A node with element children keeps its structure.
	ten := page.child("Ten")
	ten.setText("should be ignored")
	require.Len(t, ten.Children, 4)
}

func TestXMLNode_Clone(t *testing.T) {
	root, err := parseXMLTree([]byte(sampleDatasets))
	require.NoError(t, err)

	row := root.path("data", "form1", "Page1", "Part4thru9", "Row1")
	require.NotNil(t, row)

	c := row.clone()
	c.child("Hazard").setText("Rollover")

	assert.Equal(t, "Rollover", c.child("Hazard").Text)
	assert.Equal(t, "", row.child("Hazard").Text, "clone must not alias the original")
}

func TestXMLNode_RemoveChildren(t *testing.T) {
	root, err := parseXMLTree([]byte(sampleDatasets))
	require.NoError(t, err)

	table := root.path("data", "form1", "Page1", "Part4thru9")
	require.NotNil(t, table)
	require.NotNil(t, table.child("Row1"))

	table.removeChildren("Row1")
	assert.Nil(t, table.child("Row1"))
}

func TestSerializeXMLTree_RoundTrip(t *testing.T) {
	root, err := parseXMLTree([]byte(sampleDatasets))
	require.NoError(t, err)

	root.path("data", "form1", "Page1", "One").setText("Range < day & night")

	out := serializeXMLTree(root)
	assert.Contains(t, string(out), `xmlns:xfa="http://www.xfa.org/schema/xfa-data/1.0/"`)
	assert.Contains(t, string(out), "<xfa:datasets")
	assert.Contains(t, string(out), "Range &lt; day &amp; night")

	// The serialized bytes parse back to an equivalent tree.
	again, err := parseXMLTree(out)
	require.NoError(t, err)
	assert.Equal(t, "Range < day & night", again.path("data", "form1", "Page1", "One").Text)
	assert.Equal(t, "20240101", again.path("data", "form1", "Page1", "Two").Text)
	require.NotNil(t, again.path("data", "form1", "Page1", "Part4thru9", "Row1"))
}
