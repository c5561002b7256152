package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "NAME", Width: 12},
		{Title: "UNIT", Width: 10},
	}
	rows := [][]string{
		{"HbA1c", "mmol/mol"},
		{"LDL", "mmol/L"},
	}

	out := RenderSimpleTable(columns, rows)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "HbA1c")
	assert.Contains(t, out, "mmol/L")
}

func TestRenderSimpleTableEmpty(t *testing.T) {
	assert.Equal(t, "", RenderSimpleTable([]TableColumn{{Title: "A", Width: 4}}, nil))
}

func TestNewTableColumnMapping(t *testing.T) {
	m := NewTable([]TableColumn{{Title: "X", Width: 3}}, []table.Row{{"v"}})
	assert.Len(t, m.Columns(), 1)
	assert.Equal(t, "X", m.Columns()[0].Title)
}
