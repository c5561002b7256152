package rolodex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agustinfitipaldi/blood/internal/store"
)

func namedComponents(names ...string) []store.Component {
	components := make([]store.Component, len(names))
	for i, n := range names {
		components[i] = store.Component{ID: int64(i + 1), Name: n}
	}
	return components
}

func TestNavWrapsForward(t *testing.T) {
	var n Nav

	// [A, B, C]: next from C wraps to A
	n.Next(3)
	assert.Equal(t, 1, n.Index())
	n.Next(3)
	assert.Equal(t, 2, n.Index())
	n.Next(3)
	assert.Equal(t, 0, n.Index())
}

func TestNavWrapsBackward(t *testing.T) {
	var n Nav

	// [A, B, C]: prev from A wraps to C
	n.Prev(3)
	assert.Equal(t, 2, n.Index())
	n.Prev(3)
	assert.Equal(t, 1, n.Index())
}

func TestNavSingleComponent(t *testing.T) {
	var n Nav
	n.Next(1)
	assert.Equal(t, 0, n.Index())
	n.Prev(1)
	assert.Equal(t, 0, n.Index())
}

func TestNavEmptyList(t *testing.T) {
	var n Nav
	n.Next(0)
	assert.Equal(t, 0, n.Index())
	n.Prev(0)
	assert.Equal(t, 0, n.Index())
}

func TestListChangedFollowsPreferredID(t *testing.T) {
	var n Nav

	before := namedComponents("Creatinine", "HbA1c", "LDL")
	n.ListChanged(before, 0)
	n.Next(3)
	n.Next(3)
	assert.Equal(t, 2, n.Index()) // LDL

	// A new component sorts before LDL and shifts its index
	after := []store.Component{
		{ID: 1, Name: "Creatinine"},
		{ID: 4, Name: "Ferritin"},
		{ID: 2, Name: "HbA1c"},
		{ID: 3, Name: "LDL"},
	}
	n.ListChanged(after, 3)
	assert.Equal(t, 3, n.Index())
}

func TestListChangedClampsWhenPreferredGone(t *testing.T) {
	var n Nav

	n.ListChanged(namedComponents("A", "B", "C"), 0)
	n.Next(3)
	n.Next(3)
	assert.Equal(t, 2, n.Index())

	// The selected component was deleted; index clamps to the new end
	n.ListChanged(namedComponents("A", "B"), 99)
	assert.Equal(t, 1, n.Index())
}

func TestListChangedEmptyList(t *testing.T) {
	var n Nav
	n.ListChanged(namedComponents("A", "B"), 0)
	n.Next(2)
	n.ListChanged(nil, 0)
	assert.Equal(t, 0, n.Index())
}

func TestListChangedZeroIDMeansNoPreference(t *testing.T) {
	var n Nav
	n.ListChanged(namedComponents("A", "B", "C"), 0)
	n.Next(3)
	n.ListChanged(namedComponents("A", "B", "C"), 0)
	assert.Equal(t, 1, n.Index())
}
