package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustinfitipaldi/blood/internal/store"
)

func floatPtr(v float64) *float64 { return &v }

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "blood.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	hba1c, err := st.CreateComponent(ctx, store.Component{
		Name: "HbA1c", Unit: "mmol/mol",
		NormalMin: floatPtr(20), NormalMax: floatPtr(42),
		LongTitle: "Glycated haemoglobin",
	})
	require.NoError(t, err)
	ldl, err := st.CreateComponent(ctx, store.Component{Name: "LDL", Unit: "mmol/L"})
	require.NoError(t, err)

	for _, e := range []store.Entry{
		{ComponentID: hba1c, Value: 39.8, Date: "2025-01-01", Notes: "fasting"},
		{ComponentID: hba1c, Value: 41.2, Date: "2025-02-01"},
		{ComponentID: ldl, Value: 2.9, Date: "2025-01-15"},
	} {
		_, err := st.AddEntry(ctx, e)
		require.NoError(t, err)
	}
	return st
}

func TestWriteCSVAllComponents(t *testing.T) {
	st := seededStore(t)

	var buf bytes.Buffer
	rows, err := WriteCSV(context.Background(), &buf, st, "")
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 entries

	assert.Equal(t, Header, records[0])
	// Components export in name order, entries in date order
	assert.Equal(t, []string{"HbA1c", "Glycated haemoglobin", "mmol/mol", "2025-01-01", "39.8", "fasting", "20", "42"}, records[1])
	assert.Equal(t, "2025-02-01", records[2][3])
	assert.Equal(t, "LDL", records[3][0])
	// Unset bounds export as empty fields
	assert.Equal(t, "", records[3][6])
	assert.Equal(t, "", records[3][7])
}

func TestWriteCSVSingleComponent(t *testing.T) {
	st := seededStore(t)

	var buf bytes.Buffer
	rows, err := WriteCSV(context.Background(), &buf, st, "LDL")
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "LDL", records[1][0])
}

func TestWriteCSVUnknownComponent(t *testing.T) {
	st := seededStore(t)

	var buf bytes.Buffer
	_, err := WriteCSV(context.Background(), &buf, st, "Missing")
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWriteCSVEmptyStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "blood.db"))
	require.NoError(t, err)
	defer st.Close()

	var buf bytes.Buffer
	rows, err := WriteCSV(context.Background(), &buf, st, "")
	require.NoError(t, err)
	assert.Zero(t, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}
