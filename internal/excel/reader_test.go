package excel

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openTestWorkbook(t *testing.T) *Workbook {
	t.Helper()
	wb, err := OpenWorkbook(testWorkbookPath(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestReadSheet_ByName(t *testing.T) {
	wb := openTestWorkbook(t)

	name, grid, err := ReadSheet(wb, SelectByName("Sheet1"))
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", name)
	assert.Equal(t, [][]string{
		{"Header1", "Header2"},
		{"Value1", ""},
	}, grid)
}

func TestReadSheet_MissingName(t *testing.T) {
	wb := openTestWorkbook(t)

	_, _, err := ReadSheet(wb, SelectByName("Missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestReadSheet_DefaultEqualsIndexZero(t *testing.T) {
	wb := openTestWorkbook(t)

	defName, defGrid, err := ReadSheet(wb, SelectDefault())
	require.NoError(t, err)

	idxName, idxGrid, err := ReadSheet(wb, SelectByIndex(0))
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", defName)
	assert.Equal(t, idxName, defName)
	assert.Equal(t, idxGrid, defGrid)
}

func TestReadSheet_IndexOutOfRange(t *testing.T) {
	wb := openTestWorkbook(t)

	_, _, err := ReadSheet(wb, SelectByIndex(5))
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Message, "sheet index 5 out of range")
	assert.Contains(t, valErr.Message, "[0,2)")
}

func TestReadSheet_Rectangular(t *testing.T) {
	wb := openTestWorkbook(t)

	_, grid, err := ReadSheet(wb, SelectByName("Sheet1"))
	require.NoError(t, err)

	// Short rows are padded to the sheet's max used column count
	for _, row := range grid {
		assert.Len(t, row, 2)
	}
}

func TestReadSheet_EmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	name, grid, err := ReadSheet(wb, SelectByName("Empty"))
	require.NoError(t, err)
	assert.Equal(t, "Empty", name)
	assert.Empty(t, grid)
	assert.NotNil(t, grid)
}

func TestReadAllSheets(t *testing.T) {
	wb := openTestWorkbook(t)

	env, err := ReadAllSheets(wb)
	require.NoError(t, err)

	assert.Equal(t, 2, env.Len())
	assert.Equal(t, []string{"Sheet1", "Sheet2"}, env.SheetNames())

	grid, ok := env.Grid("Sheet1")
	require.True(t, ok)
	assert.Equal(t, [][]string{
		{"Header1", "Header2"},
		{"Value1", ""},
	}, grid)

	grid, ok = env.Grid("Sheet2")
	require.True(t, ok)
	assert.Equal(t, [][]string{
		{"Name", "42", "3.14", "TRUE"},
	}, grid)
}

func TestEnvelope_MarshalPreservesOrder(t *testing.T) {
	env := NewEnvelope()
	env.Add("Zebra", [][]string{{"z"}})
	env.Add("Alpha", [][]string{{"a"}})

	data, err := json.Marshal(env)
	require.NoError(t, err)

	// Insertion order, not sorted order
	assert.Equal(t, `{"Zebra":[["z"]],"Alpha":[["a"]]}`, string(data))
}

func TestEnvelope_MarshalIdempotent(t *testing.T) {
	wb := openTestWorkbook(t)

	first, err := ReadAllSheets(wb)
	require.NoError(t, err)
	second, err := ReadAllSheets(wb)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEnvelope_NilGridMarshalsAsEmptyArray(t *testing.T) {
	env := NewEnvelope()
	env.Add("Empty", nil)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"Empty":[]}`, string(data))
}

func TestEnvelope_AddReplacesInPlace(t *testing.T) {
	env := NewEnvelope()
	env.Add("A", [][]string{{"old"}})
	env.Add("B", [][]string{{"b"}})
	env.Add("A", [][]string{{"new"}})

	assert.Equal(t, []string{"A", "B"}, env.SheetNames())
	grid, _ := env.Grid("A")
	assert.Equal(t, [][]string{{"new"}}, grid)
}
