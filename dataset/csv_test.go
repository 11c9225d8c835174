package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabgo-ml/tabgo/pkg/errors"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFromCSV(t *testing.T) {
	path := writeCSV(t, "data.csv", "id,f1,f2\ns1,1.5,10\ns2,2.5,20\n")

	ds, err := FromCSV(path, WithIndexColumn("id"))
	require.NoError(t, err)

	assert.Equal(t, []string{"f1", "f2"}, ds.X.Columns())
	assert.Equal(t, []string{"s1", "s2"}, ds.X.Index())

	v, err := ds.X.AtLabel("s2", "f1")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
}

func TestFromCSVOrdinalIndex(t *testing.T) {
	path := writeCSV(t, "data.csv", "f1\n1\n2\n3\n")

	ds, err := FromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, ds.X.Index())
}

func TestFromCSVSeparatorAndTarget(t *testing.T) {
	path := writeCSV(t, "data.csv", "f1;label\n1;0\n2;1\n")

	ds, err := FromCSV(path, WithSeparator(';'), WithTarget("label"))
	require.NoError(t, err)

	assert.Equal(t, []string{"f1"}, ds.X.Columns())
	require.NotNil(t, ds.Y)
	assert.Equal(t, []string{"label"}, ds.Y.Columns())
}

func TestFromCSVRejectsNonCSV(t *testing.T) {
	path := writeCSV(t, "data.txt", "f1\n1\n")

	_, err := FromCSV(path)
	require.Error(t, err)

	var formatErr *errors.UnsupportedFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestFromCSVUnknownIndexColumn(t *testing.T) {
	path := writeCSV(t, "data.csv", "f1\n1\n")

	_, err := FromCSV(path, WithIndexColumn("missing"))
	require.Error(t, err)

	var notFound *errors.KeyNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestFromCSVCoercesBadCellsToNaN(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	path := writeCSV(t, "data.csv", "f1,f2\n1,oops\n,2\n")

	ds, err := FromCSV(path)
	require.NoError(t, err)

	v, err := ds.X.AtLabel("0", "f2")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v), "unparseable cell becomes NaN")

	v, err = ds.X.AtLabel("1", "f1")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v), "empty cell becomes NaN silently")

	require.Len(t, warned, 1, "one warning per ingestion")
	var conv *errors.DataConversionWarning
	assert.True(t, errors.As(warned[0], &conv))
	assert.Contains(t, conv.Reason, "1 non-numeric", "empty cells are not counted as conversions")
}
