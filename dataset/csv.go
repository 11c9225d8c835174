package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tabgo-ml/tabgo/pkg/errors"
)

// FromCSV constructs a Dataset from a delimited text file with a header
// row. The field separator defaults to ',' (see WithSeparator) and an
// index column can be designated by name (see WithIndexColumn); without
// one, rows get ordinal labels.
//
// Cells that do not parse as numbers are ingested as NaN and reported
// through a non-fatal DataConversionWarning, so a later DropNA can clean
// them up explicitly.
func FromCSV(path string, opts ...Option) (*Dataset, error) {
	cfg := applyOptions(opts)

	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return nil, errors.NewUnsupportedFormatError(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "tabgo: opening %q", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = cfg.separator
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "tabgo: parsing %q", path)
	}
	if len(records) < 2 {
		return nil, errors.NewModelError("FromCSV", "no data rows in "+path, errors.ErrEmptyData)
	}

	header := records[0]
	indexPos := -1
	if cfg.indexColumn != "" {
		for j, name := range header {
			if name == cfg.indexColumn {
				indexPos = j
				break
			}
		}
		if indexPos < 0 {
			return nil, errors.NewKeyNotFoundError("column", cfg.indexColumn)
		}
	}

	columns := make([]string, 0, len(header))
	for j, name := range header {
		if j != indexPos {
			columns = append(columns, name)
		}
	}

	rows := records[1:]
	index := make([]string, len(rows))
	values := make([]float64, 0, len(rows)*len(columns))
	coerced := 0

	for i, record := range rows {
		if len(record) != len(header) {
			return nil, errors.NewDimensionError("FromCSV", len(header), len(record), 1)
		}
		if indexPos >= 0 {
			index[i] = record[indexPos]
		} else {
			index[i] = strconv.Itoa(i)
		}
		for j, cell := range record {
			if j == indexPos {
				continue
			}
			v, perr := parseCell(cell)
			if perr != nil {
				v = math.NaN()
				coerced++
			}
			values = append(values, v)
		}
	}

	if coerced > 0 {
		errors.Warn(errors.NewDataConversionWarning(
			"string", "float64",
			fmt.Sprintf("%d non-numeric cells in %q ingested as NaN", coerced, path)))
	}

	frame, err := NewFrame(columns, index, values)
	if err != nil {
		return nil, err
	}
	return assemble(frame, cfg)
}

// parseCell interprets one CSV cell. Empty cells and common NA spellings
// become NaN without a warning; anything else must parse as a float.
func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
