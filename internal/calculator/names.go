package calculator

import (
	"fmt"
	"strings"

	"OHLCToolkit/internal/model"
)

// FieldName returns the field-th dot-separated part of a column name such as
// "VTI.Close". An out-of-range field returns the whole name.
func FieldName(name string, field int) string {
	parts := strings.Split(name, ".")
	if field < 0 || field >= len(parts) {
		return name
	}
	return parts[field]
}

// SymbolName returns the symbol prefix of the first column of s, e.g. "VTI"
// for a series whose columns are "VTI.Open", "VTI.High", ...
func SymbolName(s *model.Series) string {
	if s.NumCols() == 0 {
		return ""
	}
	return FieldName(s.Columns()[0], 0)
}

// ColumnIndex finds the column named field, either exactly or as the suffix
// after the last dot ("Close" matches "VTI.Close").
func ColumnIndex(s *model.Series, field string) (int, error) {
	if j := s.ColIndex(field); j >= 0 {
		return j, nil
	}
	for j, c := range s.Columns() {
		if k := strings.LastIndex(c, "."); k >= 0 && c[k+1:] == field {
			return j, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in %v: %w", field, s.Columns(), ErrInvalidArgument)
}

// ExtractColumn returns a single-column series holding the field column of s.
func ExtractColumn(s *model.Series, field string) (*model.Series, error) {
	j, err := ColumnIndex(s, field)
	if err != nil {
		return nil, fmt.Errorf("extract column: %w", err)
	}
	return s.WithColumns(j), nil
}
