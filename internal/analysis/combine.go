// Package analysis builds a combined tabular frame from loaded datasets and
// runs first-pass electrolyzer analysis over it.
package analysis

import (
	"context"
	"errors"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"electrolyzer-analyzer/internal/dataset"
)

// SourceFileColumn is appended to the combined frame so every row keeps a
// reference to the file it came from.
const SourceFileColumn = "source_file"

// ColumnClasses groups column names by their role, inferred from the name.
type ColumnClasses struct {
	Timestamp []string
	Data      []string
	Voltage   []string
	Current   []string
}

// ClassifyColumns sorts column names into timestamp, data, voltage, and
// current classes by substring match, the same heuristic the export format
// supports (tag names carry their unit).
func ClassifyColumns(columns []string) ColumnClasses {
	var classes ColumnClasses
	for _, col := range columns {
		lower := strings.ToLower(col)
		switch {
		case col == SourceFileColumn:
			continue
		case strings.Contains(lower, "time"):
			classes.Timestamp = append(classes.Timestamp, col)
			continue
		}
		classes.Data = append(classes.Data, col)
		if strings.Contains(lower, "volt") {
			classes.Voltage = append(classes.Voltage, col)
		}
		if strings.Contains(lower, "current") {
			classes.Current = append(classes.Current, col)
		}
	}
	return classes
}

// Combine merges the datasets into one DataFrame. Columns are the union of
// all dataset columns in first-seen order plus SourceFileColumn; cells
// missing from a dataset stay empty. When a timestamp column exists the
// frame is sorted by the first one.
func Combine(ctx context.Context, datasets []*dataset.Dataset) (*dataframe.DataFrame, error) {
	if len(datasets) == 0 {
		return nil, errors.New("no datasets to combine")
	}

	var columns []string
	seen := make(map[string]bool)
	for _, ds := range datasets {
		for _, col := range ds.Columns {
			if col == "" || seen[col] {
				continue
			}
			seen[col] = true
			columns = append(columns, col)
		}
	}
	if len(columns) == 0 {
		return nil, errors.New("datasets have no named columns")
	}

	series := make([]dataframe.Series, 0, len(columns)+1)
	for _, col := range columns {
		series = append(series, dataframe.NewSeriesString(col, nil))
	}
	series = append(series, dataframe.NewSeriesString(SourceFileColumn, nil))
	df := dataframe.NewDataFrame(series...)

	for _, ds := range datasets {
		indexes := make([]int, len(columns))
		for i, col := range columns {
			indexes[i] = ds.ColumnIndex(col)
		}
		for _, row := range ds.Rows {
			vals := make([]interface{}, 0, len(columns)+1)
			for _, idx := range indexes {
				if idx < 0 {
					vals = append(vals, "")
				} else {
					vals = append(vals, row[idx])
				}
			}
			vals = append(vals, ds.Name)
			df.Append(nil, vals...)
		}
	}

	classes := ClassifyColumns(columns)
	if len(classes.Timestamp) > 0 {
		df.Sort(ctx, []dataframe.SortKey{{Key: classes.Timestamp[0], Desc: false}})
	}

	return df, nil
}
