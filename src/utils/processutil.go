package utils

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// HasColumn 判断DataFrame是否有某列
func HasColumn(df dataframe.DataFrame, name string) bool {
	return Contains(df.Names(), name)
}

// MissingColumns 返回df中缺少的列
func MissingColumns(df dataframe.DataFrame, names []string) []string {
	var missing []string
	for _, n := range names {
		if !HasColumn(df, n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// WriteSheet 将DataFrame写入工作簿的一个工作表(不存在则新建)，第一行为列名
func WriteSheet(f *excelize.File, sheetName string, df dataframe.DataFrame) error {
	if idx, _ := f.GetSheetIndex(sheetName); idx == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheetName, err)
		}
	}

	colNames := df.Names()
	header := make([]interface{}, len(colNames))
	for i, name := range colNames {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header %s: %w", sheetName, err)
	}

	columns := make([]series.Series, len(colNames))
	for i, name := range colNames {
		columns[i] = df.Col(name)
	}

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		row := make([]interface{}, len(columns))
		for colIdx, s := range columns {
			row[colIdx] = cellValue(s, rowIdx)
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", rowIdx, sheetName, err)
		}
	}
	return nil
}

func cellValue(s series.Series, i int) interface{} {
	el := s.Elem(i)
	if el.IsNA() {
		return nil
	}
	switch s.Type() {
	case series.Int:
		n, err := el.Int()
		if err != nil {
			return el.String()
		}
		return n
	case series.Float:
		return el.Float()
	case series.Bool:
		b, err := el.Bool()
		if err != nil {
			return el.String()
		}
		return b
	default:
		return el.String()
	}
}
