// reader.go
package file

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"AppMarketAnalysis/src/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NaNValues 读入时视为缺失值的单元格内容
var NaNValues = []string{"", "NaN", "NA", "nan", "N/A"}

// Load 根据扩展名读取csv或xlsx
func Load(filePath, sheetName string) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		return ReadXLSX(filePath, sheetName)
	default:
		return ReadCSV(filePath)
	}
}

// ReadCSV 读取带表头的逗号分隔文件，所有列按字符串读入
func ReadCSV(filePath string) (dataframe.DataFrame, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: open %s: %w", models.ErrInput, filePath, err)
	}
	defer f.Close()

	// Excel导出的csv常带BOM，会污染第一列列名
	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: read csv %s: %w", models.ErrInput, filePath, err)
	}
	df, err := loadRecords(records)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: read csv %s: %w", models.ErrInput, filePath, err)
	}
	return df, nil
}

// loadRecords 第一行为表头；只有表头时返回0行的表
func loadRecords(records [][]string) (dataframe.DataFrame, error) {
	switch len(records) {
	case 0:
		return dataframe.DataFrame{}, fmt.Errorf("no header row")
	case 1:
		return emptyFrame(records[0]), nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NaNValues),
	)
	return df, df.Err
}

// emptyFrame 只有列名、没有数据行的表
func emptyFrame(headers []string) dataframe.DataFrame {
	columns := make([]series.Series, len(headers))
	for i, name := range headers {
		columns[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(columns...)
}

// ReadXLSX 读取工作表，第一行为表头；sheetName为空时取第一个工作表
func ReadXLSX(filePath, sheetName string) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: xlsx open file %s: %w", models.ErrInput, filePath, err)
	}
	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: excel文件中没有工作表: %s", models.ErrInput, filePath)
	}

	sheet := xlFile.Sheets[0]
	if sheetName != "" {
		var ok bool
		if sheet, ok = xlFile.Sheet[sheetName]; !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: sheet %q not found in %s", models.ErrInput, sheetName, filePath)
		}
	}

	df, err := convertSheetToDataFrame(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %w", models.ErrInput, filePath, err)
	}
	return df, nil
}

// convertSheetToDataFrame 将xlsx.Sheet转换为dataframe.DataFrame
func convertSheetToDataFrame(sheet *xlsx.Sheet) (dataframe.DataFrame, error) {
	if len(sheet.Rows) == 0 || sheet.Rows[0] == nil {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q has no header row", sheet.Name)
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, strings.TrimSpace(cell.String()))
	}

	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}

	for _, row := range sheet.Rows[1:] {
		if row == nil || isBlankRow(row) {
			continue
		}
		for i := range headers {
			value := ""
			if i < len(row.Cells) && row.Cells[i] != nil {
				value = row.Cells[i].String()
			}
			if isNaN(value) {
				value = "NaN"
			}
			columns[i] = append(columns[i], value)
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}

	df := dataframe.New(seriesList...)
	return df, df.Err
}

func isBlankRow(row *xlsx.Row) bool {
	for _, cell := range row.Cells {
		if cell != nil && strings.TrimSpace(cell.String()) != "" {
			return false
		}
	}
	return true
}

func isNaN(value string) bool {
	for _, v := range NaNValues {
		if value == v {
			return true
		}
	}
	return false
}
