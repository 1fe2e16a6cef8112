package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const sheetName = "data"

// Value and delta column letters, in Header order after the date column.
var (
	valueCols = []string{"B", "D", "F", "H", "J", "L"}
	deltaCols = []string{"C", "E", "G", "I", "K", "M"}
)

// WriteXLSX renders one table into "[SYM] Name historical.xlsx" under dir.
// Delta columns are written as live formulas referencing the next row, so
// the workbook recalculates if edited; the final data row's delta cells stay
// blank.
func WriteXLSX(table Table, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range table.Rows {
		rowNum := i + 2
		values := []float64{r.Open, r.High, r.Low, r.Close, r.Volume, r.MarketCap}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), r.Date); err != nil {
			return "", fmt.Errorf("write row %d: %w", rowNum, err)
		}
		for c, col := range valueCols {
			if err := f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, rowNum), values[c]); err != nil {
				return "", fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
		if r.Delta == nil {
			continue
		}
		next := rowNum + 1
		for c, col := range deltaCols {
			v := valueCols[c]
			var formula string
			if col == "K" || col == "M" {
				formula = fmt.Sprintf("%s%d-%s%d", v, rowNum, v, next)
			} else {
				formula = fmt.Sprintf("(%s%d-%s%d)/%s%d", v, rowNum, v, next, v, next)
			}
			if err := f.SetCellFormula(sheetName, fmt.Sprintf("%s%d", col, rowNum), formula); err != nil {
				return "", fmt.Errorf("write formula row %d: %w", rowNum, err)
			}
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("[%s] %s historical.xlsx", table.Symbol, table.Name))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}
