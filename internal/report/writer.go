package report

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/lukman83/naverscrap/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the worksheet holding the products.
	SheetName = "Sheet1"

	linkColor     = "0000FF"
	columnPadding = 2
)

// Columns is the fixed column order of the report.
var Columns = []string{"name", "price", "mall_name", "link"}

// WriteWorkbook writes products to a new xlsx file at path: one header row,
// one row per product, an autofilter over the used range, the name cell of
// every row linked to the listing, and every column sized to its longest value.
func WriteWorkbook(path string, products []models.Product) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	widths := make([]int, len(Columns))
	measure := func(col int, s string) {
		if n := utf8.RuneCountInString(s); n > widths[col] {
			widths[col] = n
		}
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
		measure(i, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: linkColor, Underline: "single"},
	})
	if err != nil {
		return fmt.Errorf("create link style: %w", err)
	}

	for i, p := range products {
		nameCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{p.Name, p.Price, p.MallName, p.Link}
		if err := f.SetSheetRow(SheetName, nameCell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
		measure(0, p.Name)
		measure(1, strconv.FormatInt(p.Price, 10))
		measure(2, p.MallName)
		measure(3, p.Link)

		if p.Link == "" {
			continue
		}
		if err := f.SetCellHyperLink(SheetName, nameCell, p.Link, "External"); err != nil {
			return fmt.Errorf("link %s: %w", nameCell, err)
		}
		if err := f.SetCellStyle(SheetName, nameCell, nameCell, linkStyle); err != nil {
			return fmt.Errorf("style %s: %w", nameCell, err)
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(Columns), len(products)+1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(SheetName, "A1:"+lastCell, nil); err != nil {
		return fmt.Errorf("autofilter: %w", err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := min(float64(w+columnPadding), excelize.MaxColumnWidth)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("width of column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
