// Package export renders analyzed receipts as an XLSX workbook. Export is
// stateless: the client sends back the receipts it holds, since the backend
// keeps no ledger.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gastozero/backend/internal/receipt"
)

const sheetName = "Cupons"

// BuildReceiptsWorkbook returns an XLSX workbook (as bytes) with one row per
// receipt.
func BuildReceiptsWorkbook(receipts []receipt.Receipt) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Loja", "Data da Compra", "Categoria", "Forma de Pagamento", "Valor Total", "Itens", "Arquivo"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "G1", styleHeader)

	row := 2
	for _, rec := range receipts {
		date := ""
		if rec.PurchaseDate != nil {
			date = *rec.PurchaseDate
		}
		category := ""
		if rec.Category != nil {
			category = string(*rec.Category)
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		write(1, rec.Store)
		write(2, date)
		write(3, category)
		write(4, rec.PaymentMethod)
		total, _ := rec.TotalAmount.Float64()
		write(5, total)
		write(6, itemSummary(rec.Items))
		write(7, rec.SourceFileName)
		row++
	}

	_ = f.SetColWidth(sheetName, "A", "A", 28)
	_ = f.SetColWidth(sheetName, "B", "D", 16)
	_ = f.SetColWidth(sheetName, "E", "E", 12)
	_ = f.SetColWidth(sheetName, "F", "F", 48)
	_ = f.SetColWidth(sheetName, "G", "G", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func itemSummary(items []receipt.LineItem) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Name != "" {
			names = append(names, item.Name)
		}
	}
	return strings.Join(names, ", ")
}
