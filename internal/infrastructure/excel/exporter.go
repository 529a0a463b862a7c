// Package excel genera la planilla de exportación del listado de productos.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/factorg/factorg-api/internal/domain/repository"
)

const sheetName = "Productos"

var hundred = decimal.NewFromInt(100)

// columnas en el mismo orden que la tabla del panel.
var headers = []string{
	"Folio", "Fecha Emisión", "Producto", "Código", "Cód. Lectura", "Cód. Admin",
	"Familia", "Área", "Categoría", "Unidad", "Cantidad", "Precio Unitario",
	"Neto", "IVA", "% Adicional", "Imp. Adicional", "Otros", "Total Costo", "Costo Unitario",
}

// ExportProducts vuelca las filas del reporte a un XLSX en memoria.
func ExportProducts(rows []repository.ProductRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("celda de encabezado: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("escribir encabezado: %w", err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, headerStyle)
	}

	for i, row := range rows {
		values := rowValues(row)
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("celda de dato: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("generar planilla: %w", err)
	}
	return buf.Bytes(), nil
}

func rowValues(row repository.ProductRow) []any {
	issueDate := ""
	if row.IssueDate != nil {
		issueDate = row.IssueDate.Format("2006-01-02")
	}
	code := ""
	if row.Product.Code != nil {
		code = *row.Product.Code
	}
	readingCode := ""
	if row.ReadingCod != nil {
		readingCode = row.ReadingCod.Value
	}
	adminCode, family, area, pct := "", "", "", ""
	if row.AdminCode != nil {
		adminCode = row.AdminCode.Code
		family = row.AdminCode.Family
		area = row.AdminCode.Area
		pct = row.AdminCode.Percentage.Mul(hundred).StringFixed(2) + "%"
	}
	category := ""
	if row.Category != nil {
		category = row.Category.Name
	}
	return []any{
		row.Folio,
		issueDate,
		row.Product.Name,
		code,
		readingCode,
		adminCode,
		family,
		area,
		category,
		row.Product.Unit,
		row.Product.Quantity.InexactFloat64(),
		row.UnitPrice.InexactFloat64(),
		row.Net.InexactFloat64(),
		row.VAT.InexactFloat64(),
		pct,
		row.Additional.InexactFloat64(),
		row.Misc,
		row.TotalCost.InexactFloat64(),
		row.UnitCost.InexactFloat64(),
	}
}
