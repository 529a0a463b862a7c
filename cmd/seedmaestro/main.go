// seedmaestro genera el script SQL para poblar el maestro de códigos admin a
// partir de la planilla maestro.xlsx (columnas: cod_admin, nombre_producto,
// familia, area, um, un_medida, porcentaje_adicional).
//
// Uso: go run ./cmd/seedmaestro [ruta/maestro.xlsx]
// Escribe: internal/infrastructure/postgres/migrations/003_seed_maestro.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/factorg/factorg-api/internal/domain/costing"
)

func main() {
	xlsxPath := "maestro.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir planilla: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer hoja %s: %v\n", sheet, err)
		os.Exit(1)
	}
	if len(rows) < 2 {
		fmt.Fprintln(os.Stderr, "La planilla no tiene filas de datos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "003_seed_maestro.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Maestro de códigos admin\n")
	out.WriteString("-- Generado desde maestro.xlsx\n\n")

	count := 0
	for _, row := range rows[1:] { // saltar encabezado
		code := cell(row, 0)
		name := cell(row, 1)
		if code == "" || name == "" {
			continue
		}
		family := cell(row, 2)
		area := cell(row, 3)
		um := cell(row, 4)
		unitLabel := cell(row, 5)

		umFactor := decimal.NewFromInt(1)
		if um != "" {
			if d, err := decimal.NewFromString(strings.ReplaceAll(um, ",", ".")); err == nil && d.IsPositive() {
				umFactor = d
			}
		}
		pct, err := costing.NormalizePercentage(cell(row, 6))
		if err != nil {
			pct = decimal.Zero
		}

		fmt.Fprintf(out, "INSERT INTO codigos_admin_maestro (id, codigo, nombre_producto, familia, area, factor_um, unidad_medida, porcentaje_adicional)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', %s, %s, %s, %s, %s)\n",
			uuid.NewString(), escapeSQL(code), escapeSQL(name),
			sqlString(family), sqlString(area), umFactor.String(), sqlString(unitLabel), pct.String())
		out.WriteString("ON CONFLICT (codigo) DO UPDATE SET nombre_producto = EXCLUDED.nombre_producto, familia = EXCLUDED.familia, area = EXCLUDED.area, factor_um = EXCLUDED.factor_um, unidad_medida = EXCLUDED.unidad_medida, porcentaje_adicional = EXCLUDED.porcentaje_adicional;\n")
		count++
	}

	fmt.Printf("Generado %s: %d códigos admin\n", outPath, count)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func sqlString(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

// findModuleRoot sube directorios hasta encontrar go.mod.
func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
