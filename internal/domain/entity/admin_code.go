package entity

import "github.com/shopspring/decimal"

// AdminCode es el maestro de clasificación administrativa
// (codigos_admin_maestro). Percentage se guarda como fracción en [0,1];
// UMFactor multiplica la cantidad al calcular el costo unitario.
// Toda edición del maestro cascadea recálculo a los productos vinculados
// directamente o vía código de lectura compartido.
type AdminCode struct {
	ID          string
	Code        string
	ProductName string
	Family      string
	Area        string
	UMFactor    decimal.Decimal // factor unidad de medida; 1 si no aplica
	UnitLabel   string
	Percentage  decimal.Decimal // porcentaje_adicional como fracción 0..1
}
