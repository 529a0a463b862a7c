package entity

// ReadingCode (codigos_lectura) es la huella estable de identidad de un
// producto: {RUT proveedor}_{clave de nombre}_{código} o, sin código,
// {RUT}_{clave}_NC_{8 hex de SHA-1 del nombre normalizado}. Value es único en
// todo el sistema; los productos que referencian el mismo ReadingCode son
// "hermanos" para la propagación de cod_admin.
type ReadingCode struct {
	ID          string
	Value       string // RUT_PALABRA_COD, único
	NameKey     string // fragmento de nombre normalizado
	OriginCode  string // código del proveedor tal como llegó (normalizado)
	SupplierRUT string
	AdminCodeID *string
}
