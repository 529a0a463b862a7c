package repository

import "github.com/factorg/factorg-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetBySupplierAndFolio detecta duplicados antes de insertar.
	GetBySupplierAndFolio(supplierID, folio string) (*entity.Invoice, error)
	List() ([]*entity.Invoice, error)
	SearchBySupplierRUT(rut string) ([]*entity.Invoice, error)
	AssignBusiness(invoiceID, businessID string) error
	// Delete elimina la factura y cascadea a sus líneas.
	Delete(id string) error

	CreateLine(line *entity.InvoiceLine) error
	UpdateLine(line *entity.InvoiceLine) error
	LinesByProduct(productID string) ([]*entity.InvoiceLine, error)
	// LatestLineByProduct: línea más reciente por fecha de emisión de la
	// factura y luego orden de inserción. Nil si el producto no tiene líneas.
	LatestLineByProduct(productID string) (*entity.InvoiceLine, error)
	// InvoiceByLine devuelve la cabecera dueña de la línea (para el signo NC).
	InvoiceByLine(lineID string) (*entity.Invoice, error)
}
