// Package ingest implementa la carga de XML DTE: parseo, resolución de
// proveedor y negocio, deduplicación de facturas, resolución de identidad de
// productos (códigos de lectura), herencia de cod_admin y cálculo inicial de
// costos. Todo el lote corre dentro de una única transacción.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/application/dto"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/costing"
	"github.com/factorg/factorg-api/internal/domain/dte"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/normalize"
)

// Intentos máximos del bucle de reintento de códigos de lectura antes de
// rendirse (carrera de inserción degenerada).
const maxFingerprintAttempts = 20

// UseCase caso de uso de ingesta de XML.
type UseCase struct {
	tx TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// ProcessXML parsea el payload y persiste sus documentos. Devuelve cuántas
// facturas se crearon y cuántas se saltaron por duplicadas. XML mal formado
// devuelve domain.ErrInvalidXML sin tocar la base.
func (uc *UseCase) ProcessXML(ctx context.Context, raw []byte) (*dto.IngestResponse, error) {
	docs, err := dte.Parse(raw)
	if err != nil {
		return nil, err
	}

	out := &dto.IngestResponse{}
	err = uc.tx.Run(ctx, func(r Repos) error {
		for _, doc := range docs {
			created, err := uc.ingestDocument(r, doc)
			if err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					out.DuplicateInvoices++
					continue
				}
				return err
			}
			out.NewInvoices++
			out.InvoiceIDs = append(out.InvoiceIDs, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ingestDocument persiste un DTE. Devuelve domain.ErrDuplicate si ya existe
// una factura del mismo proveedor y folio (se reporta como salto, no error).
func (uc *UseCase) ingestDocument(r Repos, doc dte.Document) (string, error) {
	supplier, err := uc.resolveSupplier(r, doc.Issuer)
	if err != nil {
		return "", err
	}

	if existing, err := r.Invoices.GetBySupplierAndFolio(supplier.ID, doc.Folio); err != nil {
		return "", err
	} else if existing != nil {
		return "", domain.ErrDuplicate
	}

	var businessID *string
	if doc.Receiver.RUT != "" {
		business, err := ResolveBusiness(r.Businesses, doc.Receiver.RUT, doc.Receiver.LegalName, "", doc.Receiver.Contact, doc.Receiver.Address)
		if err != nil {
			return "", err
		}
		businessID = &business.ID
	}

	invoice := &entity.Invoice{
		ID:           uuid.New().String(),
		Folio:        doc.Folio,
		SupplierID:   supplier.ID,
		IssueDate:    doc.IssueDate,
		PaymentTerms: doc.PaymentTerms,
		Total:        doc.Total,
		IsCreditNote: doc.IsCreditNote,
		BusinessID:   businessID,
		CreatedAt:    time.Now(),
	}
	if err := r.Invoices.Create(invoice); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Carrera con otra ingesta del mismo folio: también es un salto.
			return "", domain.ErrDuplicate
		}
		return "", err
	}

	for _, item := range doc.Items {
		if err := uc.ingestItem(r, supplier, invoice, item); err != nil {
			return "", fmt.Errorf("folio %s, ítem %q: %w", doc.Folio, item.Name, err)
		}
	}
	return invoice.ID, nil
}

// ingestItem crea el producto (fila nueva siempre: snapshot histórico), su
// código de lectura, hereda cod_admin si aplica y calcula la línea.
func (uc *UseCase) ingestItem(r Repos, supplier *entity.Supplier, invoice *entity.Invoice, item dte.Item) error {
	rc, err := resolveReadingCode(r.ReadingCodes, supplier.RUT, item.Name, item.Code)
	if err != nil {
		return err
	}

	adminCodeID, adminCode, err := uc.inheritAdminCode(r, rc, item.Code, supplier.ID)
	if err != nil {
		return err
	}

	var code *string
	if c := normalize.Code(item.Code); c != "" {
		code = &item.Code
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          item.Name,
		Code:          code,
		Unit:          item.Unit,
		Quantity:      item.Quantity,
		SupplierID:    supplier.ID,
		AdminCodeID:   adminCodeID,
		ReadingCodeID: &rc.ID,
		CreatedAt:     time.Now(),
	}
	if err := r.Products.Create(product); err != nil {
		return err
	}

	pct, um := decimal.Zero, decimal.NewFromInt(1)
	if adminCode != nil {
		pct = adminCode.Percentage
		if !adminCode.UMFactor.IsZero() {
			um = adminCode.UMFactor
		}
	}
	res := costing.ComputeLine(costing.LineInput{
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		Percentage:   pct,
		UMFactor:     um,
		IsCreditNote: invoice.IsCreditNote,
	})
	line := &entity.InvoiceLine{
		ID:         uuid.New().String(),
		InvoiceID:  invoice.ID,
		ProductID:  product.ID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		Net:        res.Net,
		Additional: res.Additional,
		TotalCost:  res.TotalCost,
		UnitCost:   res.UnitCost,
		CreatedAt:  time.Now(),
	}
	return r.Invoices.CreateLine(line)
}

// resolveSupplier busca el proveedor por RUT normalizado o lo crea.
func (uc *UseCase) resolveSupplier(r Repos, issuer dte.Party) (*entity.Supplier, error) {
	rut := normalize.RUT(issuer.RUT)
	supplier, err := r.Suppliers.GetByRUT(rut)
	if err != nil {
		return nil, err
	}
	if supplier != nil {
		return supplier, nil
	}
	supplier = &entity.Supplier{
		ID:        uuid.New().String(),
		RUT:       rut,
		Name:      issuer.LegalName,
		Email:     issuer.Contact,
		Address:   issuer.Locality,
		CreatedAt: time.Now(),
	}
	if err := r.Suppliers.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// inheritAdminCode resuelve la clasificación heredada de un producto nuevo:
// primero la del código de lectura; si no, la del producto clasificado más
// reciente con el mismo código y proveedor; si no, ninguna.
func (uc *UseCase) inheritAdminCode(r Repos, rc *entity.ReadingCode, rawCode, supplierID string) (*string, *entity.AdminCode, error) {
	id := rc.AdminCodeID
	if id == nil {
		if c := normalize.Code(rawCode); c != "" {
			prior, err := r.Products.LatestClassifiedByCodeAndSupplier(rawCode, supplierID)
			if err != nil {
				return nil, nil, err
			}
			if prior != nil {
				id = prior.AdminCodeID
			}
		}
	}
	if id == nil {
		return nil, nil, nil
	}
	ac, err := r.AdminCodes.GetByID(*id)
	if err != nil {
		return nil, nil, err
	}
	if ac == nil {
		// cod_admin heredado que ya no existe: tratar como sin clasificar
		return nil, nil, nil
	}
	return id, ac, nil
}

// resolveReadingCode hace get-or-create idempotente de la huella. Ante una
// violación de unicidad por inserción concurrente se vuelve a buscar el valor
// (la otra transacción ya lo creó) y, si aun así no aparece, se reintenta con
// sufijos -01, -02, … hasta encontrar una clave libre. La carrera nunca llega
// al llamador.
func resolveReadingCode(repo interface {
	GetByValue(value string) (*entity.ReadingCode, error)
	Create(rc *entity.ReadingCode) error
}, supplierRUT, name, code string) (*entity.ReadingCode, error) {
	base := normalize.Fingerprint(supplierRUT, name, code)
	originCode := normalize.Code(code)
	if originCode == "" {
		originCode = normalize.EmptyCode
	}

	for attempt := 0; attempt < maxFingerprintAttempts; attempt++ {
		value := base
		if attempt > 0 {
			value = fmt.Sprintf("%s-%02d", base, attempt)
		}
		existing, err := repo.GetByValue(value)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		rc := &entity.ReadingCode{
			ID:          uuid.New().String(),
			Value:       value,
			NameKey:     normalize.NameKey(name),
			OriginCode:  originCode,
			SupplierRUT: normalize.RUT(supplierRUT),
		}
		err = repo.Create(rc)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// Inserción concurrente: releer; si la otra tx ya lo dejó visible lo
		// reutilizamos, si no probamos la siguiente clave sufijada.
		if existing, err := repo.GetByValue(value); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("código de lectura %s: sin clave libre tras %d intentos", base, maxFingerprintAttempts)
}
