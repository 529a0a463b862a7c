package ingest_test

// Repositorios en memoria para probar la ingesta sin base de datos. Imitan el
// contrato de los repositorios Postgres: los Get devuelven (nil, nil) cuando
// no hay fila y Create devuelve domain.ErrDuplicate ante claves repetidas.

import (
	"context"
	"sort"

	"github.com/factorg/factorg-api/internal/application/ingest"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type memStore struct {
	suppliers    []*entity.Supplier
	invoices     []*entity.Invoice
	lines        []*entity.InvoiceLine
	products     []*entity.Product
	readingCodes []*entity.ReadingCode
	adminCodes   []*entity.AdminCode
	businesses   []*entity.Business

	// folios cuya inserción simula perder una carrera: otra ingesta creó la
	// misma factura entre el chequeo de duplicado y el insert.
	raceFolios map[string]bool
}

func newMemStore() *memStore { return &memStore{raceFolios: map[string]bool{}} }

func (s *memStore) repos() ingest.Repos {
	return ingest.Repos{
		Suppliers:    &memSuppliers{s},
		Invoices:     &memInvoices{s},
		Products:     &memProducts{s},
		ReadingCodes: &memReadingCodes{s},
		AdminCodes:   &memAdminCodes{s},
		Businesses:   &memBusinesses{s},
	}
}

// memTxRunner ejecuta fn directamente: los tests no necesitan atomicidad real.
type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(ingest.Repos) error) error {
	return fn(r.store.repos())
}

// ── Suppliers ────────────────────────────────────────────────────────────────

type memSuppliers struct{ s *memStore }

var _ repository.SupplierRepository = (*memSuppliers)(nil)

func (m *memSuppliers) GetByRUT(rut string) (*entity.Supplier, error) {
	for _, s := range m.s.suppliers {
		if s.RUT == rut {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSuppliers) Create(s *entity.Supplier) error {
	m.s.suppliers = append(m.s.suppliers, s)
	return nil
}

func (m *memSuppliers) List() ([]*entity.Supplier, error) { return m.s.suppliers, nil }

// ── Invoices ─────────────────────────────────────────────────────────────────

type memInvoices struct{ s *memStore }

var _ repository.InvoiceRepository = (*memInvoices)(nil)

func (m *memInvoices) Create(inv *entity.Invoice) error {
	if m.s.raceFolios[inv.Folio] {
		delete(m.s.raceFolios, inv.Folio)
		return domain.ErrDuplicate
	}
	for _, e := range m.s.invoices {
		if e.SupplierID == inv.SupplierID && e.Folio == inv.Folio {
			return domain.ErrDuplicate
		}
	}
	m.s.invoices = append(m.s.invoices, inv)
	return nil
}

func (m *memInvoices) GetByID(id string) (*entity.Invoice, error) {
	for _, e := range m.s.invoices {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) GetBySupplierAndFolio(supplierID, folio string) (*entity.Invoice, error) {
	for _, e := range m.s.invoices {
		if e.SupplierID == supplierID && e.Folio == folio {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) List() ([]*entity.Invoice, error) { return m.s.invoices, nil }

func (m *memInvoices) SearchBySupplierRUT(string) ([]*entity.Invoice, error) { return nil, nil }

func (m *memInvoices) AssignBusiness(invoiceID, businessID string) error {
	inv, _ := m.GetByID(invoiceID)
	if inv == nil {
		return domain.ErrNotFound
	}
	inv.BusinessID = &businessID
	return nil
}

func (m *memInvoices) Delete(id string) error {
	for i, e := range m.s.invoices {
		if e.ID == id {
			m.s.invoices = append(m.s.invoices[:i], m.s.invoices[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memInvoices) CreateLine(line *entity.InvoiceLine) error {
	m.s.lines = append(m.s.lines, line)
	return nil
}

func (m *memInvoices) UpdateLine(line *entity.InvoiceLine) error {
	for i, l := range m.s.lines {
		if l.ID == line.ID {
			m.s.lines[i] = line
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memInvoices) LinesByProduct(productID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for _, l := range m.s.lines {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memInvoices) LatestLineByProduct(productID string) (*entity.InvoiceLine, error) {
	lines, _ := m.LinesByProduct(productID)
	if len(lines) == 0 {
		return nil, nil
	}
	sort.SliceStable(lines, func(i, j int) bool {
		invI, _ := m.GetByID(lines[i].InvoiceID)
		invJ, _ := m.GetByID(lines[j].InvoiceID)
		if invI != nil && invJ != nil && !invI.IssueDate.Equal(invJ.IssueDate) {
			return invI.IssueDate.After(invJ.IssueDate)
		}
		return lines[i].CreatedAt.After(lines[j].CreatedAt)
	})
	return lines[0], nil
}

func (m *memInvoices) InvoiceByLine(lineID string) (*entity.Invoice, error) {
	for _, l := range m.s.lines {
		if l.ID == lineID {
			return m.GetByID(l.InvoiceID)
		}
	}
	return nil, nil
}

// ── Products ─────────────────────────────────────────────────────────────────

type memProducts struct{ s *memStore }

var _ repository.ProductRepository = (*memProducts)(nil)

func (m *memProducts) Create(p *entity.Product) error {
	m.s.products = append(m.s.products, p)
	return nil
}

func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	for _, p := range m.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(p *entity.Product) error {
	for i, e := range m.s.products {
		if e.ID == p.ID {
			m.s.products[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memProducts) SiblingsByReadingCode(readingCodeID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.s.products {
		if p.ReadingCodeID != nil && *p.ReadingCodeID == readingCodeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) LatestClassifiedByCodeAndSupplier(code, supplierID string) (*entity.Product, error) {
	var latest *entity.Product
	for _, p := range m.s.products {
		if p.SupplierID != supplierID || p.AdminCodeID == nil || p.Code == nil || *p.Code != code {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	return latest, nil
}

func (m *memProducts) SetAdminCode(productID string, adminCodeID *string) error {
	p, _ := m.GetByID(productID)
	if p == nil {
		return domain.ErrNotFound
	}
	p.AdminCodeID = adminCodeID
	return nil
}

func (m *memProducts) SetCategory(productID, categoryID string) error {
	p, _ := m.GetByID(productID)
	if p == nil {
		return domain.ErrNotFound
	}
	p.CategoryID = &categoryID
	return nil
}

func (m *memProducts) ByAdminCode(adminCodeID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.s.products {
		if p.AdminCodeID != nil && *p.AdminCodeID == adminCodeID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── ReadingCodes ─────────────────────────────────────────────────────────────

type memReadingCodes struct{ s *memStore }

var _ repository.ReadingCodeRepository = (*memReadingCodes)(nil)

func (m *memReadingCodes) GetByValue(value string) (*entity.ReadingCode, error) {
	for _, rc := range m.s.readingCodes {
		if rc.Value == value {
			return rc, nil
		}
	}
	return nil, nil
}

func (m *memReadingCodes) Create(rc *entity.ReadingCode) error {
	for _, e := range m.s.readingCodes {
		if e.Value == rc.Value {
			return domain.ErrDuplicate
		}
	}
	m.s.readingCodes = append(m.s.readingCodes, rc)
	return nil
}

func (m *memReadingCodes) SetAdminCode(id string, adminCodeID *string) error {
	for _, rc := range m.s.readingCodes {
		if rc.ID == id {
			rc.AdminCodeID = adminCodeID
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── AdminCodes ───────────────────────────────────────────────────────────────

type memAdminCodes struct{ s *memStore }

var _ repository.AdminCodeRepository = (*memAdminCodes)(nil)

func (m *memAdminCodes) GetByID(id string) (*entity.AdminCode, error) {
	for _, ac := range m.s.adminCodes {
		if ac.ID == id {
			return ac, nil
		}
	}
	return nil, nil
}

func (m *memAdminCodes) List() ([]*entity.AdminCode, error) { return m.s.adminCodes, nil }

func (m *memAdminCodes) Create(ac *entity.AdminCode) error {
	m.s.adminCodes = append(m.s.adminCodes, ac)
	return nil
}

func (m *memAdminCodes) Update(ac *entity.AdminCode) error {
	for i, e := range m.s.adminCodes {
		if e.ID == ac.ID {
			m.s.adminCodes[i] = ac
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memAdminCodes) UpdatePercentage(id string, pct decimal.Decimal) error {
	ac, _ := m.GetByID(id)
	if ac == nil {
		return domain.ErrNotFound
	}
	ac.Percentage = pct
	return nil
}

// ── Businesses ───────────────────────────────────────────────────────────────

type memBusinesses struct{ s *memStore }

var _ repository.BusinessRepository = (*memBusinesses)(nil)

func (m *memBusinesses) GetByID(id string) (*entity.Business, error) {
	for _, b := range m.s.businesses {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBusinesses) GetByReceiverRUT(rut string) (*entity.Business, error) {
	for _, b := range m.s.businesses {
		if b.ReceiverRUT != nil && *b.ReceiverRUT == rut {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBusinesses) List() ([]*entity.Business, error) { return m.s.businesses, nil }

func (m *memBusinesses) Create(b *entity.Business) error {
	m.s.businesses = append(m.s.businesses, b)
	return nil
}

func (m *memBusinesses) Update(b *entity.Business) error {
	for i, e := range m.s.businesses {
		if e.ID == b.ID {
			m.s.businesses[i] = b
			return nil
		}
	}
	return domain.ErrNotFound
}
