package costing_test

// Fakes en memoria del subconjunto de repositorios que usa el motor de
// propagación. Mismo contrato que Postgres: (nil, nil) cuando no hay fila.

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/factorg/factorg-api/internal/application/costing"
	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

type memStore struct {
	products     map[string]*entity.Product
	invoices     map[string]*entity.Invoice
	lines        map[string]*entity.InvoiceLine
	readingCodes map[string]*entity.ReadingCode
	adminCodes   map[string]*entity.AdminCode
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[string]*entity.Product{},
		invoices:     map[string]*entity.Invoice{},
		lines:        map[string]*entity.InvoiceLine{},
		readingCodes: map[string]*entity.ReadingCode{},
		adminCodes:   map[string]*entity.AdminCode{},
	}
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(costing.Repos) error) error {
	s := r.store
	return fn(costing.Repos{
		Products:     &memProducts{s},
		Invoices:     &memInvoices{s},
		ReadingCodes: &memReadingCodes{s},
		AdminCodes:   &memAdminCodes{s},
	})
}

// ── Products ─────────────────────────────────────────────────────────────────

type memProducts struct{ s *memStore }

var _ repository.ProductRepository = (*memProducts)(nil)

func (m *memProducts) Create(p *entity.Product) error { m.s.products[p.ID] = p; return nil }

func (m *memProducts) GetByID(id string) (*entity.Product, error) { return m.s.products[id], nil }

func (m *memProducts) Update(p *entity.Product) error { m.s.products[p.ID] = p; return nil }

func (m *memProducts) SiblingsByReadingCode(rcID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.s.products {
		if p.ReadingCodeID != nil && *p.ReadingCodeID == rcID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) LatestClassifiedByCodeAndSupplier(string, string) (*entity.Product, error) {
	return nil, nil
}

func (m *memProducts) SetAdminCode(id string, acID *string) error {
	p := m.s.products[id]
	if p == nil {
		return domain.ErrNotFound
	}
	p.AdminCodeID = acID
	return nil
}

func (m *memProducts) SetCategory(id, catID string) error {
	p := m.s.products[id]
	if p == nil {
		return domain.ErrNotFound
	}
	p.CategoryID = &catID
	return nil
}

func (m *memProducts) ByAdminCode(acID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.s.products {
		if p.AdminCodeID != nil && *p.AdminCodeID == acID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── Invoices ─────────────────────────────────────────────────────────────────

type memInvoices struct{ s *memStore }

var _ repository.InvoiceRepository = (*memInvoices)(nil)

func (m *memInvoices) Create(inv *entity.Invoice) error { m.s.invoices[inv.ID] = inv; return nil }

func (m *memInvoices) GetByID(id string) (*entity.Invoice, error) { return m.s.invoices[id], nil }

func (m *memInvoices) GetBySupplierAndFolio(string, string) (*entity.Invoice, error) {
	return nil, nil
}

func (m *memInvoices) List() ([]*entity.Invoice, error) { return nil, nil }

func (m *memInvoices) SearchBySupplierRUT(string) ([]*entity.Invoice, error) { return nil, nil }

func (m *memInvoices) AssignBusiness(string, string) error { return nil }

func (m *memInvoices) Delete(string) error { return nil }

func (m *memInvoices) CreateLine(l *entity.InvoiceLine) error { m.s.lines[l.ID] = l; return nil }

func (m *memInvoices) UpdateLine(l *entity.InvoiceLine) error {
	if _, ok := m.s.lines[l.ID]; !ok {
		return domain.ErrNotFound
	}
	m.s.lines[l.ID] = l
	return nil
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
	var latest *entity.InvoiceLine
	for _, l := range lines {
		if latest == nil || l.CreatedAt.After(latest.CreatedAt) {
			latest = l
		}
	}
	return latest, nil
}

func (m *memInvoices) InvoiceByLine(lineID string) (*entity.Invoice, error) {
	l := m.s.lines[lineID]
	if l == nil {
		return nil, nil
	}
	return m.s.invoices[l.InvoiceID], nil
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
	m.s.readingCodes[rc.ID] = rc
	return nil
}

func (m *memReadingCodes) SetAdminCode(id string, acID *string) error {
	rc := m.s.readingCodes[id]
	if rc == nil {
		return domain.ErrNotFound
	}
	rc.AdminCodeID = acID
	return nil
}

// ── AdminCodes ───────────────────────────────────────────────────────────────

type memAdminCodes struct{ s *memStore }

var _ repository.AdminCodeRepository = (*memAdminCodes)(nil)

func (m *memAdminCodes) GetByID(id string) (*entity.AdminCode, error) {
	return m.s.adminCodes[id], nil
}

func (m *memAdminCodes) List() ([]*entity.AdminCode, error) { return nil, nil }

func (m *memAdminCodes) Create(ac *entity.AdminCode) error { m.s.adminCodes[ac.ID] = ac; return nil }

func (m *memAdminCodes) Update(ac *entity.AdminCode) error { m.s.adminCodes[ac.ID] = ac; return nil }

func (m *memAdminCodes) UpdatePercentage(id string, pct decimal.Decimal) error {
	ac := m.s.adminCodes[id]
	if ac == nil {
		return domain.ErrNotFound
	}
	ac.Percentage = pct
	return nil
}
