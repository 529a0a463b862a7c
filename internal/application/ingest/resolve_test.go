package ingest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/normalize"
)

// racedReadingCodes guioniza una carrera de inserción concurrente: Create
// pierde contra "otra transacción" que deja la fila visible para la lectura
// siguiente, sin que el error sea fatal para las operaciones posteriores
// (mismo contrato que el INSERT … ON CONFLICT DO NOTHING del repositorio).
type racedReadingCodes struct {
	rows     map[string]*entity.ReadingCode
	loseOnce map[string]bool // valores cuya primera inserción pierde la carrera
	ghost    bool            // la fila ganadora nunca se vuelve visible
}

func (r *racedReadingCodes) GetByValue(value string) (*entity.ReadingCode, error) {
	return r.rows[value], nil
}

func (r *racedReadingCodes) Create(rc *entity.ReadingCode) error {
	if r.loseOnce[rc.Value] {
		delete(r.loseOnce, rc.Value)
		if !r.ghost {
			r.rows[rc.Value] = &entity.ReadingCode{
				ID:          "ganador-" + rc.Value,
				Value:       rc.Value,
				NameKey:     rc.NameKey,
				OriginCode:  rc.OriginCode,
				SupplierRUT: rc.SupplierRUT,
			}
		}
		return fmt.Errorf("crear código de lectura: %w", domain.ErrDuplicate)
	}
	r.rows[rc.Value] = rc
	return nil
}

func TestResolveReadingCode_CarreraReutilizaLaHuella(t *testing.T) {
	base := normalize.Fingerprint("76.543.210-5", "Harina Especial Premium", "HAR-001")
	repo := &racedReadingCodes{
		rows:     map[string]*entity.ReadingCode{},
		loseOnce: map[string]bool{base: true},
	}

	rc, err := resolveReadingCode(repo, "76.543.210-5", "Harina Especial Premium", "HAR-001")
	require.NoError(t, err, "la carrera de inserción nunca llega al llamador")
	require.NotNil(t, rc)

	// Se reutiliza la fila de la transacción ganadora, sin clave sufijada.
	assert.Equal(t, "ganador-"+base, rc.ID)
	assert.Equal(t, base, rc.Value)
	assert.Len(t, repo.rows, 1, "no debe quedar una huella sufijada de más")
}

func TestResolveReadingCode_CarreraSinVisibilidad_Sufija(t *testing.T) {
	base := normalize.Fingerprint("76.543.210-5", "Harina Especial Premium", "HAR-001")
	repo := &racedReadingCodes{
		rows:     map[string]*entity.ReadingCode{},
		loseOnce: map[string]bool{base: true},
		ghost:    true,
	}

	rc, err := resolveReadingCode(repo, "76.543.210-5", "Harina Especial Premium", "HAR-001")
	require.NoError(t, err)
	require.NotNil(t, rc)

	// El valor base sigue ocupado pero invisible: se pasa a la clave -01.
	assert.Equal(t, base+"-01", rc.Value)
}
