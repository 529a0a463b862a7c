package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/factorg/factorg-api/internal/domain"
	"github.com/factorg/factorg-api/internal/domain/entity"
	"github.com/factorg/factorg-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación Postgres del repositorio de usuarios.
type UserRepo struct {
	q Querier
}

// NewUserRepository crea el repositorio sobre un pool o una transacción.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, nombre_usuario, hash_clave, rol, negocio_id, puede_dashboard, puede_subir_xml, puede_ver_tablas, activo, creado_en`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.BusinessID,
		&u.CanDashboard, &u.CanUploadXML, &u.CanViewTables, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail busca por email en minúsculas.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE LOWER(email) = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario por email: %w", err)
	}
	return u, nil
}

// GetByID busca un usuario por id.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	return u, nil
}

// List devuelve todos los usuarios ordenados por fecha de creación.
func (r *UserRepo) List() ([]*entity.User, error) {
	ctx := context.Background()
	query := `SELECT ` + userColumns + ` FROM usuarios ORDER BY creado_en ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.BusinessID,
			&u.CanDashboard, &u.CanUploadXML, &u.CanViewTables, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear usuario: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Create inserta un usuario; devuelve ErrEmailExists si el email ya está usado.
func (r *UserRepo) Create(u *entity.User) error {
	ctx := context.Background()
	query := `INSERT INTO usuarios (id, email, nombre_usuario, hash_clave, rol, negocio_id, puede_dashboard, puede_subir_xml, puede_ver_tablas, activo, creado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING creado_en`
	err := r.q.QueryRow(ctx, query,
		u.ID, strings.ToLower(u.Email), u.Username, u.PasswordHash, u.Role, u.BusinessID,
		u.CanDashboard, u.CanUploadXML, u.CanViewTables, u.Active,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// Update persiste rol, negocio, permisos y estado del usuario.
func (r *UserRepo) Update(u *entity.User) error {
	ctx := context.Background()
	query := `UPDATE usuarios
		SET nombre_usuario = $1, rol = $2, negocio_id = $3, puede_dashboard = $4, puede_subir_xml = $5, puede_ver_tablas = $6, activo = $7
		WHERE id = $8`
	tag, err := r.q.Exec(ctx, query,
		u.Username, u.Role, u.BusinessID, u.CanDashboard, u.CanUploadXML, u.CanViewTables, u.Active, u.ID)
	if err != nil {
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
