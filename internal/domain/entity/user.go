package entity

import "time"

// Roles de usuario.
const (
	RoleSuperadmin = "SUPERADMIN"
	RoleAdmin      = "ADMIN"
	RoleUsuario    = "USUARIO"
)

// User usuario del panel. Los no administradores quedan restringidos al
// negocio asignado (BusinessID) en los listados y reportes.
type User struct {
	ID            string
	Email         string
	Username      string
	PasswordHash  string
	Role          string
	BusinessID    *string
	CanDashboard  bool
	CanUploadXML  bool
	CanViewTables bool
	Active        bool
	CreatedAt     time.Time
}
