package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + usuario.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"usuario"`
}

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email      string  `json:"email"`
	Username   string  `json:"nombre"`
	Password   string  `json:"password"`
	Role       string  `json:"rol"`
	BusinessID *string `json:"negocio_id"`
}

// UserView usuario en respuestas (sin hash).
type UserView struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Username      string  `json:"nombre"`
	Role          string  `json:"rol"`
	BusinessID    *string `json:"negocio_id"`
	CanDashboard  bool    `json:"puede_ver_dashboard"`
	CanUploadXML  bool    `json:"puede_subir_xml"`
	CanViewTables bool    `json:"puede_ver_tablas"`
	Active        bool    `json:"activo"`
}

// UserPatchRequest edición parcial de un usuario (solo campos permitidos).
type UserPatchRequest struct {
	Username      *string `json:"nombre"`
	Role          *string `json:"rol"`
	BusinessID    *string `json:"negocio_id"`
	CanDashboard  *bool   `json:"puede_ver_dashboard"`
	CanUploadXML  *bool   `json:"puede_subir_xml"`
	CanViewTables *bool   `json:"puede_ver_tablas"`
	Active        *bool   `json:"activo"`
}
