package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidXML       = errors.New("XML mal formado")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrNoClassification = errors.New("el producto no tiene código admin asignado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrEmailExists      = errors.New("el email ya está registrado")
)
