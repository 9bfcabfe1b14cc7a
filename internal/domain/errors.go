package domain

import "errors"

// Errores de dominio (sin dependencias externas). Son los discriminantes
// estables del sistema: los handlers y la UI comparan con errors.Is, nunca
// contra el texto del mensaje.
var (
	ErrEmptyCode         = errors.New("código vacío")
	ErrUnauthenticated   = errors.New("usuario no autenticado")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnrecognizedCode  = errors.New("código de rastreo no reconocido")
	ErrMovementNotFound  = errors.New("movimiento no encontrado")
	ErrKitAliasConflict  = errors.New("alias de kit en conflicto con otro SKU")

	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
