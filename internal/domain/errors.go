package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrSesionExpirada   = errors.New("sesión expirada")
	ErrPromptAbierto    = errors.New("ya hay una operación en curso")
	ErrUsuarioInmutable = errors.New("el usuario CHESS no puede modificarse")
	ErrRangoFechas      = errors.New("rango de fechas inválido")
)
