package entity

import "time"

// Sectores válidos para Usuario. CAMARA, EXPEDICION y TELEVISOR existen solo
// en el backend: no tienen pantallas asignadas en este sistema.
const (
	SectorAdmin       = "ADMIN"
	SectorChess       = "CHESS" // equivalente a admin para permisos; su usuario es inmutable
	SectorArmado      = "ARMADO"
	SectorFacturacion = "FACTURACION"
	SectorCamara      = "CAMARA"
	SectorExpedicion  = "EXPEDICION"
	SectorTelevisor   = "TELEVISOR"
)

// Usuario representa un operador del sistema.
type Usuario struct {
	ID        string
	Username  string
	Nombre    string
	Sector    string // ADMIN, CHESS, ARMADO, FACTURACION, ...
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
