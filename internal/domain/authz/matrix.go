// Package authz contiene la matriz de permisos sector→rutas y la ruta por
// defecto de cada sector. Es la única fuente de verdad de "qué puede ver
// quién": ningún otro componente re-deriva estas reglas.
package authz

import "github.com/lamontevideana/sistema-pedidos/internal/domain/entity"

// Rutas conocidas del sistema.
const (
	RutaTablero     = "/"
	RutaArmado      = "/armado"
	RutaFacturacion = "/facturacion"
	RutaUsuarios    = "/usuarios"
	RutaFleteros    = "/fleteros"
	RutaHistorial   = "/historial"
	RutaAnulados    = "/anulados"
)

// RoutePermission es una ruta junto a los sectores que pueden verla.
type RoutePermission struct {
	Path     string
	Sectores []string
}

// La tabla es fail-closed: una ruta que no figura acá se niega para todos,
// y un sector desconocido no tiene acceso a nada.
var tabla = []RoutePermission{
	{Path: RutaTablero, Sectores: []string{entity.SectorAdmin, entity.SectorChess}},
	{Path: RutaArmado, Sectores: []string{entity.SectorAdmin, entity.SectorChess, entity.SectorArmado}},
	{Path: RutaFacturacion, Sectores: []string{entity.SectorAdmin, entity.SectorChess, entity.SectorFacturacion}},
	{Path: RutaUsuarios, Sectores: []string{entity.SectorAdmin, entity.SectorChess}},
	{Path: RutaFleteros, Sectores: []string{entity.SectorAdmin, entity.SectorChess}},
	{Path: RutaHistorial, Sectores: []string{entity.SectorAdmin, entity.SectorChess}},
	{Path: RutaAnulados, Sectores: []string{entity.SectorAdmin, entity.SectorChess}},
}

// HasAccess indica si el sector puede ver la ruta. Rutas fuera de la tabla y
// sectores desconocidos se niegan siempre.
func HasAccess(sector, path string) bool {
	for _, rp := range tabla {
		if rp.Path != path {
			continue
		}
		for _, s := range rp.Sectores {
			if s == sector {
				return true
			}
		}
		return false
	}
	return false
}

// AccessibleRoutes devuelve las rutas que el sector puede ver, en el orden de
// la tabla.
func AccessibleRoutes(sector string) []RoutePermission {
	var out []RoutePermission
	for _, rp := range tabla {
		if HasAccess(sector, rp.Path) {
			out = append(out, rp)
		}
	}
	return out
}

// DefaultRouteForSector devuelve la ruta de aterrizaje tras el login.
// Los sectores de una sola pantalla van directo a ella; los administradores al
// tablero; un sector sin pantallas cae en el tablero (el guard de rutas lo
// rebotará a acceso denegado).
func DefaultRouteForSector(sector string) string {
	switch sector {
	case entity.SectorArmado:
		return RutaArmado
	case entity.SectorFacturacion:
		return RutaFacturacion
	default:
		return RutaTablero
	}
}
