package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error es la forma canónica de toda falla del backend. Cualquier respuesta
// con status >= 400 se normaliza acá; el resto del sistema nunca inspecciona
// cuerpos de error crudos.
type Error struct {
	Status  int    // status HTTP de la respuesta
	Code    string // código estructurado si el backend lo envía
	Message string // mensaje más específico disponible: error > message
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %d", e.Status)
}

// cuerpoError son los campos de error que el backend puede incluir.
type cuerpoError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// normalizar construye el Error canónico desde una respuesta fallida.
// Precedencia de mensaje: campo estructurado "error", luego "message", luego
// vacío (el caller aplica su fallback genérico con Mensaje).
func normalizar(status int, body []byte) *Error {
	var c cuerpoError
	_ = json.Unmarshal(body, &c) // cuerpo no-JSON => mensaje vacío

	msg := c.Error
	if msg == "" {
		msg = c.Message
	}
	return &Error{Status: status, Code: c.Code, Message: msg}
}

// Mensaje devuelve el mensaje del error del backend, o fallback si el backend
// no mandó nada usable. Es el único lugar donde vive la precedencia de
// mensajes.
func Mensaje(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}

// EsNoAutorizado indica si el error es un 401 del backend (sesión o PIN
// inválidos).
func EsNoAutorizado(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Status == http.StatusUnauthorized
}

// EsTransitorio indica si conviene tratar el error como red/infra pasajera
// (se sigue poleando, se muestra mensaje genérico reintentable).
func EsTransitorio(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Status >= http.StatusInternalServerError
	}
	// errores de transporte (timeout, conexión rechazada)
	return err != nil
}
