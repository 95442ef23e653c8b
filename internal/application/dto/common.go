package dto

// ErrorResponse cuerpo de error HTTP. Redirect le indica a la UI a dónde
// mandar al operador (login o acceso denegado).
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// Notificacion banner transitorio de éxito o error que muestra la UI.
type Notificacion struct {
	Exito   bool   `json:"exito"`
	Mensaje string `json:"mensaje"`
}
