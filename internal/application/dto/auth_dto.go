package dto

// LoginRequest entrada para login de operador.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida del login y de la rehidratación: el usuario, su ruta
// de aterrizaje y las rutas que su sector puede ver.
type LoginResponse struct {
	Usuario     UsuarioResponse `json:"usuario"`
	RutaInicial string          `json:"rutaInicial"`
	Rutas       []string        `json:"rutas"`
}

// TemaRequest preferencia de tema del operador.
type TemaRequest struct {
	Tema string `json:"tema" validate:"required,oneof=claro oscuro"`
}
