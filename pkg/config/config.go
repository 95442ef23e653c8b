package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig configuración del backend REST de La Montevideana.
type BackendConfig struct {
	BaseURL        string        // ej. https://api.lamontevideana.com.uy
	Timeout        time.Duration // timeout por petición
	PollInterval   time.Duration // intervalo de refresco de los tableros
	RequestRetries int           // reintentos para errores transitorios de red
}

// RedisConfig configuración del store de sesiones y preferencias.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig configuración de la cookie de sesión del gateway.
type SessionConfig struct {
	Secret     string // secreto HMAC para firmar la cookie JWT
	Issuer     string
	TTLMinutes int // vigencia de la sesión en minutos
	CookieName string
}

// TTL devuelve la vigencia de la sesión como duración.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, BACKEND_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "sistema-pedidos"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Backend: BackendConfig{
			BaseURL:        getString(v, "BACKEND_BASE_URL", "http://localhost:3000"),
			Timeout:        time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
			PollInterval:   time.Duration(getInt(v, "BACKEND_POLL_SECONDS", 5)) * time.Second,
			RequestRetries: getInt(v, "BACKEND_RETRIES", 0),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SESSION_SECRET", ""),
			Issuer:     getString(v, "SESSION_ISSUER", "sistema-pedidos"),
			TTLMinutes: getInt(v, "SESSION_TTL_MINUTES", 480),
			CookieName: getString(v, "SESSION_COOKIE", "lm_session"),
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: BACKEND_BASE_URL es requerido")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
