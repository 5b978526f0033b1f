package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del servicio (Viper: variables de entorno y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	WMS     WMSConfig
	Metrics MetricsConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Store    string // postgres | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// ConnectionString devuelve DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string con URL encoding para caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
	Docs bool // publica Swagger UI en /docs
}

// Addr dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WMSConfig parámetros operativos del almacén.
type WMSConfig struct {
	StagingLocationCode  string
	AllocateAllOrNothing bool   // modo por defecto de la asignación directa a pedidos
	NotifyBuffer         int    // capacidad de la cola de notificaciones post-commit
	SeedFile             string // catálogo XML que se carga al arrancar con STORE=memory
}

// MetricsConfig exposición de métricas Prometheus.
type MetricsConfig struct {
	Enabled bool
}

// Store válidos.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Load lee la configuración. Las variables de entorno tienen prioridad sobre el archivo.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-wms"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Store:    strings.ToLower(getString(v, "STORE", StorePostgres)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_wms"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
			Docs: getBool(v, "HTTP_DOCS_ENABLED", true),
		},
		WMS: WMSConfig{
			StagingLocationCode:  getString(v, "WMS_STAGING_LOCATION_CODE", "STAGING"),
			AllocateAllOrNothing: getBool(v, "WMS_ALLOCATE_ALL_OR_NOTHING", false),
			NotifyBuffer:         getInt(v, "NOTIFY_BUFFER", 256),
			SeedFile:             getString(v, "WMS_SEED_FILE", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones que impedirían arrancar.
func (c *Config) Validate() error {
	switch c.App.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("STORE inválido %q (postgres | memory)", c.App.Store)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if strings.TrimSpace(c.WMS.StagingLocationCode) == "" {
		return fmt.Errorf("WMS_STAGING_LOCATION_CODE no puede estar vacío")
	}
	if c.WMS.NotifyBuffer <= 0 {
		return fmt.Errorf("NOTIFY_BUFFER debe ser mayor que cero")
	}
	if c.WMS.SeedFile != "" && c.App.Store != StoreMemory {
		return fmt.Errorf("WMS_SEED_FILE solo aplica con STORE=memory; para PostgreSQL use cmd/seed_catalog")
	}
	return nil
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
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
