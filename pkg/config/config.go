package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
	Orders       OrdersConfig
	Seed         SeedConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUNIO_APP_ENV" required:"true"`
	Port         string `envconfig:"LUNIO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUNIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUNIO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUNIO_DB_DSN"`
	Driver string `envconfig:"LUNIO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUNIO_DB_HOST"`
	LegacyPort     int    `envconfig:"LUNIO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUNIO_DB_USER"`
	LegacyPassword string `envconfig:"LUNIO_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUNIO_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUNIO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUNIO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUNIO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUNIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUNIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUNIO_REDIS_URL"`
	Address      string        `envconfig:"LUNIO_REDIS_ADDR"`
	Password     string        `envconfig:"LUNIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUNIO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUNIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUNIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUNIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUNIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUNIO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LUNIO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LUNIO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LUNIO_JWT_EXPIRATION_MINUTES" default:"60"`
}

// CartConfig tunes the cart engine persistence slot.
type CartConfig struct {
	SlotPrefix   string        `envconfig:"LUNIO_CART_SLOT_PREFIX" default:"cart"`
	SlotTTL      time.Duration `envconfig:"LUNIO_CART_SLOT_TTL" default:"0"`
	PersistAsync bool          `envconfig:"LUNIO_CART_PERSIST_ASYNC" default:"false"`
}

// OrdersConfig carries checkout pricing knobs as decimal strings.
type OrdersConfig struct {
	TaxRate      string `envconfig:"LUNIO_ORDERS_TAX_RATE" default:"0.18"`
	FlatShipping string `envconfig:"LUNIO_ORDERS_FLAT_SHIPPING" default:"49.00"`
}

type SeedConfig struct {
	AdminEmail    string `envconfig:"LUNIO_ADMIN_EMAIL" default:"admin@kyc.com"`
	AdminPassword string `envconfig:"LUNIO_ADMIN_PASSWORD" default:"admin123"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LUNIO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
