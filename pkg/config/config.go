package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Catalog       CatalogConfig
	Admin         AdminConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Admin.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWEETSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SWEETSHOP_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"SWEETSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWEETSHOP_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"SWEETSHOP_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWEETSHOP_DB_DSN"`
	Driver string `envconfig:"SWEETSHOP_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SWEETSHOP_DB_HOST"`
	Port     int    `envconfig:"SWEETSHOP_DB_PORT" default:"5432"`
	User     string `envconfig:"SWEETSHOP_DB_USER"`
	Password string `envconfig:"SWEETSHOP_DB_PASSWORD"`
	Name     string `envconfig:"SWEETSHOP_DB_NAME"`
	SSLMode  string `envconfig:"SWEETSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SWEETSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWEETSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWEETSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWEETSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	Enabled      bool          `envconfig:"SWEETSHOP_REDIS_ENABLED" default:"true"`
	URL          string        `envconfig:"SWEETSHOP_REDIS_URL"`
	Address      string        `envconfig:"SWEETSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SWEETSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWEETSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWEETSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWEETSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWEETSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWEETSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWEETSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SWEETSHOP_SECRET_KEY" required:"true"`
	Issuer            string `envconfig:"SWEETSHOP_JWT_ISSUER" default:"sweetshop"`
	ExpirationMinutes int    `envconfig:"SWEETSHOP_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SWEETSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SWEETSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SWEETSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SWEETSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SWEETSHOP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SWEETSHOP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"SWEETSHOP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	LoginUserLimit  int           `envconfig:"SWEETSHOP_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	RegisterWindow  time.Duration `envconfig:"SWEETSHOP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIPLimit int           `envconfig:"SWEETSHOP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SWEETSHOP_AUTO_MIGRATE" default:"false"`
	Metrics     bool `envconfig:"SWEETSHOP_METRICS_ENABLED" default:"true"`
}

// AdminConfig seeds an admin account at boot when Username is set.
type AdminConfig struct {
	Username string `envconfig:"SWEETSHOP_ADMIN_USERNAME"`
	Email    string `envconfig:"SWEETSHOP_ADMIN_EMAIL"`
	Password string `envconfig:"SWEETSHOP_ADMIN_PASSWORD"`
}

// Enabled reports whether a seed admin is configured.
func (a AdminConfig) Enabled() bool {
	return strings.TrimSpace(a.Username) != ""
}

func (a AdminConfig) validate() error {
	if !a.Enabled() {
		return nil
	}
	if strings.TrimSpace(a.Email) == "" || a.Password == "" {
		return fmt.Errorf("SWEETSHOP_ADMIN_EMAIL and SWEETSHOP_ADMIN_PASSWORD are required with SWEETSHOP_ADMIN_USERNAME")
	}
	return nil
}

// CatalogConfig selects and tunes the data source behind the catalog pipeline.
type CatalogConfig struct {
	Source         string        `envconfig:"SWEETSHOP_CATALOG_SOURCE" default:"db"`
	RemoteBaseURL  string        `envconfig:"SWEETSHOP_CATALOG_REMOTE_BASE_URL"`
	RemoteToken    string        `envconfig:"SWEETSHOP_CATALOG_REMOTE_TOKEN"`
	RemoteTimeout  time.Duration `envconfig:"SWEETSHOP_CATALOG_REMOTE_TIMEOUT" default:"10s"`
	MockLatency    time.Duration `envconfig:"SWEETSHOP_CATALOG_MOCK_LATENCY" default:"300ms"`
	MockGetLatency time.Duration `envconfig:"SWEETSHOP_CATALOG_MOCK_GET_LATENCY" default:"200ms"`
}

// SourceKind returns the normalized source name.
func (c CatalogConfig) SourceKind() string {
	kind := strings.ToLower(strings.TrimSpace(c.Source))
	if kind == "" {
		return CatalogSourceDB
	}
	return kind
}

func (c CatalogConfig) validate() error {
	switch c.SourceKind() {
	case CatalogSourceDB, CatalogSourceMemory:
		return nil
	case CatalogSourceRemote:
		if strings.TrimSpace(c.RemoteBaseURL) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvCatalogRemoteBaseURL, EnvCatalogSource, CatalogSourceRemote)
		}
		return nil
	default:
		return fmt.Errorf("unsupported catalog source %q", c.Source)
	}
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:sweets.db?cache=shared"
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range splitDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
