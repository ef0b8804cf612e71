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
	SMTP          SMTPConfig
	Generator     GeneratorConfig
	Notifications NotificationsConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"TECHSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"TECHSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TECHSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECHSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TECHSTORE_DB_DSN"`
	Driver string `envconfig:"TECHSTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TECHSTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"TECHSTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TECHSTORE_DB_USER"`
	LegacyPassword string `envconfig:"TECHSTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TECHSTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TECHSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TECHSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TECHSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TECHSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TECHSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TECHSTORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TECHSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"TECHSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECHSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECHSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TECHSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TECHSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECHSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECHSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SMTPConfig struct {
	Host     string `envconfig:"TECHSTORE_SMTP_HOST"`
	Port     int    `envconfig:"TECHSTORE_SMTP_PORT" default:"587"`
	Username string `envconfig:"TECHSTORE_SMTP_USERNAME"`
	Password string `envconfig:"TECHSTORE_SMTP_PASSWORD"`
	From     string `envconfig:"TECHSTORE_SMTP_FROM"`
}

// Addr returns the host:port pair the SMTP dialer expects.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Enabled reports whether outbound mail is configured at all.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// GeneratorConfig fixes the shard tags baked into every minted identifier.
type GeneratorConfig struct {
	DatacenterID uint8 `envconfig:"TECHSTORE_GENERATOR_DATACENTER_ID" default:"1"`
	WorkerID     uint8 `envconfig:"TECHSTORE_GENERATOR_WORKER_ID" default:"1"`
}

type NotificationsConfig struct {
	QueueSize int `envconfig:"TECHSTORE_NOTIFICATIONS_QUEUE_SIZE" default:"64"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TECHSTORE_AUTO_MIGRATE" default:"false"`
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
