package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const AVATAR_SIZE = 64

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	AuthLocal    = "local"
	AuthFirebase = "firebase"

	MediaLocal = "local"
	MediaGCS   = "gcs"
	MediaMinio = "minio"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Port         string
	GinMode      string
	FEOrigins    []string
	PerPage      int
	GroupRefresh time.Duration
	DB           DBConfig
	Auth         AuthConfig
	Media        MediaConfig
	Cache        CacheConfig
	Log          LogConfig
}

type DBConfig struct {
	Driver     string
	User       string
	Pass       string
	Host       string
	Name       string
	TLS        bool
	SQLitePath string
	MaxConns   int
}

// DriverName is the database/sql driver registered for Driver
func (dc *DBConfig) DriverName() string {
	if dc.Driver == DriverSQLite {
		return "sqlite3"
	}
	return "mysql"
}

func (dc *DBConfig) DSN() string {
	if dc.Driver == DriverSQLite {
		return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dc.SQLitePath)
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=%v&parseTime=true&multiStatements=true",
		dc.User, dc.Pass, dc.Host, dc.Name, dc.TLS)
}

func (dc *DBConfig) Validate() error {
	switch dc.Driver {
	case DriverMySQL:
		if dc.User == "" {
			return errors.New("DB_USER must be set for the mysql driver")
		}
	case DriverSQLite:
		if dc.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be set for the sqlite driver")
		}
	default:
		return errors.Errorf("unknown DB_DRIVER %q", dc.Driver)
	}
	return nil
}

type AuthConfig struct {
	Provider     string
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
}

type MediaConfig struct {
	Backend   string
	Root      string
	URL       string
	GCSBucket string
	Minio     MinioConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CacheConfig struct {
	Backend   string
	TTL       time.Duration
	RedisAddr string
	RedisPass string
	RedisDB   int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (when present) and the process environment
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}
	return FromEnv(os.Getenv)
}

// LoadDB reads only what tools that never serve pages need
func LoadDB() (*DBConfig, *LogConfig, error) {
	if err := loadDotenv(); err != nil {
		return nil, nil, err
	}
	return DBFromEnv(os.Getenv)
}

func DBFromEnv(getenv func(string) string) (*DBConfig, *LogConfig, error) {
	env := envReader{getenv: getenv}
	dbConfig, logConfig := env.db(), env.log()
	if env.err != nil {
		return nil, nil, env.err
	}
	if err := dbConfig.Validate(); err != nil {
		return nil, nil, err
	}
	return &dbConfig, &logConfig, nil
}

func loadDotenv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "loading .env")
	}
	return nil
}

// FromEnv builds the configuration from a lookup func, filling in defaults
func FromEnv(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}
	cfg := &Config{
		Port:         env.str("PORT", "8080"),
		GinMode:      env.str("GIN_MODE", ""),
		FEOrigins:    env.list("FE_ORIGINS"),
		PerPage:      env.int("PER_PAGE", 10),
		GroupRefresh: env.duration("GROUP_REFRESH", 20*time.Minute),
		DB:           env.db(),
		Auth: AuthConfig{
			Provider:     env.str("AUTH_PROVIDER", AuthLocal),
			JWTSecret:    env.str("JWT_SECRET", ""),
			SessionTTL:   env.duration("SESSION_TTL", 14*24*time.Hour),
			CookieSecure: env.bool("COOKIE_SECURE", false),
		},
		Media: MediaConfig{
			Backend:   env.str("MEDIA_BACKEND", MediaLocal),
			Root:      env.str("MEDIA_ROOT", "media"),
			URL:       env.str("MEDIA_URL", "/media/"),
			GCSBucket: env.str("GCS_BUCKET", ""),
			Minio: MinioConfig{
				Endpoint:  env.str("MINIO_ENDPOINT", ""),
				AccessKey: env.str("MINIO_ACCESS_KEY", ""),
				SecretKey: env.str("MINIO_SECRET_KEY", ""),
				Bucket:    env.str("MINIO_BUCKET", "yatube"),
				UseSSL:    env.bool("MINIO_USE_SSL", false),
			},
		},
		Cache: CacheConfig{
			Backend:   env.str("CACHE_BACKEND", CacheMemory),
			TTL:       env.duration("CACHE_TTL", 20*time.Second),
			RedisAddr: env.str("REDIS_ADDR", "localhost:6379"),
			RedisPass: env.str("REDIS_PASSWORD", ""),
			RedisDB:   env.int("REDIS_DB", 0),
		},
		Log: env.log(),
	}
	if env.err != nil {
		return nil, env.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.PerPage < 1 {
		return errors.Errorf("PER_PAGE must be positive, got %d", cfg.PerPage)
	}
	if err := cfg.DB.Validate(); err != nil {
		return err
	}
	switch cfg.Auth.Provider {
	case AuthLocal:
		if len(cfg.Auth.JWTSecret) < 16 {
			return errors.New("JWT_SECRET must be at least 16 characters for the local auth provider")
		}
	case AuthFirebase:
	default:
		return errors.Errorf("unknown AUTH_PROVIDER %q", cfg.Auth.Provider)
	}
	switch cfg.Media.Backend {
	case MediaLocal:
	case MediaGCS:
		if cfg.Media.GCSBucket == "" {
			return errors.New("GCS_BUCKET must be set for the gcs media backend")
		}
	case MediaMinio:
		if cfg.Media.Minio.Endpoint == "" {
			return errors.New("MINIO_ENDPOINT must be set for the minio media backend")
		}
	default:
		return errors.Errorf("unknown MEDIA_BACKEND %q", cfg.Media.Backend)
	}
	switch cfg.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return errors.Errorf("unknown CACHE_BACKEND %q", cfg.Cache.Backend)
	}
	return nil
}

// NeedsFirebase reports whether any configured component talks to firebase
func (cfg *Config) NeedsFirebase() bool {
	return cfg.Auth.Provider == AuthFirebase || cfg.Media.Backend == MediaGCS
}

type envReader struct {
	getenv func(string) string
	err    error
}

func (er *envReader) db() DBConfig {
	return DBConfig{
		Driver:     er.str("DB_DRIVER", DriverSQLite),
		User:       er.str("DB_USER", ""),
		Pass:       er.str("DB_PASS", ""),
		Host:       er.str("DB_HOST", "localhost:3306"),
		Name:       er.str("DB_NAME", "yatube"),
		TLS:        er.bool("DB_TLS", false),
		SQLitePath: er.str("SQLITE_PATH", "yatube.db"),
		MaxConns:   er.int("DB_MAX_CONNS", 50),
	}
}

func (er *envReader) log() LogConfig {
	return LogConfig{
		Level:  er.str("LOG_LEVEL", "info"),
		Format: er.str("LOG_FORMAT", "text"),
	}
}

func (er *envReader) str(key, def string) string {
	if val := strings.TrimSpace(er.getenv(key)); val != "" {
		return val
	}
	return def
}

func (er *envReader) list(key string) []string {
	var items []string
	for _, item := range strings.Split(er.getenv(key), ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (er *envReader) int(key string, def int) int {
	raw := er.str(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		er.fail(key, err)
		return def
	}
	return val
}

func (er *envReader) bool(key string, def bool) bool {
	raw := er.str(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		er.fail(key, err)
		return def
	}
	return val
}

func (er *envReader) duration(key string, def time.Duration) time.Duration {
	raw := er.str(key, "")
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		er.fail(key, err)
		return def
	}
	return val
}

func (er *envReader) fail(key string, err error) {
	if er.err == nil {
		er.err = errors.Wrapf(err, "parsing %v", key)
	}
}
