package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Backend driver names.
const (
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
	DriverGCS       = "gcs"
	DriverLocal     = "local"
	DriverFirebase  = "firebase"
	DriverJWT       = "jwt"
)

type Config struct {
	Env         string
	Port        int
	APIPrefix   string
	ServiceName string

	DocStore DocStoreConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Uploads  UploadConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
	Tracing  TracingConfig
}

// DocStoreConfig selects the document database backend.
type DocStoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// FirebaseConfig carries the service account used for Firestore, Storage and Auth.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

// StorageConfig selects the blob backend.
type StorageConfig struct {
	Driver          string
	Bucket          string
	LocalDir        string
	PublicBaseURL   string
	SignedURLSecret string
}

// AuthConfig selects the identity token verifier.
type AuthConfig struct {
	Driver       string
	JWTSecret    string
	CheckRevoked bool
}

// UploadConfig bounds multipart requests.
type UploadConfig struct {
	MaxFileSize int64
	MaxFiles    int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig toggles caching of public listings.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled  bool
	Exporter string
	Endpoint string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.ServiceName = v.GetString("SERVICE_NAME")

	cfg.DocStore = DocStoreConfig{Driver: strings.ToLower(v.GetString("DOCSTORE_DRIVER"))}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Firebase = FirebaseConfig{
		ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		CredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		// service account keys pasted into env vars usually carry escaped newlines
		CredentialsJSON: strings.ReplaceAll(v.GetString("FIREBASE_CREDENTIALS_JSON"), `\n`, "\n"),
	}

	cfg.Storage = StorageConfig{
		Driver:          strings.ToLower(v.GetString("STORAGE_DRIVER")),
		Bucket:          v.GetString("STORAGE_BUCKET"),
		LocalDir:        v.GetString("STORAGE_LOCAL_DIR"),
		PublicBaseURL:   strings.TrimRight(v.GetString("STORAGE_PUBLIC_BASE_URL"), "/"),
		SignedURLSecret: v.GetString("STORAGE_SIGNED_URL_SECRET"),
	}

	cfg.Auth = AuthConfig{
		Driver:       strings.ToLower(v.GetString("AUTH_DRIVER")),
		JWTSecret:    v.GetString("AUTH_JWT_SECRET"),
		CheckRevoked: v.GetBool("AUTH_CHECK_REVOKED"),
	}

	maxFileSize := v.GetInt64("UPLOAD_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	maxFiles := v.GetInt("UPLOAD_MAX_FILES")
	if maxFiles <= 0 {
		maxFiles = 10
	}
	cfg.Uploads = UploadConfig{MaxFileSize: maxFileSize, MaxFiles: maxFiles}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Tracing = TracingConfig{
		Enabled:  v.GetBool("ENABLE_TRACING"),
		Exporter: strings.ToLower(v.GetString("TRACING_EXPORTER")),
		Endpoint: v.GetString("TRACING_ENDPOINT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3000)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("SERVICE_NAME", "portfolio-api")

	v.SetDefault("DOCSTORE_DRIVER", DriverFirestore)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "portfolio")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_CREDENTIALS_JSON", "")

	v.SetDefault("STORAGE_DRIVER", DriverGCS)
	v.SetDefault("STORAGE_BUCKET", "")
	v.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "http://localhost:3000")
	v.SetDefault("STORAGE_SIGNED_URL_SECRET", "dev_storage_secret")

	v.SetDefault("AUTH_DRIVER", DriverFirebase)
	v.SetDefault("AUTH_JWT_SECRET", "dev_secret")
	v.SetDefault("AUTH_CHECK_REVOKED", false)

	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("UPLOAD_MAX_FILES", 10)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_TRACING", false)
	v.SetDefault("TRACING_EXPORTER", "stdout")
	v.SetDefault("TRACING_ENDPOINT", "localhost:4318")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
