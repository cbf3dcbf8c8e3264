package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	JWT         JWTConfig
	S3          S3Config
	Log         LogConfig
	CORS        CORSConfig
	Translation TranslationConfig
	Email       EmailConfig
}

// EmailConfig holds admin notification settings.
type EmailConfig struct {
	Provider     string `mapstructure:"provider"`
	Region       string `mapstructure:"region"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	AdminAddress string `mapstructure:"admin_address"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TranslationProviderConfig holds settings for a single machine translation provider.
type TranslationProviderConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the HTTP timeout for provider calls.
func (t *TranslationProviderConfig) Timeout() time.Duration {
	if t.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(t.TimeoutSecs) * time.Second
}

// TranslationConfig holds machine translation settings. The flat provider fields
// describe the primary provider; Secondary is tried when the primary fails.
type TranslationConfig struct {
	TranslationProviderConfig `mapstructure:",squash"`
	Secondary                 TranslationProviderConfig `mapstructure:"secondary"`
	SourceLang                string                    `mapstructure:"source_lang"`
	TargetLang                string                    `mapstructure:"target_lang"`
}

// PrimaryConfig returns the primary provider config.
func (t *TranslationConfig) PrimaryConfig() *TranslationProviderConfig {
	return &t.TranslationProviderConfig
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (t *TranslationConfig) SecondaryConfig() *TranslationProviderConfig {
	if t.Secondary.Provider != "" {
		return &t.Secondary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsDevelopment reports whether the server runs in development mode.
func (s *ServerConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds object storage settings for uploaded images.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PORTFOLIO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "portfolio")
	v.SetDefault("db.password", "portfolio_secret")
	v.SetDefault("db.name", "portfolio_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "portfolio")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "portfolio-images")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "text")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Translation defaults
	v.SetDefault("translation.provider", "google")
	v.SetDefault("translation.api_key", "")
	v.SetDefault("translation.endpoint", "")
	v.SetDefault("translation.model", "")
	v.SetDefault("translation.source_lang", "es")
	v.SetDefault("translation.target_lang", "en")
	v.SetDefault("translation.timeout_secs", 30)
	v.SetDefault("translation.secondary.provider", "")
	v.SetDefault("translation.secondary.api_key", "")
	v.SetDefault("translation.secondary.endpoint", "")
	v.SetDefault("translation.secondary.model", "")
	v.SetDefault("translation.secondary.timeout_secs", 30)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@example.com")
	v.SetDefault("email.from_name", "Portfolio CMS")
	v.SetDefault("email.admin_address", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                        "PORTFOLIO_SERVER_PORT",
		"server.read_timeout":                "PORTFOLIO_SERVER_READ_TIMEOUT",
		"server.write_timeout":               "PORTFOLIO_SERVER_WRITE_TIMEOUT",
		"server.environment":                 "PORTFOLIO_SERVER_ENVIRONMENT",
		"db.host":                            "PORTFOLIO_DB_HOST",
		"db.port":                            "PORTFOLIO_DB_PORT",
		"db.user":                            "PORTFOLIO_DB_USER",
		"db.password":                        "PORTFOLIO_DB_PASSWORD",
		"db.name":                            "PORTFOLIO_DB_NAME",
		"db.sslmode":                         "PORTFOLIO_DB_SSLMODE",
		"db.max_open":                        "PORTFOLIO_DB_MAX_OPEN",
		"db.max_idle":                        "PORTFOLIO_DB_MAX_IDLE",
		"jwt.secret":                         "PORTFOLIO_JWT_SECRET",
		"jwt.access_expiry":                  "PORTFOLIO_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":                 "PORTFOLIO_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                         "PORTFOLIO_JWT_ISSUER",
		"s3.region":                          "PORTFOLIO_S3_REGION",
		"s3.bucket":                          "PORTFOLIO_S3_BUCKET",
		"s3.endpoint":                        "PORTFOLIO_S3_ENDPOINT",
		"s3.public_base_url":                 "PORTFOLIO_S3_PUBLIC_BASE_URL",
		"s3.access_key":                      "PORTFOLIO_S3_ACCESS_KEY",
		"s3.secret_key":                      "PORTFOLIO_S3_SECRET_KEY",
		"s3.max_file_size_mb":                "PORTFOLIO_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                  "PORTFOLIO_S3_PRESIGN_EXPIRY",
		"log.level":                          "PORTFOLIO_LOG_LEVEL",
		"log.format":                         "PORTFOLIO_LOG_FORMAT",
		"cors.allowed_origins":               "PORTFOLIO_CORS_ALLOWED_ORIGINS",
		"translation.provider":               "PORTFOLIO_TRANSLATION_PROVIDER",
		"translation.api_key":                "PORTFOLIO_TRANSLATION_API_KEY",
		"translation.endpoint":               "PORTFOLIO_TRANSLATION_ENDPOINT",
		"translation.model":                  "PORTFOLIO_TRANSLATION_MODEL",
		"translation.source_lang":            "PORTFOLIO_TRANSLATION_SOURCE_LANG",
		"translation.target_lang":            "PORTFOLIO_TRANSLATION_TARGET_LANG",
		"translation.timeout_secs":           "PORTFOLIO_TRANSLATION_TIMEOUT_SECS",
		"translation.secondary.provider":     "PORTFOLIO_TRANSLATION_SECONDARY_PROVIDER",
		"translation.secondary.api_key":      "PORTFOLIO_TRANSLATION_SECONDARY_API_KEY",
		"translation.secondary.endpoint":     "PORTFOLIO_TRANSLATION_SECONDARY_ENDPOINT",
		"translation.secondary.model":        "PORTFOLIO_TRANSLATION_SECONDARY_MODEL",
		"translation.secondary.timeout_secs": "PORTFOLIO_TRANSLATION_SECONDARY_TIMEOUT_SECS",
		"email.provider":                     "PORTFOLIO_EMAIL_PROVIDER",
		"email.region":                       "PORTFOLIO_EMAIL_REGION",
		"email.from_address":                 "PORTFOLIO_EMAIL_FROM_ADDRESS",
		"email.from_name":                    "PORTFOLIO_EMAIL_FROM_NAME",
		"email.admin_address":                "PORTFOLIO_EMAIL_ADMIN_ADDRESS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Render set a PORT env var. Use it if PORTFOLIO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PORTFOLIO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		PublicBaseURL: v.GetString("s3.public_base_url"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Translation = TranslationConfig{
		TranslationProviderConfig: TranslationProviderConfig{
			Provider:    v.GetString("translation.provider"),
			APIKey:      v.GetString("translation.api_key"),
			Endpoint:    v.GetString("translation.endpoint"),
			Model:       v.GetString("translation.model"),
			TimeoutSecs: v.GetInt("translation.timeout_secs"),
		},
		Secondary: TranslationProviderConfig{
			Provider:    v.GetString("translation.secondary.provider"),
			APIKey:      v.GetString("translation.secondary.api_key"),
			Endpoint:    v.GetString("translation.secondary.endpoint"),
			Model:       v.GetString("translation.secondary.model"),
			TimeoutSecs: v.GetInt("translation.secondary.timeout_secs"),
		},
		SourceLang: v.GetString("translation.source_lang"),
		TargetLang: v.GetString("translation.target_lang"),
	}

	cfg.Email = EmailConfig{
		Provider:     v.GetString("email.provider"),
		Region:       v.GetString("email.region"),
		FromAddress:  v.GetString("email.from_address"),
		FromName:     v.GetString("email.from_name"),
		AdminAddress: v.GetString("email.admin_address"),
	}

	return cfg, nil
}
