package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
	Schedule  ScheduleConfig
	Audit     AuditConfig
	Bootstrap BootstrapConfig
	Console   ConsoleConfig
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

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs cache tuning for the counter and timetable reads.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// ScheduleConfig toggles the optional schedule validation rules.
// All rules are off unless a deployment opts in.
type ScheduleConfig struct {
	UniqueRoomDay          bool
	NoTeacherDoubleBooking bool
	RequireAssignment      bool
	VerifyReferences       bool
}

// AuditConfig configures the asynchronous audit writer.
type AuditConfig struct {
	Enabled    bool
	Workers    int
	MaxRetries int
}

// BootstrapConfig seeds the first administrator when the users table is empty.
type BootstrapConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// ConsoleConfig configures the browser-facing admin console.
type ConsoleConfig struct {
	Port             int
	APIBaseURL       string
	APITimeout       time.Duration
	SessionIdleTTL   time.Duration
	SessionFallback  time.Duration
	CookieName       string
	CookieSecure     bool
	SessionSecret    string
	StoreTTL         time.Duration
	SchedulePrecheck bool
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
		if !errors.As(err, &notFound) && !isMissingFile(err) {
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

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Issuer:     v.GetString("JWT_ISSUER"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), time.Minute),
	}

	cfg.Schedule = ScheduleConfig{
		UniqueRoomDay:          v.GetBool("SCHEDULE_UNIQUE_ROOM_DAY"),
		NoTeacherDoubleBooking: v.GetBool("SCHEDULE_NO_TEACHER_DOUBLE_BOOKING"),
		RequireAssignment:      v.GetBool("SCHEDULE_REQUIRE_ASSIGNMENT"),
		VerifyReferences:       v.GetBool("SCHEDULE_VERIFY_REFERENCES"),
	}

	cfg.Audit = AuditConfig{
		Enabled:    v.GetBool("AUDIT_ENABLED"),
		Workers:    v.GetInt("AUDIT_WORKERS"),
		MaxRetries: v.GetInt("AUDIT_MAX_RETRIES"),
	}

	cfg.Bootstrap = BootstrapConfig{
		AdminName:     v.GetString("ADMIN_NAME"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.Console = ConsoleConfig{
		Port:             v.GetInt("CONSOLE_PORT"),
		APIBaseURL:       strings.TrimRight(v.GetString("CONSOLE_API_BASE_URL"), "/"),
		APITimeout:       parseDuration(v.GetString("CONSOLE_API_TIMEOUT"), 10*time.Second),
		SessionIdleTTL:   parseDuration(v.GetString("CONSOLE_SESSION_IDLE_TTL"), 2*time.Hour),
		SessionFallback:  parseDuration(v.GetString("CONSOLE_SESSION_FALLBACK_TTL"), 8*time.Hour),
		CookieName:       v.GetString("CONSOLE_COOKIE_NAME"),
		CookieSecure:     v.GetBool("CONSOLE_COOKIE_SECURE"),
		SessionSecret:    v.GetString("CONSOLE_SESSION_SECRET"),
		StoreTTL:         parseDuration(v.GetString("CONSOLE_STORE_TTL"), time.Minute),
		SchedulePrecheck: v.GetBool("CONSOLE_SCHEDULE_PRECHECK"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "room_scheduling")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "room-scheduling-api")
	v.SetDefault("JWT_EXPIRATION", "12h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_TTL", "1m")

	v.SetDefault("SCHEDULE_UNIQUE_ROOM_DAY", false)
	v.SetDefault("SCHEDULE_NO_TEACHER_DOUBLE_BOOKING", false)
	v.SetDefault("SCHEDULE_REQUIRE_ASSIGNMENT", false)
	v.SetDefault("SCHEDULE_VERIFY_REFERENCES", false)

	v.SetDefault("AUDIT_ENABLED", true)
	v.SetDefault("AUDIT_WORKERS", 1)
	v.SetDefault("AUDIT_MAX_RETRIES", 3)

	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	v.SetDefault("CONSOLE_PORT", 3000)
	v.SetDefault("CONSOLE_API_BASE_URL", "http://localhost:8000")
	v.SetDefault("CONSOLE_API_TIMEOUT", "10s")
	v.SetDefault("CONSOLE_SESSION_IDLE_TTL", "2h")
	v.SetDefault("CONSOLE_SESSION_FALLBACK_TTL", "8h")
	v.SetDefault("CONSOLE_COOKIE_NAME", "console_session")
	v.SetDefault("CONSOLE_COOKIE_SECURE", false)
	v.SetDefault("CONSOLE_SESSION_SECRET", "dev_console_secret")
	v.SetDefault("CONSOLE_STORE_TTL", "1m")
	v.SetDefault("CONSOLE_SCHEDULE_PRECHECK", false)
}

func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file or directory")
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
