package configs

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	Port               string
	DatabaseURL        string
	SQLitePath         string
	CORSAllowedOrigins []string
	RateLimitMax       int
	SeedFile           string
	LogSQL             bool
)

var defaultCORSOrigins = []string{
	"http://127.0.0.1:8000",
	"http://localhost:8000",
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found, using system environment")
	} else {
		log.Println("[INFO] .env file loaded")
	}

	Port = GetEnv("PORT", "3000")
	DatabaseURL = BuildPostgresDSN()
	SQLitePath = GetEnv("SQLITE_PATH", "sms.db")
	CORSAllowedOrigins = ResolveCORSOrigins()
	RateLimitMax = GetEnvInt("RATE_LIMIT_MAX", 100)
	SeedFile = GetEnv("SEED_FILE")
	LogSQL = GetEnvBool("LOG_SQL", false)

	if DatabaseURL == "" {
		log.Printf("[INFO] DATABASE_URL not set, using SQLite at %s", SQLitePath)
	} else {
		log.Println("[INFO] PostgreSQL configured")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	raw := strings.TrimSpace(GetEnv(key))
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[WARN] %s=%q is not an integer, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func GetEnvBool(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(GetEnv(key))
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return b
}

// BuildPostgresDSN prefers DATABASE_URL and falls back to the discrete DB_* variables.
// An empty result means no PostgreSQL is configured.
func BuildPostgresDSN() string {
	if url := strings.TrimSpace(GetEnv("DATABASE_URL")); url != "" {
		return url
	}
	host := strings.TrimSpace(GetEnv("DB_HOST"))
	if host == "" {
		return ""
	}
	return "postgresql://" + GetEnv("DB_USER") + ":" + GetEnv("DB_PASSWORD") +
		"@" + host + ":" + GetEnv("DB_PORT", "5432") + "/" + GetEnv("DB_NAME") +
		"?sslmode=" + GetEnv("DB_SSLMODE", "require") + "&application_name=sms_backend"
}

// ResolveCORSOrigins builds the allow-list. On Render the backend host and the
// matching "-frontend" host are appended.
func ResolveCORSOrigins() []string {
	var origins []string
	if raw := strings.TrimSpace(GetEnv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	} else {
		origins = append(origins, defaultCORSOrigins...)
	}

	if backend := strings.TrimSpace(GetEnv("RENDER_EXTERNAL_HOSTNAME")); backend != "" {
		frontend := strings.Replace(backend, "-backend", "-frontend", 1)
		origins = append(origins, "https://"+frontend)
		if frontend != backend {
			origins = append(origins, "https://"+backend)
		}
	}
	return origins
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if LogSQL {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !errors.Is(err, gormLogger.ErrRecordNotFound):
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
