// Package config exposes the application settings as flat, upper-case keys.
//
// Values are resolved in this order: process environment, config/app.yaml,
// built-in defaults. Everything is loaded once, lazily, on first access.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultConfigFile    = "config/app.yaml"
	defaultAppEnv        = "local"
	defaultAppPort       = "8080"
	defaultStoreDriver   = "mongo"
	defaultMongoURI      = "mongodb://localhost:27017/?replicaSet=rs0"
	defaultMongoDatabase = "catalog"
	defaultRedisAddr     = "localhost:6379"
	defaultJWTSecret     = "change-me-in-production"
	defaultUploadMax     = 5 << 20
)

var (
	loadOnce sync.Once
	loadErr  error

	mu        sync.RWMutex
	values    = defaultValues()
	overrides = map[string]string{}
)

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":            defaultAppEnv,
		"APP_PORT":           defaultAppPort,
		"STORE_DRIVER":       defaultStoreDriver,
		"MONGO_URI":          defaultMongoURI,
		"MONGO_DATABASE":     defaultMongoDatabase,
		"REDIS_ADDR":         defaultRedisAddr,
		"JWT_SECRET":         defaultJWTSecret,
		"JWT_ACCESS_TTL":     "24h",
		"JWT_REFRESH_TTL":    "168h",
		"STORAGE_DISK":       "local",
		"STORAGE_LOCAL_ROOT": "public",
		"STORAGE_URL":        "/public",
		"UPLOAD_MAX_BYTES":   strconv.Itoa(defaultUploadMax),
	}
}

// Load reads config/app.yaml (if present) and the environment.
func Load() error {
	loadOnce.Do(func() {
		loadErr = load(defaultConfigFile)
	})
	return loadErr
}

func load(path string) error {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToUpper(strings.TrimSpace(key)), value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("config: read environment: %w", err)
	}

	loaded := defaultValues()
	for key, raw := range k.All() {
		s := strings.TrimSpace(fmt.Sprint(raw))
		if s == "" {
			continue
		}
		loaded[strings.ToUpper(key)] = s
	}

	mu.Lock()
	values = loaded
	mu.Unlock()
	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if v, ok := overrides[key]; ok {
		return v
	}
	if v := strings.TrimSpace(values[key]); v != "" {
		return v
	}
	return fallback
}

// Get reads any key with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a key for the lifetime of the process. Tests and CLI flags use it.
func Set(key, value string) {
	mu.Lock()
	overrides[strings.ToUpper(key)] = value
	mu.Unlock()
}

func AppEnv() string { return Get("APP_ENV", defaultAppEnv) }
func AppPort() string { return Get("APP_PORT", defaultAppPort) }

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

// StoreDriver is either "mongo" or "memory".
func StoreDriver() string {
	switch d := strings.ToLower(Get("STORE_DRIVER", defaultStoreDriver)); d {
	case "mongo", "memory":
		return d
	default:
		return defaultStoreDriver
	}
}

func MongoURI() string { return Get("MONGO_URI", defaultMongoURI) }
func MongoDatabase() string { return Get("MONGO_DATABASE", defaultMongoDatabase) }
func LogToMongo() bool { return Bool("LOG_TO_MONGO", false) }

func RedisAddr() string { return Get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { return Get("REDIS_PASSWORD", "") }

func JWTSecret() string { return Get("JWT_SECRET", defaultJWTSecret) }
func JWTAccessTTL() time.Duration { return Duration("JWT_ACCESS_TTL", 24*time.Hour) }
func JWTRefreshTTL() time.Duration { return Duration("JWT_REFRESH_TTL", 7*24*time.Hour) }
func ClientURL() string { return Get("CLIENT_URL", "*") }
func RateLimitPerMinute() int { return Int("RATE_LIMIT_PER_MINUTE", 200) }
func UploadMaxBytes() int64 { return int64(Int("UPLOAD_MAX_BYTES", defaultUploadMax)) }
func MaxBodyBytes() int64 { return int64(Int("MAX_BODY_BYTES", 4<<20)) }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string { return Get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { return Get("STORAGE_LOCAL_ROOT", "public") }
func StorageURL() string { return Get("STORAGE_URL", "/public") }

func StorageS3Bucket() string { return Get("S3_BUCKET", "") }
func StorageS3Region() string { return Get("S3_REGION", "us-east-1") }
func StorageS3Key() string { return Get("S3_KEY", "") }
func StorageS3Secret() string { return Get("S3_SECRET", "") }
func StorageS3Endpoint() string { return Get("S3_ENDPOINT", "") }
func StorageS3URL() string { return Get("S3_URL", "") }

// ── Typed helpers ────────────────────────────────────────────────────────────

// Int reads key as an integer, returning fallback when unset or malformed.
func Int(key string, fallback int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// Bool reads key as a boolean, returning fallback when unset or malformed.
func Bool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(Get(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// Duration reads key as a time.Duration ("15m", "24h").
func Duration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(Get(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
