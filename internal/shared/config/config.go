package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret"

// Config holds application configuration.
type Config struct {
	Port                  string
	CORSAllowOrigin       []string
	DatabaseURL           string
	Env                   string
	JWTSecret             string
	JWTTTL                time.Duration
	BcryptCost            int
	ChromePath            string
	RenderTimeout         time.Duration
	ObjectStoreType       string
	LocalStoreDir         string
	AWSRegion             string
	S3Bucket              string
	S3Prefix              string
	SSEKMSKeyID           string
	RedisURL              string
	RateLimitRenderPerMin int
	RateLimitAuthPerMin   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" && IsDevLike(env) {
		jwtSecret = devJWTSecret
	}

	return Config{
		Port:                  getEnv("PORT", "3000"),
		CORSAllowOrigin:       splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,https://jb-resume-generator.vercel.app")),
		DatabaseURL:           dbURL,
		Env:                   env,
		JWTSecret:             jwtSecret,
		JWTTTL:                getEnvDuration("JWT_TTL", time.Hour),
		BcryptCost:            getEnvInt("BCRYPT_COST", 10),
		ChromePath:            getEnv("CHROME_PATH", ""),
		RenderTimeout:         getEnvDuration("RENDER_TIMEOUT", 30*time.Second),
		ObjectStoreType:       normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:         getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:             getEnv("AWS_REGION", ""),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Prefix:              getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:           getEnv("SSE_KMS_KEY_ID", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		RateLimitRenderPerMin: getEnvInt("RATE_LIMIT_RENDER_PER_MIN", 6),
		RateLimitAuthPerMin:   getEnvInt("RATE_LIMIT_AUTH_PER_MIN", 20),
	}
}

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: ignoring %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config: %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}

// IsDevLike reports whether env is a local environment where the built-in
// development secret and in-memory storage are acceptable.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "none", "off", "disabled":
		return "none"
	default:
		return "local"
	}
}
