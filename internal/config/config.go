package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendLocal    = "local"
	BackendPostgres = "postgres"

	MediaPlaceholder = "placeholder"
	MediaMinIO       = "minio"
)

type DB struct {
	DbHOST         string
	DbPORT         string
	DbUSER         string
	DbPASSWORD     string
	DbNAME         string
	DbSSLMODE      string
	MigrationsPath string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Call struct {
	FreeDuration time.Duration
	TickInterval time.Duration
}

type RateLimit struct {
	LoginPerMinute int
	LoginBurst     int
}

type Config struct {
	ServerPort          int
	AppEnv              string
	LogLevel            string
	CORSAllowedOrigins  []string
	StorageBackend      string
	DataDir             string
	MediaBackend        string
	DB                  DB
	MinIO               MinIO
	Call                Call
	RateLimit           RateLimit
	JWTSecretKey        string
	AccessTokenDuration time.Duration
	SessionDuration     time.Duration
	SessionSweep        time.Duration
	MaxUploadSize       int64
	OwnerUsername       string
	OwnerPassword       string
	SeedFile            string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDuration falls back when the value is missing or malformed.
func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:         getEnv("DB_HOST", "localhost"),
		DbPORT:         getEnv("DB_PORT", "5432"),
		DbUSER:         getEnv("DB_USER", "postgres"),
		DbPASSWORD:     getEnv("DB_PASSWORD", "password"),
		DbNAME:         getEnv("DB_NAME", "gyansetu"),
		DbSSLMODE:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "gyansetu-media"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", ""),
	}
}

func LoadCall() Call {
	return Call{
		FreeDuration: parseDuration(getEnv("FREE_CALL_DURATION", "5m"), 5*time.Minute),
		TickInterval: parseDuration(getEnv("CALL_TICK_INTERVAL", "1s"), time.Second),
	}
}

func LoadRateLimit() RateLimit {
	return RateLimit{
		LoginPerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginBurst:     getEnvAsInt("LOGIN_RATE_BURST", 5),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:          getEnvAsInt("SERVER_PORT", 8080),
		AppEnv:              getEnv("APP_ENV", "production"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		StorageBackend:      strings.ToLower(getEnv("STORAGE_BACKEND", BackendLocal)),
		DataDir:             getEnv("DATA_DIR", "./data"),
		MediaBackend:        strings.ToLower(getEnv("MEDIA_BACKEND", MediaPlaceholder)),
		DB:                  LoadDB(),
		MinIO:               LoadMinIO(),
		Call:                LoadCall(),
		RateLimit:           LoadRateLimit(),
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		SessionDuration:     parseDuration(getEnv("SESSION_DURATION", "168h"), 168*time.Hour),
		SessionSweep:        parseDuration(getEnv("SESSION_SWEEP_INTERVAL", "1h"), time.Hour),
		MaxUploadSize:       parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		OwnerUsername:       strings.ToLower(strings.TrimSpace(getEnv("OWNER_USERNAME", "gyansetu_owner"))),
		OwnerPassword:       getEnv("OWNER_PASSWORD", ""),
		SeedFile:            getEnv("SEED_FILE", ""),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}
