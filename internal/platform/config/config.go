package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3Region          string
	S3Bucket          string
	S3AccessKey       string
	S3SecretAccessKey string
	S3Endpoint        string // optional, for S3-compatible stores

	UploadMaxFiles      int
	UploadMaxFileSizeMB int
	UploadRetryAttempts int

	PlaceCacheTTL time.Duration

	RateLimitRPS   int
	RateLimitBurst int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort: getEnv("API_PORT", "4000"),
		// The signing secret is deliberately not defaulted: a forgeable
		// session token is worse than a server that refuses to boot.
		JWTKey:              []byte(mustEnv("JWT_SECRET")),
		JWTExp:              time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "user"),
		DBPassword:          getEnv("DB_PASSWORD", "password"),
		DBName:              getEnv("DB_NAME", "staynest_db"),
		DBSslMode:           getEnv("DB_SSLMODE", "disable"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		S3Region:            getEnv("S3_REGION", "us-east-1"),
		S3Bucket:            mustEnv("S3_BUCKET"),
		S3AccessKey:         mustEnv("S3_ACCESS_KEY"),
		S3SecretAccessKey:   mustEnv("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		UploadMaxFiles:      getEnvAsInt("UPLOAD_MAX_FILES", 20),
		UploadMaxFileSizeMB: getEnvAsInt("UPLOAD_MAX_FILE_SIZE_MB", 8),
		UploadRetryAttempts: getEnvAsInt("UPLOAD_RETRY_ATTEMPTS", 2),
		PlaceCacheTTL:       time.Duration(getEnvAsInt("PLACE_CACHE_TTL_SECONDS", 30)) * time.Second,
		RateLimitRPS:        getEnvAsInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:      getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func mustEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
