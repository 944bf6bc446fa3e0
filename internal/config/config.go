package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable with the in-memory store.
const DefaultJWTSecret = "your-secret-key-change-in-production"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set when MongoDB is used")

type Config struct {
	ServerAddress string
	// WorkerAddress serves the worker's health and manual rotate endpoints,
	// loopback only unless overridden.
	WorkerAddress string

	// MemoryStore runs the API without MongoDB. Data is lost on exit.
	MemoryStore       bool
	MongoURI          string
	MongoDatabase     string
	MongoForceTLS12   bool
	MongoTransactions bool

	RedisURI string

	JWTSecret     string
	JWTExpiration time.Duration

	FirebaseProjectID       string
	FirebaseCredentialsFile string

	AllowedOrigins []string
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerAddress:           getEnv("SERVER_ADDRESS", ":8080"),
		WorkerAddress:           getEnv("WORKER_ADDRESS", "127.0.0.1:8081"),
		MemoryStore:             getBool("MEMORY_STORE", false),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:           getEnv("MONGO_DB", "dicoslang"),
		MongoForceTLS12:         getBool("MONGO_FORCE_TLS12", false),
		MongoTransactions:       getBool("MONGO_TRANSACTIONS", false),
		RedisURI:                getEnv("REDIS_URI", ""),
		JWTSecret:               getEnv("JWT_SECRET", DefaultJWTSecret),
		JWTExpiration:           getDuration("JWT_EXPIRATION", 24*time.Hour),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		AllowedOrigins:          getList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}
}

// Validate rejects settings that would let anyone sign back-office tokens.
func (c *Config) Validate() error {
	if !c.MemoryStore && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
