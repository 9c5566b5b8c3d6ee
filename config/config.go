package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Addr        string
	LogLevel    string
	Environment string

	// Medium selects the durable layer: memory, file, redis or postgres.
	Medium  string
	DataDir string

	RedisAddr   string
	PostgresDSN string

	KafkaEnabled bool
	KafkaBroker  string
	KafkaTopic   string

	BaseURL           string
	StrictTransitions bool
}

// Load reads .env (when present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:              getEnv("ADDR", ":8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		Medium:            getEnv("STORAGE_MEDIUM", "file"),
		DataDir:           getEnv("DATA_DIR", "./data"),
		RedisAddr:         getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		PostgresDSN:       postgresDSN(),
		KafkaEnabled:      getBool("KAFKA_ENABLED", false),
		KafkaBroker:       getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "mealdrop-events"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		StrictTransitions: getBool("STRICT_TRANSITIONS", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func postgresDSN() string {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	return "host=" + getEnv("DB_HOST", "localhost") +
		" port=" + getEnv("DB_PORT", "5432") +
		" user=" + getEnv("DB_USER", "postgres") +
		" password=" + getEnv("DB_PASSWORD", "") +
		" dbname=" + getEnv("DB_NAME", "mealdrop") +
		" sslmode=disable"
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(cfg *Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
}
