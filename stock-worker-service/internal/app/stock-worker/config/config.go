package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config содержит все настройки Stock Worker Service
// Worker подключается к двум PostgreSQL базам: каталог (остатки)
// и заказы (сверка), плюс Redis, MongoDB и Kafka
type Config struct {
	HTTPPort     string
	CatalogDB    DatabaseConfig
	OrdersDB     DatabaseConfig
	Redis        RedisConfig
	Mongo        MongoConfig
	Kafka        KafkaConfig
	CronSchedule CronScheduleConfig
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig настройки подключения к Redis (чекпоинт сверки)
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MongoConfig настройки подключения к MongoDB (журнал списаний)
type MongoConfig struct {
	URI    string
	DBName string
}

// KafkaConfig настройки подписки на события заказов
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// CronScheduleConfig расписание фоновых задач
type CronScheduleConfig struct {
	Reconciliation string // Сверка остатков, по умолчанию ежедневно в 02:00
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8084"),
		CatalogDB: DatabaseConfig{
			Host:     getEnv("CATALOG_DB_HOST", "localhost"),
			Port:     getEnv("CATALOG_DB_PORT", "5432"),
			User:     getEnv("CATALOG_DB_USER", "postgres"),
			Password: getEnv("CATALOG_DB_PASSWORD", "postgres"),
			DBName:   getEnv("CATALOG_DB_NAME", "catalog_service"),
			SSLMode:  getEnv("CATALOG_DB_SSLMODE", "disable"),
		},
		OrdersDB: DatabaseConfig{
			Host:     getEnv("ORDERS_DB_HOST", "localhost"),
			Port:     getEnv("ORDERS_DB_PORT", "5433"),
			User:     getEnv("ORDERS_DB_USER", "postgres"),
			Password: getEnv("ORDERS_DB_PASSWORD", "postgres"),
			DBName:   getEnv("ORDERS_DB_NAME", "orders_service"),
			SSLMode:  getEnv("ORDERS_DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 2),
		},
		Mongo: MongoConfig{
			URI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DBName: getEnv("MONGO_DB_NAME", "stock_worker"),
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "order_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "stock-worker-group"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		CronSchedule: CronScheduleConfig{
			Reconciliation: getEnv("CRON_RECONCILIATION", "0 2 * * *"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
