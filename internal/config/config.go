package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения
type Config struct {
	BotToken string
	BotDebug bool

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Часовой пояс, в котором бот считает "сегодня"
	Timezone string

	// Расписание ежедневной рассылки в формате robfig/cron (с секундами)
	DigestSchedule string

	LogLevel  string // debug, info, warn, error
	LogFormat string // console, json
}

// Load загружает конфигурацию бота. BOT_TOKEN обязателен.
func Load(files ...string) (*Config, error) {
	cfg, err := LoadBase(files...)
	if err != nil {
		return nil, err
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN не задан")
	}
	return cfg, nil
}

// LoadBase загружает конфигурацию из переменных окружения и .env файлов
// без проверки токена (для CLI и тестов).
func LoadBase(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Переменные окружения важнее файла, godotenv их не перезаписывает
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("ошибка чтения %s: %w", f, err)
		}
	}

	cfg := &Config{
		BotToken: getEnv("BOT_TOKEN", ""),
		BotDebug: getBool("BOT_DEBUG", false),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "postgres"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Timezone:       getEnv("TIMEZONE", "Europe/Moscow"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 0 9 * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN возвращает строку подключения к базе данных
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Location возвращает часовой пояс из TIMEZONE
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("некорректный TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
