package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// NocoDBConfig - удаленная таблица ожидаемых часов
type NocoDBConfig struct {
	APIURL    string
	APIKey    string
	ViewID    string
	TableName string
	PageSize  int
	Timeout   time.Duration
}

// Enabled - без адреса или таблицы удаленный источник отключен
func (c NocoDBConfig) Enabled() bool {
	return c.APIURL != "" && c.TableName != ""
}

type AppConfig struct {
	NocoDB          NocoDBConfig
	DatabaseURL     string
	TelegramToken   string
	BaseAdminChatID int64
	TelegramDebug   bool
	LogLevel        logrus.Level
}

var instance *AppConfig
var once sync.Once

// GetAppConfig читает .env и переменные окружения один раз за процесс
func GetAppConfig() *AppConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.WithError(err).Warn("No .env file loaded, using process environment")
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load собирает конфиг из окружения процесса
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		NocoDB: NocoDBConfig{
			APIURL:    getEnv("NOCODB_API_URL", ""),
			APIKey:    getEnv("NOCODB_API_KEY", ""),
			ViewID:    getEnv("NOCODB_PROJECT_ID", ""),
			TableName: getEnv("NOCODB_TABLE_NAME", ""),
			PageSize:  int(getEnvAsInt("NOCODB_PAGE_SIZE", 100)),
			Timeout:   time.Duration(getEnvAsInt("NOCODB_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		DatabaseURL:     getEnv("DATABASE_URL", "expected_hours.db"),
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		BaseAdminChatID: getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		TelegramDebug:   getEnvAsBool("TELEGRAM_DEBUG", false),
	}

	if cfg.NocoDB.PageSize <= 0 {
		return nil, fmt.Errorf("NOCODB_PAGE_SIZE must be positive, got %d", cfg.NocoDB.PageSize)
	}
	if cfg.NocoDB.Timeout <= 0 {
		return nil, fmt.Errorf("NOCODB_TIMEOUT_SECONDS must be positive, got %s", cfg.NocoDB.Timeout)
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("could not get db url")
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// ValidateBot проверяет то, что нужно только боту
func (c *AppConfig) ValidateBot() error {
	if c.TelegramToken == "" {
		return errors.New("could not get bot token")
	}
	if c.BaseAdminChatID == 0 {
		return errors.New("could not get admin chat id")
	}
	return nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}
