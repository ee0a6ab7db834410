package config

import (
	"flag"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// DBType тип реляционного хранилища.
type DBType string

const (
	DBTypePostgres DBType = "postgres"
	DBTypeSQLite   DBType = "sqlite"
)

// DefaultCacheTTL срок жизни записи в кеше редиректов.
// DefaultSessionTTL срок жизни пользовательской сессии.
const (
	DefaultCacheTTL   = time.Hour
	DefaultSessionTTL = 24 * time.Hour
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующего сокращенного URL
	BaseURL *url.URL `env:"BASE_URL"`
	// Тип хранилища
	DBType DBType `env:"DB" envDefault:"sqlite"`
	// DSN подключения к postgres (используется при DB=postgres)
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Путь к файлу sqlite (используется при DB=sqlite)
	SQLitePath string `env:"SQLITE_PATH" envDefault:"shortlink.db"`
	// Адрес redis. Если пуст - кеш и сессии работают в памяти процесса.
	RedisURL string `env:"REDIS_URL"`
	// Срок жизни записи в кеше редиректов
	CacheTTL time.Duration `env:"CACHE_TTL"`
	// Срок жизни сессии пользователя
	SessionTTL time.Duration `env:"SESSION_TTL"`
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrap(err, "parse ENV config error")
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)

	if conf.CacheTTL <= 0 {
		conf.CacheTTL = DefaultCacheTTL
	}
	if conf.SessionTTL <= 0 {
		conf.SessionTTL = DefaultSessionTTL
	}
	return conf, nil
}

// MustLoadConfig вызывает панику если конфигурацию загрузить не удалось.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	flag.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN подключения к postgres")
	flag.StringVar(&flagsConfig.RedisURL, "r", "", "Адрес redis")

	bDesc := "Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запущенного сервера)"
	flag.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// создаем новый инстанс, отсекая тем самым Path и Query если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	flag.Parse()
}

// mergeConfig сливает структуры для env и флагов. Значения env имеют приоритет.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		ServerAddress: defaultIfBlank(envConfig.ServerAddress, flagsConfig.ServerAddress),
		BaseURL:       defaultIfNil(envConfig.BaseURL, flagsConfig.BaseURL),
		DBType:        defaultIfBlank(envConfig.DBType, flagsConfig.DBType),
		DatabaseDSN:   defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		SQLitePath:    envConfig.SQLitePath,
		RedisURL:      defaultIfBlank(envConfig.RedisURL, flagsConfig.RedisURL),
		CacheTTL:      envConfig.CacheTTL,
		SessionTTL:    envConfig.SessionTTL,
	}
}

func defaultIfBlank[T ~string](value T, defaultValue T) T {
	if value == "" {
		return defaultValue
	}
	return value
}

func defaultIfNil[T any](value *T, defaultValue *T) *T {
	if value == nil {
		return defaultValue
	}
	return value
}
