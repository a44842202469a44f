// Package config загрузка конфигурации из config.toml с переопределением
// секретов через переменные окружения
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config полная конфигурация сервиса
type Config struct {
	Server    Server    `toml:"server"`
	Database  Database  `toml:"database"`
	Logs      Logs      `toml:"logs"`
	Metrics   Metrics   `toml:"metrics"`
	Venue     Venue     `toml:"venue"`
	Telegram  Telegram  `toml:"telegram"`
	Digest    Digest    `toml:"digest"`
	RateLimit RateLimit `toml:"ratelimit"`
	Events    Events    `toml:"events"`
	Auth      Auth      `toml:"auth"`
}

type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Venue часы работы площадки. Слоты выдаются в диапазоне [open_hour, close_hour)
type Venue struct {
	OpenHour  int `toml:"open_hour"`
	CloseHour int `toml:"close_hour"`
}

type Telegram struct {
	BotToken     string  `toml:"bot_token"`
	AdminChatIDs []int64 `toml:"admin_chat_ids"`
}

// Digest утренняя сводка по броням дня в чаты администраторов
type Digest struct {
	Enabled  bool   `toml:"enabled"`
	CronSpec string `toml:"cron_spec"`
}

type RateLimit struct {
	Enabled           bool   `toml:"enabled"`
	RedisAddr         string `toml:"redis_addr"`
	RedisPassword     string `toml:"redis_password"`
	RedisDB           int    `toml:"redis_db"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// Events публикация событий брони в RabbitMQ. При пустом amqp_url отключена
type Events struct {
	Enabled bool   `toml:"enabled"`
	AMQPURL string `toml:"amqp_url"`
}

type Auth struct {
	AdminToken string `toml:"admin_token"`
}

// Load читает config.toml и применяет переопределения из окружения.
// Файл .env подхватывается, если существует
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_ADMIN_CHAT_IDS"); v != "" {
		if ids, err := parseChatIDs(v); err == nil {
			c.Telegram.AdminChatIDs = ids
		}
	}
	if v := os.Getenv("ADMIN_API_TOKEN"); v != "" {
		c.Auth.AdminToken = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		c.Events.AMQPURL = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.RateLimit.RedisPassword = v
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Venue.OpenHour < 0 || c.Venue.OpenHour > 23 {
		return fmt.Errorf("config: venue.open_hour must be in [0, 23]")
	}
	if c.Venue.CloseHour <= c.Venue.OpenHour || c.Venue.CloseHour > 24 {
		return fmt.Errorf("config: venue.close_hour must be in (open_hour, 24]")
	}
	if c.Auth.AdminToken == "" {
		return fmt.Errorf("config: auth.admin_token is required (set ADMIN_API_TOKEN)")
	}
	if c.Digest.Enabled && c.Digest.CronSpec == "" {
		return fmt.Errorf("config: digest.cron_spec is required when digest is enabled")
	}
	if c.Events.Enabled && c.Events.AMQPURL == "" {
		return fmt.Errorf("config: events.amqp_url is required when events are enabled")
	}
	if c.RateLimit.Enabled && c.RateLimit.RedisAddr == "" {
		return fmt.Errorf("config: ratelimit.redis_addr is required when ratelimit is enabled")
	}
	return nil
}

func parseChatIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
