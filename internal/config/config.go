package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone - таймзона приложения, задается при загрузке конфигурации
var TimeZone *time.Location = time.UTC

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Asia/Kolkata"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Google struct {
		CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`
		CalendarID      string `env:"GOOGLE_CALENDAR_ID" envDefault:"primary"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"booking_agent:booking_agent"`
		BasicClients       []ConfigBasicClient
	}

	Booking struct {
		Summary         string `env:"BOOKING_SUMMARY" envDefault:"Meeting via AI Agent"`
		DurationMinutes int    `env:"BOOKING_DURATION_MINUTES" envDefault:"60"`
		DefaultHour     int    `env:"BOOKING_DEFAULT_HOUR" envDefault:"10"`
	}

	Business struct {
		DayStartHour int `env:"BUSINESS_DAY_START_HOUR" envDefault:"9"`
		DayEndHour   int `env:"BUSINESS_DAY_END_HOUR" envDefault:"17"`
	}

	RabbitMQ struct {
		Enabled        bool   `env:"RABBITMQ_ENABLED"`
		URL            string `env:"RABBITMQ_URL"`
		Exchange       string `env:"RABBITMQ_EXCHANGE" envDefault:"gcal"`
		EventQueue     string `env:"RABBITMQ_EVENT_QUEUE" envDefault:"gcal.booking-agent.event"`
		EventQueueBind string `env:"RABBITMQ_EVENT_QUEUE_BIND" envDefault:"gcal.booking-agent.event.*"`
		AllQueue       string `env:"RABBITMQ_ALL_QUEUE" envDefault:"gcal.booking-agent._all_"`
		AllQueueBind   string `env:"RABBITMQ_ALL_QUEUE_BIND" envDefault:"gcal.booking-agent._all_.*"`
	}

	Cache struct {
		Enabled      bool `env:"CACHE_ENABLED"`
		SessionsSize int  `env:"CACHE_SESSIONS_SIZE" envDefault:"1000"`
		BusyDaysSize int  `env:"CACHE_BUSY_DAYS_SIZE" envDefault:"64"`
		BusyTTLSec   int  `env:"CACHE_BUSY_TTL_SEC" envDefault:"120"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Загружаем таймзону приложения, при ошибке остаемся в UTC
	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		TimeZone = loc
	}

	// Разделение клиентов basic-авторизации
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Без RabbitMQ кэш занятых интервалов нечем инвалидировать, поэтому не включаем
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) Location() *time.Location {
	return TimeZone
}

func (c *Config) SlotDuration() time.Duration {
	return time.Duration(c.Booking.DurationMinutes) * time.Minute
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
