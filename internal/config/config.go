package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	Push      PushConfig
	Reminder  ReminderConfig
}

type ServerConfig struct {
	Address string
}

type DatabaseConfig struct {
	PostgresURL string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type SchedulerConfig struct {
	Interval time.Duration
}

type PushConfig struct {
	GatewayURL string
	Token      string
}

type ReminderConfig struct {
	Cooldown  time.Duration
	MaxWindow time.Duration
}

func LoadAll() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
		},
		Database: DatabaseConfig{
			PostgresURL: mustEnv("POSTGRES_URL"),
		},
		Push: PushConfig{
			GatewayURL: mustEnv("PUSH_GATEWAY_URL"),
			Token:      os.Getenv("PUSH_GATEWAY_TOKEN"),
		},
		Scheduler: SchedulerConfig{
			Interval: time.Duration(getEnvInt("SCHED_INTERVAL_MINUTES", 30)) * time.Minute,
		},
		Reminder: ReminderConfig{
			Cooldown:  time.Duration(getEnvInt("REMINDER_COOLDOWN_MINUTES", 60)) * time.Minute,
			MaxWindow: time.Duration(getEnvInt("REMINDER_MAX_WINDOW_HOURS", 72)) * time.Hour,
		},
		Redis: loadRedisConfig(),
	}

	validate(cfg)
	return cfg, nil
}

func loadRedisConfig() RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return RedisConfig{Enabled: false}
	}

	return RedisConfig{
		Enabled:  true,
		Address:  addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

func validate(cfg *Config) {
	if cfg.Scheduler.Interval <= 0 {
		panic("SCHED_INTERVAL_MINUTES must be > 0")
	}
	if cfg.Reminder.Cooldown <= 0 {
		panic("REMINDER_COOLDOWN_MINUTES must be > 0")
	}
	if cfg.Reminder.MaxWindow <= cfg.Reminder.Cooldown {
		panic("REMINDER_MAX_WINDOW_HOURS must exceed the cooldown")
	}
}

func mustEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("missing required env var: %s", key))
	}
	return val
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("invalid int for env %s: %s", key, v))
	}
	return i
}
