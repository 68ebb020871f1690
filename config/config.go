package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string          `toml:"env"`
	LogLevel string          `toml:"log_level"`
	Database DatabaseConfigs `toml:"database"`
	Server   ServerConfigs   `toml:"server"`
	Redis    RedisConfigs    `toml:"redis"`
	Cron     CronConfigs     `toml:"cron"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type CronConfigs struct {
	IntervalSeconds int `toml:"interval_seconds"`

	// Quiet window in app-region local hours during which the sweeper skips
	// its runs: [QuietStartHour, QuietEndHour).
	QuietStartHour int `toml:"quiet_start_hour"`
	QuietEndHour   int `toml:"quiet_end_hour"`
}

func (c *CronConfigs) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Load reads configuration from a TOML file and applies environment
// overrides for secrets. Missing file fields keep their defaults.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Configs{}, err
		}
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}

	return cfg, nil
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "INFO",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "darkfocus",
			User:     "darkfocus",
		},
		Server: ServerConfigs{Port: "8080"},
		Redis:  RedisConfigs{Addr: "localhost:6379"},
		Cron: CronConfigs{
			IntervalSeconds: 60,
			QuietStartHour:  0,
			QuietEndHour:    6,
		},
	}
}
