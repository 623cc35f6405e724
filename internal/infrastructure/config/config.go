package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Storage   StorageConfig
	DynamoDB  DynamoDBConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	Delivery  DeliveryConfig
	WhatsApp  WhatsAppConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

type StorageConfig struct {
	Driver string // memory, dynamodb
}

type DynamoDBConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	RemovalsTable   string
	HistoryTable    string
	BatchesTable    string
	StockTable      string
	PricesTable     string
}

// RedisConfig configures the distributed lock. An empty Host disables Redis and the service
// falls back to an in-process lock.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	LockTTL  time.Duration
}

type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
	Window   time.Duration
	Timezone string
}

type DeliveryConfig struct {
	DailyCapacity int
}

// WhatsAppConfig configures the driver messenger. Mock mode only logs the outgoing message.
type WhatsAppConfig struct {
	BaseURL string
	Token   string
	Mock    bool
	Timeout time.Duration
}

// Load reads configuration from an optional config.yaml and environment variables.
//
// Environment variables win over the file and use the key path in upper snake case,
// e.g. DYNAMODB_ENDPOINT for dynamodb.endpoint or SCHEDULER_INTERVAL for scheduler.interval.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
		},
		DynamoDB: DynamoDBConfig{
			Region:          v.GetString("aws.region"),
			Endpoint:        v.GetString("dynamodb.endpoint"),
			AccessKeyID:     v.GetString("aws.access_key_id"),
			SecretAccessKey: v.GetString("aws.secret_access_key"),
			RemovalsTable:   v.GetString("removals.table"),
			HistoryTable:    v.GetString("removal_history.table"),
			BatchesTable:    v.GetString("cremation_batches.table"),
			StockTable:      v.GetString("stock.table"),
			PricesTable:     v.GetString("price_table.table"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			LockTTL:  v.GetDuration("redis.lock_ttl"),
		},
		Scheduler: SchedulerConfig{
			Enabled:  v.GetBool("scheduler.enabled"),
			Interval: v.GetDuration("scheduler.interval"),
			Window:   v.GetDuration("scheduler.window"),
			Timezone: v.GetString("scheduler.timezone"),
		},
		Delivery: DeliveryConfig{
			DailyCapacity: v.GetInt("delivery.daily_capacity"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL: v.GetString("whatsapp.base_url"),
			Token:   v.GetString("whatsapp.token"),
			Mock:    v.GetBool("whatsapp.mock"),
			Timeout: v.GetDuration("whatsapp.timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cremacao-pet")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("storage.driver", StorageMemory)

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.access_key_id", "local")
	v.SetDefault("aws.secret_access_key", "local")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("removals.table", "removals")
	v.SetDefault("removal_history.table", "removal_history")
	v.SetDefault("cremation_batches.table", "cremation_batches")
	v.SetDefault("stock.table", "stock_items")
	v.SetDefault("price_table.table", "price_table")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", "2m")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.interval", "1m")
	v.SetDefault("scheduler.window", "10m")
	v.SetDefault("scheduler.timezone", "America/Sao_Paulo")

	v.SetDefault("delivery.daily_capacity", 6)

	v.SetDefault("whatsapp.base_url", "")
	v.SetDefault("whatsapp.token", "")
	v.SetDefault("whatsapp.mock", true)
	v.SetDefault("whatsapp.timeout", "10s")
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageDynamoDB:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive")
	}
	if c.Scheduler.Window <= 0 {
		return fmt.Errorf("scheduler window must be positive")
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", c.Scheduler.Timezone, err)
	}
	if c.Delivery.DailyCapacity <= 0 {
		return fmt.Errorf("delivery daily capacity must be positive")
	}
	if !c.WhatsApp.Mock && c.WhatsApp.BaseURL == "" {
		return fmt.Errorf("whatsapp base url is required when mock mode is off")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Location is the timezone scheduled pickups are interpreted in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
