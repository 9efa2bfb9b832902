package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

type AppConfig struct {
	Name        string        `mapstructure:"name" validate:"required"`
	Environment string        `mapstructure:"environment" validate:"required,oneof=development staging production test"`
	Debug       bool          `mapstructure:"debug"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Port        string        `mapstructure:"port" validate:"required"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	Host            string        `mapstructure:"host" validate:"required_if=Driver postgres"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name" validate:"required_if=Driver postgres"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	SQLitePath      string        `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type JWTConfig struct {
	Secret         string        `mapstructure:"secret" validate:"required"`
	ExpirationTime time.Duration `mapstructure:"expiration_time" validate:"gt=0"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host" validate:"required_if=Enabled true"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database" validate:"gte=0"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	TTL          time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	Request  int `mapstructure:"request"`
	Duration int `mapstructure:"duration"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// SeedConfig holds the super admin created by the seed command.
type SeedConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

// binding maps a config key to its environment variable and default.
type binding struct {
	key string
	env string
	def any
}

var bindings = []binding{
	{"app.name", "APP_NAME", constants.AppName},
	{"app.environment", "APP_ENV", constants.DefaultEnvironment},
	{"app.port", "APP_PORT", constants.DefaultPort},
	{"app.debug", "APP_DEBUG", true},
	{"app.timeout", "APP_TIMEOUT", 30 * time.Second},

	{"database.driver", "DB_DRIVER", "postgres"},
	{"database.host", "DB_HOST", "localhost"},
	{"database.port", "DB_PORT", 5432},
	{"database.name", "DB_NAME", "admin_panel"},
	{"database.user", "DB_USER", "postgres"},
	{"database.password", "DB_PASSWORD", "postgres"},
	{"database.sslmode", "DB_SSL_MODE", "disable"},
	{"database.sqlite_path", "DB_SQLITE_PATH", "admin_panel.db"},
	{"database.max_idle_conns", "DB_MAX_IDLE_CONNS", 10},
	{"database.max_open_conns", "DB_MAX_OPEN_CONNS", 100},
	{"database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME", time.Hour},
	{"database.conn_max_idle_time", "DB_CONN_MAX_IDLE_TIME", 10 * time.Minute},

	{"redis.enabled", "REDIS_ENABLED", false},
	{"redis.host", "REDIS_HOST", "localhost"},
	{"redis.port", "REDIS_PORT", 6379},
	{"redis.password", "REDIS_PASSWORD", ""},
	{"redis.database", "REDIS_DB", 0},
	{"redis.pool_size", "REDIS_POOL_SIZE", 10},
	{"redis.min_idle_conns", "REDIS_MIN_IDLE_CONNS", 5},
	{"redis.dial_timeout", "REDIS_DIAL_TIMEOUT", 5 * time.Second},
	{"redis.read_timeout", "REDIS_READ_TIMEOUT", 3 * time.Second},
	{"redis.write_timeout", "REDIS_WRITE_TIMEOUT", 3 * time.Second},
	{"redis.ttl", "REDIS_TTL", 5 * time.Minute},

	{"jwt.secret", "JWT_SECRET", "default_secret_key_change_in_production"},
	{"jwt.expiration_time", "JWT_EXPIRATION", 24 * time.Hour},

	{"rate_limit.request", "RATE_LIMIT_MAX_REQUEST", 60},
	{"rate_limit.duration", "RATE_LIMIT_DURATION", 60},

	{"log.path", "LOGS_PATH", ""},
	{"log.level", "LOG_LEVEL", ""},

	{"seed.admin_email", "SUPER_ADMIN_USERNAME", ""},
	{"seed.admin_password", "SUPER_ADMIN_PASSWORD", ""},
}

// LoadConfig reads .env, an optional config.yaml and the environment.
// Environment variables win over the file, the file over defaults.
func LoadConfig() (*Config, error) {
	// Missing .env is fine outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return Load(v)
}

// Load binds defaults and environment variables onto v and decodes the result.
func Load(v *viper.Viper) (*Config, error) {
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == constants.EnvProduction
}

func (c *Config) DatabaseConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
