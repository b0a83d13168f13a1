package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Payslip  PayslipConfig  `yaml:"payslip"`
}

type AppConfig struct {
	Env           string `yaml:"env"`
	Port          string `yaml:"port"`
	RunMigrations bool   `yaml:"run_migrations"`
}

type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	MaxRetries int    `yaml:"max_retries"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type KafkaConfig struct {
	Broker             string        `yaml:"broker"`
	OutboxPollInterval time.Duration `yaml:"outbox_poll_interval"`
}

type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"`
	ThrottleWindow time.Duration `yaml:"throttle_window"`
}

type PayslipConfig struct {
	StorageDir string `yaml:"storage_dir"`
}

func defaults() Config {
	return Config{
		App:      AppConfig{Env: "development", Port: "3000"},
		Database: DatabaseConfig{Port: "5432", SSLMode: "disable", MaxRetries: 5},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Kafka:    KafkaConfig{OutboxPollInterval: 3 * time.Second},
		Auth:     AuthConfig{ThrottleWindow: 60 * time.Second},
		Payslip:  PayslipConfig{StorageDir: "storage/payslips"},
	}
}

// Load resolves configuration in three layers: defaults, the optional YAML
// file named by CONFIG_FILE, then environment variables (.env included).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.Env, "APP_ENV")
	setString(&cfg.App.Port, "PORT")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Kafka.Broker, "KAFKA_BROKER")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Payslip.StorageDir, "PAYSLIP_STORAGE_DIR")

	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RUN_MIGRATIONS: %w", err)
		}
		cfg.App.RunMigrations = b
	}
	if err := setDuration(&cfg.Auth.ThrottleWindow, "AUTH_THROTTLE_WINDOW"); err != nil {
		return err
	}
	return setDuration(&cfg.Kafka.OutboxPollInterval, "OUTBOX_POLL_INTERVAL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// ValidateAPI checks the settings the HTTP binary cannot start without.
func (c Config) ValidateAPI() error {
	var errs []error
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	return errors.Join(errs...)
}

// ValidateMessaging checks the settings needed by the worker and the consumer.
func (c Config) ValidateMessaging() error {
	if c.Database.Host == "" {
		return errors.New("DB_HOST is required")
	}
	if c.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	return nil
}
