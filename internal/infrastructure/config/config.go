package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Database   Database
	Prometheus Prometheus
	Redis      Redis
	Auth       Auth
	Storage    Storage
	Uploads    Uploads
	Nats       Nats
	Cache      Cache
	Client     Client
}

type HTTPServer struct {
	Address         string
	Port            int
	BodyLimit       string
	ShutdownTimeout time.Duration
}

type Database struct {
	Driver         string
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
}

type Prometheus struct {
	Address string
	Port    int
}

type Redis struct {
	Enabled  bool
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type Auth struct {
	JWTSecret string
	Issuer    string
	LoginPath string
}

type Storage struct {
	Dir           string
	PublicBaseURL string
}

type Uploads struct {
	MaxBytes        int64
	OrphanGrace     time.Duration
	SweepSchedule   string
	SweepBatchLimit int
}

type Nats struct {
	URL string
}

type Cache struct {
	ProfileTTL time.Duration
}

// Client configures cmd/blockctl.
type Client struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.body_limit", "12M")
	viper.SetDefault("http_server.shutdown_timeout", 30*time.Second)

	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "admin")
	viper.SetDefault("database.host", "content-db")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "noders")
	viper.SetDefault("database.migrations_path", "migrations")

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9103)

	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.address", "redis")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.issuer", "")
	viper.SetDefault("auth.login_path", "/login")

	viper.SetDefault("storage.dir", "data/media")
	viper.SetDefault("storage.public_base_url", "/media")

	viper.SetDefault("uploads.max_bytes", 5<<20)
	viper.SetDefault("uploads.orphan_grace", 24*time.Hour)
	viper.SetDefault("uploads.sweep_schedule", "@every 1h")
	viper.SetDefault("uploads.sweep_batch_limit", 200)

	viper.SetDefault("nats.url", "")

	viper.SetDefault("cache.profile_ttl", 5*time.Minute)

	viper.SetDefault("client.base_url", "http://localhost:8080")
	viper.SetDefault("client.token", "")
	viper.SetDefault("client.timeout", 15*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %s", err)
			os.Exit(1)
		}
		log.Printf("Config file not found, using defaults and environment")
	}

	config := &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address:         viper.GetString("http_server.address"),
			Port:            viper.GetInt("http_server.port"),
			BodyLimit:       viper.GetString("http_server.body_limit"),
			ShutdownTimeout: viper.GetDuration("http_server.shutdown_timeout"),
		},
		Database: Database{
			Driver:         viper.GetString("database.driver"),
			Username:       viper.GetString("database.username"),
			Password:       viper.GetString("database.password"),
			Host:           viper.GetString("database.host"),
			Port:           viper.GetString("database.port"),
			DbName:         viper.GetString("database.db_name"),
			MigrationsPath: viper.GetString("database.migrations_path"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Enabled:  viper.GetBool("redis.enabled"),
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Auth: Auth{
			JWTSecret: viper.GetString("auth.jwt_secret"),
			Issuer:    viper.GetString("auth.issuer"),
			LoginPath: viper.GetString("auth.login_path"),
		},
		Storage: Storage{
			Dir:           viper.GetString("storage.dir"),
			PublicBaseURL: viper.GetString("storage.public_base_url"),
		},
		Uploads: Uploads{
			MaxBytes:        viper.GetInt64("uploads.max_bytes"),
			OrphanGrace:     viper.GetDuration("uploads.orphan_grace"),
			SweepSchedule:   viper.GetString("uploads.sweep_schedule"),
			SweepBatchLimit: viper.GetInt("uploads.sweep_batch_limit"),
		},
		Nats: Nats{
			URL: viper.GetString("nats.url"),
		},
		Cache: Cache{
			ProfileTTL: viper.GetDuration("cache.profile_ttl"),
		},
		Client: Client{
			BaseURL: viper.GetString("client.base_url"),
			Token:   viper.GetString("client.token"),
			Timeout: viper.GetDuration("client.timeout"),
		},
	}

	return config
}
