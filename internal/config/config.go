package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Minio    MinioConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	TTLMinutes int
}

func (j *JWTConfig) TTL() time.Duration {
	return time.Duration(j.TTLMinutes) * time.Minute
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Load reads configuration from the environment. Missing signing key or
// database URL is an error: the process must refuse to start rather than
// issue insecure tokens.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("minio_endpoint", "localhost:9000")
	v.SetDefault("minio_bucket", "taskboard-attachments")
	v.SetDefault("jwt_issuer", "taskboard")
	v.SetDefault("jwt_audience", "taskboard-api")
	v.SetDefault("jwt_ttl_minutes", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("port"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database_url"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		Minio: MinioConfig{
			Endpoint:  v.GetString("minio_endpoint"),
			AccessKey: v.GetString("minio_access_key"),
			SecretKey: v.GetString("minio_secret_key"),
			UseSSL:    v.GetBool("minio_use_ssl"),
			Bucket:    v.GetString("minio_bucket"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt_secret"),
			Issuer:     v.GetString("jwt_issuer"),
			Audience:   v.GetString("jwt_audience"),
			TTLMinutes: v.GetInt("jwt_ttl_minutes"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	if cfg.JWT.TTLMinutes <= 0 {
		return nil, errors.New("JWT_TTL_MINUTES must be positive")
	}

	return cfg, nil
}
