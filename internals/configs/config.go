package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Midtrans MidtransConfig `mapstructure:"midtrans"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Env            string        `mapstructure:"env"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowOrigins   string        `mapstructure:"allow_origins"`
}

type DatabaseConfig struct {
	URL              string        `mapstructure:"url"`
	Host             string        `mapstructure:"host"`
	Port             string        `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	Name             string        `mapstructure:"name"`
	SSLMode          string        `mapstructure:"sslmode"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	MaxOpenConns     int           `mapstructure:"max_open_conns"`
	MaxIdleConns     int           `mapstructure:"max_idle_conns"`
	ConnMaxIdleTime  time.Duration `mapstructure:"conn_max_idle_time"`
	ConnMaxLifetime  time.Duration `mapstructure:"conn_max_lifetime"`
	SlowThreshold    time.Duration `mapstructure:"slow_threshold"`
	AutoMigrate      bool          `mapstructure:"auto_migrate"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// Redis is optional; an empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type UploadConfig struct {
	Dir       string `mapstructure:"dir"`
	PublicURL string `mapstructure:"public_url"`
	MaxWidth  int    `mapstructure:"max_width"`
	Quality   int    `mapstructure:"quality"`
}

type MidtransConfig struct {
	ServerKey string `mapstructure:"server_key"`
	UseProd   bool   `mapstructure:"use_prod"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadEnv loads .env into the process environment when present.
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		logrus.Info("running on Railway, using system environment")
		return
	}
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env not found, using system environment")
		return
	}
	logrus.Info(".env loaded")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 90*time.Second)
	v.SetDefault("server.allow_origins", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "skb")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.statement_timeout", 3*time.Second)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_idle_time", 60*time.Second)
	v.SetDefault("database.conn_max_lifetime", 10*time.Minute)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("jwt.expiration", 24*time.Hour)

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 60*time.Second)

	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.public_url", "/uploads")
	v.SetDefault("upload.max_width", 1600)
	v.SetDefault("upload.quality", 82)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// envKeys maps config keys onto the flat variable names used in deployments.
var envKeys = map[string]string{
	"server.port":           "PORT",
	"server.env":            "APP_ENV",
	"server.allow_origins":  "CORS_ALLOW_ORIGINS",
	"database.url":          "DATABASE_URL",
	"database.host":         "DB_HOST",
	"database.port":         "DB_PORT",
	"database.user":         "DB_USER",
	"database.password":     "DB_PASSWORD",
	"database.name":         "DB_NAME",
	"database.sslmode":      "DB_SSLMODE",
	"database.auto_migrate": "DB_AUTO_MIGRATE",
	"jwt.secret":            "JWT_SECRET",
	"jwt.expiration":        "JWT_EXPIRATION",
	"redis.addr":            "REDIS_ADDR",
	"redis.password":        "REDIS_PASSWORD",
	"redis.db":              "REDIS_DB",
	"redis.ttl":             "REDIS_TTL",
	"upload.dir":            "UPLOAD_DIR",
	"upload.public_url":     "UPLOAD_PUBLIC_URL",
	"midtrans.server_key":   "MIDTRANS_SERVER_KEY",
	"midtrans.use_prod":     "MIDTRANS_USE_PROD",
	"log.level":             "LOG_LEVEL",
	"log.format":            "LOG_FORMAT",
}

// Load reads the environment (after LoadEnv) into a Config.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		logrus.Warn("JWT_SECRET is not set, admin endpoints will reject every token")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Server.Env == "production"
}
