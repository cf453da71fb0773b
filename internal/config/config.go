package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env           string          `yaml:"env" env:"ENV" env-default:"local"`
	DSN           string          `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
	AdminKey      string          `yaml:"admin_key" env:"ADMIN_KEY" env-required:"true"`
	CookieHashKey string          `yaml:"cookie_hash_key" env:"COOKIE_HASH_KEY" env-required:"true"`
	SiteURL       string          `yaml:"site_url" env:"SITE_URL" env-default:"http://localhost:3000"`
	HTTP          HTTPConfig      `yaml:"http"`
	Session       SessionConfig   `yaml:"session"`
	Redis         RedisConf       `yaml:"redis"`
	Media         MediaConfig     `yaml:"media"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"60s"`
}

type SessionConfig struct {
	// Driver is either "memory" or "redis".
	Driver string        `yaml:"driver" env:"SESSION_DRIVER" env-default:"memory"`
	TTL    time.Duration `yaml:"ttl" env-default:"24h"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

type MediaConfig struct {
	// Driver is either "local" or "s3".
	Driver  string   `yaml:"driver" env:"MEDIA_DRIVER" env-default:"local"`
	BaseDir string   `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string   `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
	MaxSize int64    `yaml:"max_size" env-default:"10485760"`
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket" env:"S3_BUCKET"`
	Region    string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
	PublicURL string `yaml:"public_url" env:"S3_PUBLIC_URL"`
}

type RateLimitConfig struct {
	ReviewMax    int           `yaml:"review_max" env-default:"3"`
	ReviewWindow time.Duration `yaml:"review_window" env-default:"1h"`
	AuthMax      int           `yaml:"auth_max" env-default:"5"`
	AuthWindow   time.Duration `yaml:"auth_window" env-default:"15m"`
}

func MustLoad(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	// .env is optional, real environment wins
	_ = godotenv.Load()

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}
