package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env           string              `yaml:"env" env:"ENV" env-default:"local"`
	HTTP          HTTPConfig          `yaml:"http"`
	Remote        RemoteConfig        `yaml:"remote"`
	FileStore     FileStoreConfig     `yaml:"file_store"`
	FeaturedCache FeaturedCacheConfig `yaml:"featured_cache"`
	Redis         RedisConf           `yaml:"redis"`
	Auth          AuthConfig          `yaml:"auth"`
}

type HTTPConfig struct {
	Host    string        `yaml:"host" env:"HTTP_HOST"`
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
}

// RemoteConfig - удаленное хранилище. Пустой или невалидный url означает,
// что авторитетным становится файловое хранилище.
type RemoteConfig struct {
	URL          string        `yaml:"url" env:"REMOTE_URL"`
	ServiceKey   string        `yaml:"service_key" env:"REMOTE_SERVICE_KEY"`
	HostPattern  string        `yaml:"host_pattern" env:"REMOTE_HOST_PATTERN"`
	MinKeyLength int           `yaml:"min_key_length" env:"REMOTE_MIN_KEY_LENGTH" env-default:"16"`
	Timeout      time.Duration `yaml:"timeout" env:"REMOTE_TIMEOUT" env-default:"5s"`
	MaxConns     int32         `yaml:"max_conns" env:"REMOTE_MAX_CONNS" env-default:"10"`
	// Resources served by the remote store; empty means every resource.
	Resources []string `yaml:"resources" env:"REMOTE_RESOURCES" env-separator:","`
}

type FileStoreConfig struct {
	Dir string `yaml:"dir" env:"FILE_STORE_DIR" env-default:"./data"`
	// Restricted marks a read-only or ephemeral filesystem.
	Restricted bool `yaml:"restricted" env:"FILE_STORE_RESTRICTED"`
}

type FeaturedCacheConfig struct {
	Driver string        `yaml:"driver" env:"FEATURED_CACHE_DRIVER" env-default:"memory"`
	TTL    time.Duration `yaml:"ttl" env:"FEATURED_CACHE_TTL" env-default:"5m"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

type AuthConfig struct {
	// JWTSecret enables the admin gate on mutating routes when set.
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
}

func MustLoad() *Config {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		var cfg Config
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read config from env: " + err.Error())
		}
		return &cfg
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config", Path: configPath, Err: os.ErrNotExist}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
