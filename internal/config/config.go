package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger   string         `yaml:"jaeger" env:"JAEGER"`
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	QPX      QPXConfig      `yaml:"qpx"`
	Airports AirportsConfig `yaml:"airports"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	SearchTimeout   time.Duration `yaml:"search_timeout" env:"HTTP_SEARCH_TIMEOUT" env-default:"12s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
}

type QPXConfig struct {
	BaseURL   string        `yaml:"base_url" env:"QPX_BASE_URL" env-default:"https://www.googleapis.com"`
	APIKey    string        `yaml:"api_key" env:"QPX_API_KEY"`
	Solutions int           `yaml:"solutions" env:"QPX_SOLUTIONS" env-default:"20"`
	Timeout   time.Duration `yaml:"timeout" env:"QPX_TIMEOUT" env-default:"10s"`
}

type AirportsConfig struct {
	Path string `yaml:"path" env:"AIRPORTS_PATH" env-default:"data/airports.json"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exists: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
