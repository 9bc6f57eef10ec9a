package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"

	"cardiopredict/logging"
	"cardiopredict/ml"
)

type Config struct {
	HTTP  HTTPConfig     `yaml:"http"`
	Model ModelConfig    `yaml:"model"`
	WS    WSConfig       `yaml:"ws"`
	Log   logging.Config `yaml:"log"`
}

type HTTPConfig struct {
	Host              string        `yaml:"host" env:"HEART_HOST"`
	Port              int           `yaml:"port" env:"HEART_PORT"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" env:"HEART_MAX_BODY_BYTES"`
	AllowedOrigins    []string      `yaml:"allowed_origins" env:"HEART_ALLOWED_ORIGINS" envSeparator:","`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"HEART_SHUTDOWN_TIMEOUT"`
}

type ModelConfig struct {
	Path      string `yaml:"path" env:"HEART_MODEL_PATH"`
	CacheSize int    `yaml:"cache_size" env:"HEART_MODEL_CACHE_SIZE"`
	Watch     bool   `yaml:"watch" env:"HEART_MODEL_WATCH"`
}

type WSConfig struct {
	PingInterval time.Duration `yaml:"ping_interval"`
	PongWait     time.Duration `yaml:"pong_wait"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Host:              "0.0.0.0",
			Port:              8000,
			MaxBodyBytes:      1 << 20,
			AllowedOrigins:    []string{"*"},
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Model: ModelConfig{
			Path:  ml.DefaultArtifactPath,
			Watch: true,
		},
		WS: WSConfig{
			PingInterval: 30 * time.Second,
			PongWait:     60 * time.Second,
		},
		Log: logging.DefaultConfig(),
	}
}

// Locate 查找配置文件：先当前目录，再上级目录
func Locate() string {
	path := "config.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := os.Stat(filepath.Join("..", path)); err == nil {
			return filepath.Join("..", path)
		}
	}
	return path
}

// Load 加载配置：默认值，然后YAML文件（不存在则跳过），最后HEART_*环境变量
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.max_body_bytes must be positive")
	}
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if c.Model.CacheSize < 0 {
		return errors.New("model.cache_size must not be negative")
	}
	if c.WS.PingInterval <= 0 || c.WS.PongWait <= c.WS.PingInterval {
		return errors.New("ws.pong_wait must exceed a positive ws.ping_interval")
	}
	return nil
}

// Addr 监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}
