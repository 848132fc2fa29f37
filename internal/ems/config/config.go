// Package config 加载 EMS 的运行配置
//
// 优先级：环境变量 > EMS_CONFIG 指定的 YAML 文件 > 默认值。
// 启动时会尝试加载当前目录下的 .env 文件，文件不存在时忽略。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	// Address HTTP 监听地址，环境变量 EMS_ADDRESS，默认 0.0.0.0:7777
	Address string `yaml:"address"`

	// DataDir 数据目录，SQLite 数据库默认放在这里
	// 环境变量 EMS_DATA_DIR，默认 ~/.local/share/ems
	DataDir string `yaml:"dataDir"`

	// DBDriver sqlite 或 postgres，环境变量 EMS_DB_DRIVER
	DBDriver string `yaml:"dbDriver"`

	// DBDSN sqlite 时为数据库文件路径，postgres 时为连接串
	// 环境变量 EMS_DB_DSN；sqlite 未指定时为 {DataDir}/ems.db
	DBDSN string `yaml:"dbDSN"`

	// LogLevel zerolog 日志级别，环境变量 EMS_LOG_LEVEL，默认 info
	LogLevel string `yaml:"logLevel"`
}

func New() (*Config, error) {
	// .env 只补充尚未设置的环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path := os.Getenv("EMS_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"EMS_ADDRESS":   &c.Address,
		"EMS_DATA_DIR":  &c.DataDir,
		"EMS_DB_DRIVER": &c.DBDriver,
		"EMS_DB_DSN":    &c.DBDSN,
		"EMS_LOG_LEVEL": &c.LogLevel,
	}
	for key, field := range overrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Address == "" {
		c.Address = "0.0.0.0:7777"
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.DBDriver == "" {
		c.DBDriver = DriverSQLite
	}
	if c.DBDSN == "" && c.DBDriver == DriverSQLite {
		c.DBDSN = filepath.Join(c.DataDir, "ems.db")
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
}

// Validate 检查配置是否可用
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("EMS_DB_DSN is required for driver %s", c.DBDriver)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level 返回解析后的日志级别
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// defaultDataDir 用户主目录下的 .local/share/ems，取不到主目录时使用 ./data
func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "ems")
	}
	return filepath.Join(".", "data")
}
