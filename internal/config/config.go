package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// JSONMode asks providers for a JSON option list before falling back
	// to the heuristic parser.
	JSONMode       bool          `yaml:"json_mode,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
	MaxRetries     int           `yaml:"max_retries,omitempty"`

	Agents   map[string]AgentParams `yaml:"agents,omitempty"`
	Database DatabaseConfig         `yaml:"database"`
	Redis    *RedisConfig           `yaml:"redis,omitempty"`
	Server   ServerConfig           `yaml:"server"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:       "ollama",
		Model:          "llama3.1:8b",
		RequestTimeout: 60 * time.Second,
		MaxRetries:     3,
		Agents:         DefaultAgentParams(),
		Database: DatabaseConfig{
			Driver: "sqlite3",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hookline"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultDatabasePath is where the sqlite database lives when no DSN is set.
func DefaultDatabasePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hookline.db"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file. It returns nil, nil when no file exists.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

// Resolve loads the config file, falling back to defaults, and applies
// environment overrides. The bool reports whether a config file was found.
func Resolve() (*Config, bool, error) {
	cfg, err := Load()
	if err != nil {
		return nil, false, err
	}
	found := cfg != nil
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ApplyEnv(cfg)
	return cfg, found, nil
}

// ApplyEnv overlays HOOKLINE_* environment variables, including those
// from a .env file in the working directory.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HOOKLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if s := v.GetString("provider"); s != "" {
		cfg.Provider = s
	}
	if s := v.GetString("api_key"); s != "" {
		cfg.APIKey = s
	}
	if s := v.GetString("model"); s != "" {
		cfg.Model = s
	}
	if s := v.GetString("base_url"); s != "" {
		cfg.BaseURL = s
	}
	if v.IsSet("json_mode") {
		cfg.JSONMode = v.GetBool("json_mode")
	}
	if d := v.GetDuration("request_timeout"); d > 0 {
		cfg.RequestTimeout = d
	}
	if n := v.GetInt("max_retries"); n > 0 {
		cfg.MaxRetries = n
	}
	if s := v.GetString("database.driver"); s != "" {
		cfg.Database.Driver = s
	}
	if s := v.GetString("database.dsn"); s != "" {
		cfg.Database.DSN = s
	}
	if s := v.GetString("redis.addr"); s != "" {
		if cfg.Redis == nil {
			cfg.Redis = &RedisConfig{TTL: 30 * time.Minute}
		}
		cfg.Redis.Addr = s
		cfg.Redis.Password = v.GetString("redis.password")
	}
	if s := v.GetString("server.addr"); s != "" {
		cfg.Server.Addr = s
	}
	if s := v.GetString("server.allowed_origins"); s != "" {
		cfg.Server.AllowedOrigins = strings.Split(s, ",")
	}
}

func (c *Config) fillDefaults() {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	defaults := DefaultAgentParams()
	if c.Agents == nil {
		c.Agents = defaults
		return
	}
	for role, p := range defaults {
		if _, ok := c.Agents[role]; !ok {
			c.Agents[role] = p
		}
	}
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// HasCredentials reports whether the configured provider can be used.
func (c *Config) HasCredentials() bool {
	p := GetProvider(c.Provider)
	if p == nil {
		return false
	}
	if c.Provider == "custom" {
		return c.BaseURL != ""
	}
	return !p.NeedsAPIKey || c.APIKey != ""
}
