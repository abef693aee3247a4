package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "MANGASRC_"

type Config struct {
	Source           string `yaml:"source"`
	UserAgent        string `yaml:"user_agent"`
	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	Debug            bool   `yaml:"debug"`
	LogFormat        string `yaml:"log_format"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`
	SitesFile        string `yaml:"sites_file"`
}

// Options carries CLI flag values. Zero values leave the loaded config
// untouched.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Source           string
	UserAgent        string
	Cookie           string
	CookieFile       string
	TimeoutSeconds   int
	LogFormat        string
	CloudflareBypass bool
	SitesFile        string
	// EnvFile is read before the environment overlay; missing files are
	// ignored. Defaults to ".env".
	EnvFile string
}

func DefaultConfig() *Config {
	return &Config{
		TimeoutSeconds: 30,
		LogFormat:      "console",
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged layers defaults, the active profile, the environment and
// flags, in that order. The returned string names where the file layer
// came from.
func LoadMerged(opts Options) (*Config, string, error) {
	cfg, used, err := loadBase(opts)
	if err != nil {
		return nil, "", err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	mergeEnv(cfg)
	mergeConfig(cfg, opts)
	if err := normalizeDefaults(cfg); err != nil {
		return nil, "", err
	}

	return cfg, used, nil
}

func loadBase(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		return DefaultConfig(), "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		return DefaultConfig(), "(default config in memory)\nRun `mangasrc config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	return cfg, activePath, nil
}

func mergeEnv(c *Config) {
	c.Source = getEnv("SOURCE", c.Source)
	c.UserAgent = getEnv("USER_AGENT", c.UserAgent)
	c.Cookie = getEnv("COOKIE", c.Cookie)
	c.CookieFile = getEnv("COOKIE_FILE", c.CookieFile)
	c.TimeoutSeconds = getEnvAsInt("TIMEOUT_SECONDS", c.TimeoutSeconds)
	c.Debug = getEnvAsBool("DEBUG", c.Debug)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.CloudflareBypass = getEnvAsBool("CLOUDFLARE_BYPASS", c.CloudflareBypass)
	c.SitesFile = getEnv("SITES_FILE", c.SitesFile)
}

func mergeConfig(c *Config, o Options) {
	if o.Source != "" {
		c.Source = o.Source
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.TimeoutSeconds != 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.Debug {
		c.Debug = true
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.SitesFile != "" {
		c.SitesFile = o.SitesFile
	}
}

func normalizeDefaults(c *Config) error {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	switch c.LogFormat {
	case "":
		c.LogFormat = "console"
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q, expected console|json", c.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c *Config) Print() {
	if c.Source != "" {
		fmt.Printf(" -source: %s\n", c.Source)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.Cookie != "" {
		fmt.Println(" -cookie: (set)")
	}
	fmt.Printf(" -timeout_seconds: %d\n", c.TimeoutSeconds)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	fmt.Printf(" -log_format: %s\n", c.LogFormat)
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.SitesFile != "" {
		fmt.Printf(" -sites_file: %s\n", c.SitesFile)
	}
}
