package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up in the project root
const FileName = "site.toml"

// EnvPrefix marks environment variables that override config values
const EnvPrefix = "DCSITE_"

// SiteConfig contains metadata about the site
type SiteConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	BaseURL     string `toml:"base-url"`
	Language    string `toml:"language"`
	Content     string `toml:"content"` // Content directory, defaults to "content"
	Assets      string `toml:"assets"`  // Assets directory, defaults to "assets"
}

// DefaultSiteConfig returns a site config with defaults
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Title:       "Dynamic Control Systems",
		Description: "Industrial automation in Kochi: authorized channel partner of Mitsubishi Electric.",
		BaseURL:     "http://localhost:3000",
		Language:    "en",
		Content:     "content",
		Assets:      "assets",
	}
}

// ThumbnailConfig controls thumbnail generation for raster product images
type ThumbnailConfig struct {
	Enabled bool `toml:"enabled"`
	Width   int  `toml:"width"`
	Quality int  `toml:"quality"`
}

// BuildConfig contains build settings
type BuildConfig struct {
	BuildDir       string          `toml:"build-dir"`
	ExtraWatchDirs []string        `toml:"extra-watch-dirs"`
	Thumbnails     ThumbnailConfig `toml:"thumbnails"`
}

// DefaultBuildConfig returns a build config with defaults
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		BuildDir:       "public",
		ExtraWatchDirs: []string{},
		Thumbnails: ThumbnailConfig{
			Enabled: true,
			Width:   480,
			Quality: 85,
		},
	}
}

// S3Config locates product images in an S3 compatible bucket
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	AccessKey string `toml:"access-key"`
	SecretKey string `toml:"secret-key"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use-ssl"`
}

// AssetsConfig selects where images are imported from
type AssetsConfig struct {
	Source string   `toml:"source"` // "dir" or "s3"
	S3     S3Config `toml:"s3"`
}

// ServerConfig contains settings for `serve`
type ServerConfig struct {
	Host         string  `toml:"host"`
	Port         int     `toml:"port"`
	ContactRate  float64 `toml:"contact-rate"` // submissions per second
	ContactBurst int     `toml:"contact-burst"`
}

// DefaultServerConfig returns server config with defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "127.0.0.1",
		Port:         3000,
		ContactRate:  0.2,
		ContactBurst: 5,
	}
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the top-level configuration
type Config struct {
	Site      SiteConfig             `toml:"site"`
	Build     BuildConfig            `toml:"build"`
	Assets    AssetsConfig           `toml:"assets"`
	Server    ServerConfig           `toml:"server"`
	Log       LogConfig              `toml:"log"`
	Redirects map[string]string      `toml:"redirects"`
	Output    map[string]interface{} `toml:"output"`
	raw       map[string]interface{} // Raw TOML values
}

// NewDefaultConfig returns a config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Site:      DefaultSiteConfig(),
		Build:     DefaultBuildConfig(),
		Assets:    AssetsConfig{Source: "dir"},
		Server:    DefaultServerConfig(),
		Log:       LogConfig{Level: "info", Format: "text"},
		Redirects: make(map[string]string),
		Output:    make(map[string]interface{}),
		raw:       make(map[string]interface{}),
	}
}

// LoadFromFile loads configuration from a site.toml file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := LoadFromString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromString loads configuration from a TOML string
func LoadFromString(content string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := toml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := toml.Unmarshal([]byte(content), &cfg.raw); err != nil {
		return nil, fmt.Errorf("failed to parse raw config: %w", err)
	}

	cfg.UpdateFromEnv()
	cfg.normalize()
	return cfg, nil
}

// normalize trims values that are compared or concatenated later
func (c *Config) normalize() {
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	c.Assets.Source = strings.ToLower(strings.TrimSpace(c.Assets.Source))
	if c.Assets.Source == "" {
		c.Assets.Source = "dir"
	}
	if c.Redirects == nil {
		c.Redirects = make(map[string]string)
	}
}

// UpdateFromEnv updates config from environment variables
// Variables starting with DCSITE_ are used
// DCSITE_FOO_BAR -> foo-bar
// DCSITE_FOO__BAR -> foo.bar
func (c *Config) UpdateFromEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}

		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], EnvPrefix)
		value := parts[1]

		// Convert DCSITE_KEY format to config key
		configKey := strings.ToLower(key)
		configKey = strings.ReplaceAll(configKey, "__", ".")
		configKey = strings.ReplaceAll(configKey, "_", "-")

		c.Set(configKey, value)
	}
	c.normalize()
}

// Set sets a configuration value using dot notation (e.g., "site.title", "assets.s3.bucket")
func (c *Config) Set(key, value string) {
	parts := strings.Split(key, ".")

	switch parts[0] {
	case "site":
		if len(parts) >= 2 {
			c.setSiteValue(parts[1:], value)
		}
	case "build":
		if len(parts) >= 2 {
			c.setBuildValue(parts[1:], value)
		}
	case "assets":
		if len(parts) >= 2 {
			c.setAssetsValue(parts[1:], value)
		}
	case "server":
		if len(parts) >= 2 {
			c.setServerValue(parts[1:], value)
		}
	case "log":
		if len(parts) >= 2 {
			c.setLogValue(parts[1:], value)
		}
	}
	// Always mirror into the raw tree so Get sees overrides
	c.setRawValue(parts, value)
	c.normalize()
}

func (c *Config) setSiteValue(parts []string, value string) {
	switch strings.ToLower(parts[0]) {
	case "title":
		c.Site.Title = value
	case "description":
		c.Site.Description = value
	case "base-url":
		c.Site.BaseURL = value
	case "language":
		c.Site.Language = value
	case "content":
		c.Site.Content = value
	case "assets":
		c.Site.Assets = value
	}
}

func (c *Config) setBuildValue(parts []string, value string) {
	switch strings.ToLower(parts[0]) {
	case "build-dir":
		c.Build.BuildDir = value
	case "thumbnails":
		if len(parts) < 2 {
			return
		}
		switch strings.ToLower(parts[1]) {
		case "enabled":
			c.Build.Thumbnails.Enabled = parseBool(value)
		case "width":
			if n, err := strconv.Atoi(value); err == nil {
				c.Build.Thumbnails.Width = n
			}
		case "quality":
			if n, err := strconv.Atoi(value); err == nil {
				c.Build.Thumbnails.Quality = n
			}
		}
	}
}

func (c *Config) setAssetsValue(parts []string, value string) {
	switch strings.ToLower(parts[0]) {
	case "source":
		c.Assets.Source = value
	case "s3":
		if len(parts) < 2 {
			return
		}
		s3 := &c.Assets.S3
		switch strings.ToLower(parts[1]) {
		case "endpoint":
			s3.Endpoint = value
		case "bucket":
			s3.Bucket = value
		case "prefix":
			s3.Prefix = value
		case "access-key":
			s3.AccessKey = value
		case "secret-key":
			s3.SecretKey = value
		case "region":
			s3.Region = value
		case "use-ssl":
			s3.UseSSL = parseBool(value)
		}
	}
}

func (c *Config) setServerValue(parts []string, value string) {
	switch strings.ToLower(parts[0]) {
	case "host":
		c.Server.Host = value
	case "port":
		if n, err := strconv.Atoi(value); err == nil {
			c.Server.Port = n
		}
	case "contact-rate":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			c.Server.ContactRate = f
		}
	case "contact-burst":
		if n, err := strconv.Atoi(value); err == nil {
			c.Server.ContactBurst = n
		}
	}
}

func (c *Config) setLogValue(parts []string, value string) {
	switch strings.ToLower(parts[0]) {
	case "level":
		c.Log.Level = value
	case "format":
		c.Log.Format = value
	}
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

func (c *Config) setRawValue(parts []string, value string) {
	if c.raw == nil {
		c.raw = make(map[string]interface{})
	}
	current := c.raw
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// Get retrieves a value from the config using dot notation
func (c *Config) Get(key string) (interface{}, bool) {
	parts := strings.Split(key, ".")

	if parts[0] == "output" && len(parts) > 1 {
		if val, ok := c.Output[parts[1]]; ok {
			return val, true
		}
	}

	// Check raw values
	current := c.raw
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		m, isMap := v.(map[string]interface{})
		if !isMap {
			if i == len(parts)-1 {
				return v, true
			}
			return nil, false
		}
		current = m
	}

	return current, true
}

// GetString retrieves a string value from config
func (c *Config) GetString(key string, defaultVal string) string {
	val, ok := c.Get(key)
	if !ok {
		return defaultVal
	}
	if s, isStr := val.(string); isStr {
		return s
	}
	return defaultVal
}

// Addr is the host:port the dev server binds to
func (c *Config) Addr() string {
	return c.Server.Addr()
}

// Addr joins host and port; IPv6 hosts are bracketed
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
