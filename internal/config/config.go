package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/newthinker/navscope/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Provider  ProviderConfig  `mapstructure:"provider"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Report    ReportConfig    `mapstructure:"report"`
	Search    SearchConfig    `mapstructure:"search"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ProviderConfig selects where NAV data and the scheme catalog come from.
type ProviderConfig struct {
	Name       string        `mapstructure:"name"`    // "mfapi"
	BaseURL    string        `mapstructure:"base_url"`
	Catalog    string        `mapstructure:"catalog"` // "mfapi" or "amfi"
	CatalogURL string        `mapstructure:"catalog_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds the daily response cache settings.
type CacheConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type AnalyticsConfig struct {
	Horizons []int `mapstructure:"horizons"`
}

type ReportConfig struct {
	Format   string `mapstructure:"format"`   // "text", "json" or "markdown"
	Currency string `mapstructure:"currency"` // ISO 4217 code for NAV display
	Style    string `mapstructure:"style"`    // glamour style for markdown
}

type SearchConfig struct {
	Limit int `mapstructure:"limit"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"` // written on exit when set
}

// Load reads configuration from file, layered over Defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// Support environment variable overrides
	v.SetEnvPrefix("NAVSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("provider.name", d.Provider.Name)
	v.SetDefault("provider.base_url", d.Provider.BaseURL)
	v.SetDefault("provider.catalog", d.Provider.Catalog)
	v.SetDefault("provider.catalog_url", d.Provider.CatalogURL)
	v.SetDefault("provider.timeout", d.Provider.Timeout)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.type", d.Cache.Type)
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("analytics.horizons", d.Analytics.Horizons)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.currency", d.Report.Currency)
	v.SetDefault("report.style", d.Report.Style)
	v.SetDefault("search.limit", d.Search.Limit)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:       "mfapi",
			BaseURL:    "https://api.mfapi.in",
			Catalog:    "amfi",
			CatalogURL: "https://www.amfiindia.com/spages/NAVAll.txt",
			Timeout:    15 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: false,
			Type:    "localfs",
			Path:    defaultCachePath(),
		},
		Analytics: AnalyticsConfig{
			Horizons: []int{1, 3, 5},
		},
		Report: ReportConfig{
			Format:   "text",
			Currency: "INR",
			Style:    "auto",
		},
		Search: SearchConfig{
			Limit: 5,
		},
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".navscope-cache"
	}
	return dir + string(os.PathSeparator) + "navscope"
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Provider validation
	if c.Provider.Name != "mfapi" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown provider %q", c.Provider.Name))
	}
	if c.Provider.BaseURL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("provider base_url required"))
	}
	switch c.Provider.Catalog {
	case "mfapi":
	case "amfi":
		if c.Provider.CatalogURL == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("catalog_url required when catalog is amfi"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("catalog must be mfapi or amfi, got %q", c.Provider.Catalog))
	}
	if c.Provider.Timeout <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("provider timeout must be positive, got %s", c.Provider.Timeout))
	}

	// Cache validation - only checked when enabled
	if c.Cache.Enabled {
		switch c.Cache.Type {
		case "localfs":
			if c.Cache.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("cache path required when type is localfs"))
			}
		case "s3":
			if c.Cache.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("s3 bucket required when type is s3"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("cache type must be localfs or s3, got %q", c.Cache.Type))
		}
	}

	if len(c.Analytics.Horizons) == 0 {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("at least one analytics horizon required"))
	}
	for _, h := range c.Analytics.Horizons {
		if h < 1 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("horizons must be at least 1 year, got %d", h))
		}
	}

	switch c.Report.Format {
	case "text", "json", "markdown":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("report format must be text, json or markdown, got %q", c.Report.Format))
	}
	if c.Report.Currency == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("report currency required"))
	}
	if money.GetCurrency(strings.ToUpper(c.Report.Currency)) == nil {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown report currency %q", c.Report.Currency))
	}

	if c.Search.Limit < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("search limit must be positive, got %d", c.Search.Limit))
	}

	return nil
}
