package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	HCP    HCPConfig    `yaml:"hcp" mapstructure:"hcp"`
	Lead   LeadConfig   `yaml:"lead" mapstructure:"lead"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// HCPConfig holds Housecall Pro API credentials and transport settings.
type HCPConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	RateDelaySecs float64 `yaml:"rate_delay_secs" mapstructure:"rate_delay_secs"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries    int     `yaml:"max_retries" mapstructure:"max_retries"`
}

// LeadConfig configures lead assembly defaults. EmployeeID and Source are
// fixed per-deployment constants threaded into the creator at construction;
// they are never read from ambient globals at call sites.
type LeadConfig struct {
	EmployeeID          string  `yaml:"employee_id" mapstructure:"employee_id"`
	Source              string  `yaml:"source" mapstructure:"source"`
	DefaultAreaCode     string  `yaml:"default_area_code" mapstructure:"default_area_code"`
	DefaultState        string  `yaml:"default_state" mapstructure:"default_state"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
// A .env file in the working directory is loaded first so container
// deployments can inject secrets without a config file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HCP_WEBHOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Empty defaults register the secret keys with viper so
	// AutomaticEnv values reach Unmarshal.
	v.SetDefault("hcp.key", "")
	v.SetDefault("hcp.base_url", "https://api.housecallpro.com")
	v.SetDefault("hcp.rate_delay_secs", 2.0)
	v.SetDefault("hcp.timeout_secs", 30)
	v.SetDefault("hcp.max_retries", 3)
	v.SetDefault("lead.employee_id", "")
	v.SetDefault("lead.source", "Website")
	v.SetDefault("lead.default_area_code", "415")
	v.SetDefault("lead.default_state", "CA")
	v.SetDefault("lead.similarity_threshold", 0.8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that required settings are present. Called at startup by
// commands that talk to the HCP API, and by the health endpoint.
func (c *Config) Validate() error {
	if c.HCP.Key == "" {
		return eris.New("config: hcp.key is required")
	}
	if c.HCP.BaseURL == "" {
		return eris.New("config: hcp.base_url is required")
	}
	if c.Lead.EmployeeID == "" {
		return eris.New("config: lead.employee_id is required")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
