package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Dataset    DatasetConfig    `yaml:"dataset" mapstructure:"dataset"`
	Boundary   BoundaryConfig   `yaml:"boundary" mapstructure:"boundary"`
	Thresholds model.Thresholds `yaml:"thresholds" mapstructure:"thresholds"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates the enrollment/capacity source and sets the
// normalization policy. Exactly one of CSVPath, XLSXPath, or URL should be
// set; URL downloads a CSV snapshot over HTTP.
type DatasetConfig struct {
	CSVPath            string `yaml:"csv_path" mapstructure:"csv_path"`
	XLSXPath           string `yaml:"xlsx_path" mapstructure:"xlsx_path"`
	URL                string `yaml:"url" mapstructure:"url"`
	Year               int    `yaml:"year" mapstructure:"year"`
	DropZeroEnrollment bool   `yaml:"drop_zero_enrollment" mapstructure:"drop_zero_enrollment"`
}

// BoundaryConfig locates the district boundary shapefile. The shapefile
// must already be in geographic coordinates (EPSG:4326).
type BoundaryConfig struct {
	ShapefilePath string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
}

// StoreConfig configures the snapshot/run persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the snapshot API server.
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
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCHOOLUTIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.year", 2023)
	v.SetDefault("dataset.drop_zero_enrollment", true)
	v.SetDefault("thresholds.under", 0.0)
	v.SetDefault("thresholds.near", 0.80)
	v.SetDefault("thresholds.over", 1.00)
	v.SetDefault("thresholds.severe", 1.40)
	v.SetDefault("thresholds.review", 3.0)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "schoolutil.db")
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

	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, eris.Wrap(err, "config: thresholds")
	}

	return &cfg, nil
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
