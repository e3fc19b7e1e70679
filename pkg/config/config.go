package config

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	apperrors "github.com/rankmath/repair-action-scheduler/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RAS_DB_HOST.
const EnvPrefix = "RAS"

// Default settings keys. The schema keys belong to the Action Scheduler library.
const (
	DefaultRecordKey       = "ras_notices"
	DefaultDisabledKey     = "ras_disabled"
	DefaultStoreSchemaKey  = "schema-ActionScheduler_StoreSchema"
	DefaultLoggerSchemaKey = "schema-ActionScheduler_LoggerSchema"
	DefaultObsoleteWhen    = `first(store_version) > "3"`
)

// DatabaseConfig holds connection and naming settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Prefix   string `mapstructure:"prefix"`
	Charset  string `mapstructure:"charset"`
	Collate  string `mapstructure:"collate"`
	TLS      bool   `mapstructure:"tls"`
}

// SettingsConfig names the option keys the tool reads and writes
type SettingsConfig struct {
	Table           string `mapstructure:"table"`
	RecordKey       string `mapstructure:"record_key"`
	DisabledKey     string `mapstructure:"disabled_key"`
	StoreSchemaKey  string `mapstructure:"store_schema_key"`
	LoggerSchemaKey string `mapstructure:"logger_schema_key"`
}

// RepairConfig tunes the repair run
type RepairConfig struct {
	ObsoleteWhen string `mapstructure:"obsolete_when"`
}

// HTTPConfig configures the notice endpoint
type HTTPConfig struct {
	Addr      string `mapstructure:"addr"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Config is the full runtime configuration
type Config struct {
	DB       DatabaseConfig `mapstructure:"db"`
	Settings SettingsConfig `mapstructure:"settings"`
	Repair   RepairConfig   `mapstructure:"repair"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "wordpress")
	v.SetDefault("db.prefix", "wp_")
	v.SetDefault("db.charset", "utf8mb4")
	v.SetDefault("db.collate", "utf8mb4_unicode_520_ci")
	v.SetDefault("db.tls", false)

	v.SetDefault("settings.table", "options")
	v.SetDefault("settings.record_key", DefaultRecordKey)
	v.SetDefault("settings.disabled_key", DefaultDisabledKey)
	v.SetDefault("settings.store_schema_key", DefaultStoreSchemaKey)
	v.SetDefault("settings.logger_schema_key", DefaultLoggerSchemaKey)

	v.SetDefault("repair.obsolete_when", DefaultObsoleteWhen)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.jwt_secret", "")
}

// LoadDotEnv loads the first .env file found in paths. Missing files are not an error.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			log.Printf("📁 Loaded .env from %s", p)
			return
		}
	}
}

// New returns a viper instance with defaults and RAS_* environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional config file into v and decodes the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
		log.Printf("📄 Using config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_$]*$`)

// Validate rejects values that would be spliced into SQL identifiers unsafely.
func (c *Config) Validate() error {
	if !namePattern.MatchString(c.DB.Prefix) {
		return apperrors.NewValidationError("db.prefix", fmt.Sprintf("'%s' may only contain letters, digits, '_' and '$'", c.DB.Prefix))
	}
	if !namePattern.MatchString(c.Settings.Table) {
		return apperrors.NewValidationError("settings.table", fmt.Sprintf("'%s' may only contain letters, digits, '_' and '$'", c.Settings.Table))
	}
	if c.Settings.RecordKey == "" || c.Settings.DisabledKey == "" {
		return apperrors.NewValidationError("settings", "record_key and disabled_key are required")
	}
	if c.Settings.RecordKey == c.Settings.DisabledKey {
		return apperrors.NewValidationError("settings", "record_key and disabled_key must differ")
	}
	return nil
}
