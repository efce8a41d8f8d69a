package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Routing         Routing         `mapstructure:",squash"`
	Effort          Effort          `mapstructure:",squash"`
	PerformanceSync PerformanceSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Routing holds the fallback applied when the settings table is still empty.
type Routing struct {
	DefaultRate float64 `mapstructure:"routing_default_rate"`
}

// Effort controls how effort rule constraints are matched against tickets.
type Effort struct {
	CaseInsensitiveMatch bool `mapstructure:"effort_case_insensitive_match"`
}

// PerformanceSync configures the daily roll-up of campaign rows into
// performance facts.
type PerformanceSync struct {
	CronSchedule string `mapstructure:"performance_sync_cron"`
	LookbackDays int    `mapstructure:"performance_sync_lookback_days"`
	Enabled      bool   `mapstructure:"performance_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketing_ops")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("ROUTING_DEFAULT_RATE", 0.0)
	viper.SetDefault("EFFORT_CASE_INSENSITIVE_MATCH", false)

	viper.SetDefault("PERFORMANCE_SYNC_CRON", "0 3 * * *")
	viper.SetDefault("PERFORMANCE_SYNC_LOOKBACK_DAYS", 7)
	viper.SetDefault("PERFORMANCE_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Optional: godotenv already populated the process environment.
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Using variables loaded by godotenv (viper could not read .env):", err)
	} else {
		logrus.Info(".env file read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not get the current directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info(".env file loaded from:", location)
			return
		}
	}

	logrus.Warn("Could not load a .env file from any known location")
}
