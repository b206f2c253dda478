package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Schedule ScheduleConfig
	Sweep    SweepConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	MigrationsPath string
}

type ScheduleConfig struct {
	// DailyLimitMinutes caps a coach's scheduled minutes per day.
	// Zero disables the check.
	DailyLimitMinutes int
}

type SweepConfig struct {
	// Cron is the robfig/cron spec for the booking completion sweep.
	Cron string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("SCHEDULE_DAILY_LIMIT_MINUTES", 0)
	viper.SetDefault("SWEEP_CRON", "@every 1m")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		Schedule: ScheduleConfig{
			DailyLimitMinutes: viper.GetInt("SCHEDULE_DAILY_LIMIT_MINUTES"),
		},
		Sweep: SweepConfig{
			Cron: viper.GetString("SWEEP_CRON"),
		},
	}

	return config, nil
}
