package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Planner struct {
		DefaultHoursPerDay float64 `mapstructure:"default_hours_per_day"`
		MinHoursPerDay     float64 `mapstructure:"min_hours_per_day"`
	} `mapstructure:"planner"`

	Export struct {
		CSVFileName  string `mapstructure:"csv_file_name"`
		XLSXFileName string `mapstructure:"xlsx_file_name"`
	} `mapstructure:"export"`
}

// Load reads configuration from path (optional), a local .env file and
// PLANNER_* environment variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	var c Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("planner.default_hours_per_day", 3.0)
	v.SetDefault("planner.min_hours_per_day", 0.5)
	v.SetDefault("export.csv_file_name", "study_plan.csv")
	v.SetDefault("export.xlsx_file_name", "study_plan.xlsx")

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks the planner budget settings
func (c Config) Validate() error {
	if c.Planner.MinHoursPerDay <= 0 {
		return fmt.Errorf("planner.min_hours_per_day must be positive, got %v", c.Planner.MinHoursPerDay)
	}
	if c.Planner.DefaultHoursPerDay < c.Planner.MinHoursPerDay {
		return fmt.Errorf("planner.default_hours_per_day %v is below the minimum %v",
			c.Planner.DefaultHoursPerDay, c.Planner.MinHoursPerDay)
	}
	return nil
}
