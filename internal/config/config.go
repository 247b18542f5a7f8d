package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	JWTSigningKey string   `mapstructure:"JWT_SIGNING_KEY"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`

	// Validation rules disabled by deployment configuration. Unknown rule
	// names stay enabled; this list only switches known rules off.
	DisabledRules []string `mapstructure:"DISABLED_RULES"`

	// Clinic calendar settings used by date and capacity checks.
	WorkDayStart        int `mapstructure:"WORK_DAY_START"`
	WorkDayEnd          int `mapstructure:"WORK_DAY_END"`
	DoctorDailyCapacity int `mapstructure:"DOCTOR_DAILY_CAPACITY"`

	RateLimitRPS    float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int     `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeoutS int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	BodyLimit       string  `mapstructure:"BODY_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("WORK_DAY_START", 8)
	v.SetDefault("WORK_DAY_END", 18)
	v.SetDefault("DOCTOR_DAILY_CAPACITY", 20)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("BODY_LIMIT", "1M")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SIGNING_KEY")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("DISABLED_RULES")
	v.BindEnv("WORK_DAY_START")
	v.BindEnv("WORK_DAY_END")
	v.BindEnv("DOCTOR_DAILY_CAPACITY")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("BODY_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	if cfg.DisabledRules == nil {
		if rules := v.GetString("DISABLED_RULES"); rules != "" {
			cfg.DisabledRules = strings.Split(rules, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: Dev auth is active; all requests get admin access.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and configure JWT_SIGNING_KEY.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// mode JWT_SIGNING_KEY must be set so that real authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSigningKey == "" {
		return fmt.Errorf(
			"JWT_SIGNING_KEY must be set when ENV is %q; refusing to start without authentication configuration", c.Env)
	}

	if c.WorkDayStart < 0 || c.WorkDayEnd > 24 || c.WorkDayStart >= c.WorkDayEnd {
		return fmt.Errorf("working hours %d..%d are invalid: start must precede end within 0..24",
			c.WorkDayStart, c.WorkDayEnd)
	}

	if c.DoctorDailyCapacity < 0 {
		return fmt.Errorf("DOCTOR_DAILY_CAPACITY must not be negative, got %d", c.DoctorDailyCapacity)
	}

	return nil
}
