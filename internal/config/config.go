package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Billing   BillingConfig
	Printer   PrinterConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// BillingConfig tunes the till-session reconciliation core. Every timing
// knob of the state machine lives here rather than as a constant in the code.
type BillingConfig struct {
	// RefreshInterval is how often the background refresher polls the
	// table store.
	RefreshInterval time.Duration
	// CacheTTL is how long a persisted per-table cart snapshot stays valid.
	CacheTTL time.Duration
	// PersistDebounce coalesces bursts of cache writes into one.
	PersistDebounce time.Duration
	// SwitchCooldown keeps the table-switch lock held briefly after a switch
	// completes, absorbing rapid repeated clicks.
	SwitchCooldown time.Duration
	// SweepInterval is how often expired cache entries are swept.
	SweepInterval time.Duration
}

type PrinterConfig struct {
	Type    string // usb, network, or none
	USBPath string
	Address string
	Width   int // characters per line: 32 for 58mm, 48 for 80mm
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "bill-master")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "billmaster")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("BILLING_REFRESH_INTERVAL_SECONDS", 30)
	viper.SetDefault("BILLING_CACHE_TTL_MINUTES", 30)
	viper.SetDefault("BILLING_PERSIST_DEBOUNCE_MS", 300)
	viper.SetDefault("BILLING_SWITCH_COOLDOWN_MS", 300)
	viper.SetDefault("BILLING_SWEEP_INTERVAL_MINUTES", 10)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 48)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Billing: BillingConfig{
			RefreshInterval: time.Duration(viper.GetInt("BILLING_REFRESH_INTERVAL_SECONDS")) * time.Second,
			CacheTTL:        time.Duration(viper.GetInt("BILLING_CACHE_TTL_MINUTES")) * time.Minute,
			PersistDebounce: time.Duration(viper.GetInt("BILLING_PERSIST_DEBOUNCE_MS")) * time.Millisecond,
			SwitchCooldown:  time.Duration(viper.GetInt("BILLING_SWITCH_COOLDOWN_MS")) * time.Millisecond,
			SweepInterval:   time.Duration(viper.GetInt("BILLING_SWEEP_INTERVAL_MINUTES")) * time.Minute,
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
