package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, timeouts, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Notify  NotifyConfig
	SMTP    SMTPConfig
	Redis   RedisConfig
	Upload  UploadConfig
	Cookie  CookieConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"memory"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN"`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type BookingConfig struct {
	TimeZone       string        `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
	ReminderWindow time.Duration `envconfig:"BOOKING_REMINDER_WINDOW" default:"1h"`
}

// Location resolves the zone booking dates and times are interpreted in.
func (c BookingConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.TimeZone)
}

type NotifyConfig struct {
	DispatchSpec string        `envconfig:"NOTIFY_DISPATCH_SPEC" default:"@every 15s"`
	ReminderSpec string        `envconfig:"NOTIFY_REMINDER_SPEC" default:"* * * * *"`
	BatchSize    int           `envconfig:"NOTIFY_BATCH_SIZE" default:"25"`
	MaxAttempts  int           `envconfig:"NOTIFY_MAX_ATTEMPTS" default:"5"`
	BackoffBase  time.Duration `envconfig:"NOTIFY_BACKOFF_BASE" default:"30s"`
	OwnerAlerts  bool          `envconfig:"NOTIFY_OWNER_ALERTS" default:"true"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@slotbook.local"`
}

// Enabled reports whether outbound mail should go through SMTP rather than the log sender.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type UploadConfig struct {
	Dir             string `envconfig:"UPLOAD_DIR" default:"uploads"`
	PublicBaseURL   string `envconfig:"UPLOAD_PUBLIC_BASE_URL" default:"/uploads"`
	MaxBytes        int64  `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`
	CloudinaryCloud string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryKey   string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinarySec   string `envconfig:"CLOUDINARY_API_SECRET"`
	CloudinaryDir   string `envconfig:"CLOUDINARY_FOLDER" default:"slotbook"`
}

func (c UploadConfig) CloudinaryEnabled() bool {
	return c.CloudinaryCloud != "" && c.CloudinaryKey != "" && c.CloudinarySec != ""
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Store.Driver != StoreMemory && cfg.Store.Driver != StorePostgres {
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{Driver: StoreMemory},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "168h",
		},
		Booking: BookingConfig{
			TimeZone:       "UTC",
			ReminderWindow: time.Hour,
		},
		Notify: NotifyConfig{
			DispatchSpec: "@every 1h",
			ReminderSpec: "@every 1h",
			BatchSize:    10,
			MaxAttempts:  3,
			BackoffBase:  time.Second,
			OwnerAlerts:  true,
		},
		Upload: UploadConfig{
			Dir:           "testdata/uploads",
			PublicBaseURL: "/uploads",
			MaxBytes:      5 << 20,
		},
	}
}
