package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Upload   UploadConfig
	SMTP     SMTPConfig
	Log      LogConfig

	TimeZone      string
	SnowflakeNode int64
	SeedDemoUsers bool
}

type ServerConfig struct {
	Port        string
	MainRoutes  string
	Environment string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type UploadConfig struct {
	Dir      string
	MaxSize  int64
	MaxFiles int
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	Recipients []string
}

// Enabled reports whether repair notifications can be sent.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && len(s.Recipients) > 0
}

type LogConfig struct {
	Format string
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("MAIN_ROUTES", "/api")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "qc_laptop")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_SIZE", 10*1024*1024)
	v.SetDefault("UPLOAD_MAX_FILES", 5)

	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("LOG_FORMAT", "[${time}] ${status} - ${latency} ${method} ${path}\n")
	v.SetDefault("APP_TIMEZONE", "Asia/Jakarta")

	v.SetDefault("SNOWFLAKE_NODE", 1)
	v.SetDefault("SEED_DEMO_USERS", false)
}

// Load membaca .env (kalau ada), environment, dan file CONFIG_FILE (opsional).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:        v.GetString("APP_PORT"),
			MainRoutes:  v.GetString("MAIN_ROUTES"),
			Environment: v.GetString("APP_ENV"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetDuration("JWT_EXPIRATION"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Upload: UploadConfig{
			Dir:      v.GetString("UPLOAD_DIR"),
			MaxSize:  v.GetInt64("UPLOAD_MAX_SIZE"),
			MaxFiles: v.GetInt("UPLOAD_MAX_FILES"),
		},
		SMTP: SMTPConfig{
			Host:       v.GetString("SMTP_HOST"),
			Port:       v.GetInt("SMTP_PORT"),
			User:       v.GetString("SMTP_USER"),
			Password:   v.GetString("SMTP_PASSWORD"),
			From:       v.GetString("SMTP_FROM"),
			Recipients: splitList(v.GetString("SMTP_RECIPIENTS")),
		},
		Log: LogConfig{
			Format: v.GetString("LOG_FORMAT"),
		},
		TimeZone:      v.GetString("APP_TIMEZONE"),
		SnowflakeNode: v.GetInt64("SNOWFLAKE_NODE"),
		SeedDemoUsers: v.GetBool("SEED_DEMO_USERS"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Location dipakai untuk batas hari di dashboard dan waktu di log akses.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, using UTC", c.TimeZone)
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate dipanggil sebelum server start; config yang salah menghentikan startup.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.JWT.Expiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION must be positive"))
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlserver", "mssql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("DB_NAME must be set"))
	}
	if c.Upload.Dir == "" {
		errs = append(errs, errors.New("UPLOAD_DIR must be set"))
	}
	if c.Upload.MaxSize <= 0 || c.Upload.MaxFiles <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_SIZE and UPLOAD_MAX_FILES must be positive"))
	}
	if c.SnowflakeNode < 0 || c.SnowflakeNode > 1023 {
		errs = append(errs, fmt.Errorf("SNOWFLAKE_NODE must be between 0 and 1023, got %d", c.SnowflakeNode))
	}
	return errors.Join(errs...)
}

// SetupCORS memasang handler CORS dengan daftar origin dari config.
func (c *Config) SetupCORS(app *fiber.App) {
	allowed := make(map[string]bool, len(c.CORS.AllowedOrigins))
	for _, origin := range c.CORS.AllowedOrigins {
		allowed[origin] = true
	}

	app.Use(func(ctx *fiber.Ctx) error {
		origin := ctx.Get("Origin")
		switch {
		case origin == "":
		case allowed[origin]:
			ctx.Set("Access-Control-Allow-Origin", origin)
			ctx.Set("Access-Control-Allow-Credentials", "true")
			ctx.Vary("Origin")
		case allowed["*"]:
			// wildcard tidak boleh digabung dengan credentials
			ctx.Set("Access-Control-Allow-Origin", "*")
		}
		if ctx.GetRespHeader("Access-Control-Allow-Origin") != "" {
			ctx.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			ctx.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		}

		// Handle preflight request
		if ctx.Method() == fiber.MethodOptions {
			return ctx.SendStatus(fiber.StatusNoContent)
		}
		return ctx.Next()
	})
}
