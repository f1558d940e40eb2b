package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// =======================
// CONFIG
// =======================

type DBConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	StatementTimeout time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
}

// DSN membangun URL koneksi postgres lengkap dengan statement_timeout.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolku&options=-c statement_timeout=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.StatementTimeout.Milliseconds(),
	)
}

type MidtransConfig struct {
	ServerKey     string
	UseProduction bool
	Currency      string
}

type FeeConfig struct {
	OrderTTL           time.Duration
	ReaperSchedule     string
	InstallmentMonths  int
	SnowflakeNode      int64
	ReceiptPrefix      string
	OrderPrefix        string
	BlacklistSchedule  string
	BlacklistRetention time.Duration
}

type Config struct {
	Env            string
	Port           string
	LogLevel       string
	JWTSecret      string
	JWTTTL         time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SchoolTZ       string

	DB       DBConfig
	Midtrans MidtransConfig
	Fees     FeeConfig
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// =======================
// ENV LOADER
// =======================

// Load membaca .env (kalau ada, kecuali di Railway) lalu ENV via viper.
func Load() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env not found, using system ENV")
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		CORSOrigins:    splitCSV(v.GetString("CORS_ORIGINS")),
		SchoolTZ:       v.GetString("SCHOOL_TIMEZONE"),
		DB: DBConfig{
			Host:             v.GetString("DB_HOST"),
			Port:             v.GetString("DB_PORT"),
			User:             v.GetString("DB_USER"),
			Password:         v.GetString("DB_PASSWORD"),
			Name:             v.GetString("DB_NAME"),
			SSLMode:          v.GetString("DB_SSLMODE"),
			StatementTimeout: v.GetDuration("DB_STATEMENT_TIMEOUT"),
			MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Midtrans: MidtransConfig{
			ServerKey:     v.GetString("MIDTRANS_SERVER_KEY"),
			UseProduction: v.GetBool("MIDTRANS_USE_PROD"),
			Currency:      v.GetString("MIDTRANS_CURRENCY"),
		},
		Fees: FeeConfig{
			OrderTTL:           v.GetDuration("FEE_ORDER_TTL"),
			ReaperSchedule:     v.GetString("FEE_ORDER_REAPER_CRON"),
			InstallmentMonths:  v.GetInt("FEE_INSTALLMENT_MONTHS"),
			SnowflakeNode:      v.GetInt64("SNOWFLAKE_NODE"),
			ReceiptPrefix:      v.GetString("FEE_RECEIPT_PREFIX"),
			OrderPrefix:        v.GetString("FEE_ORDER_PREFIX"),
			BlacklistSchedule:  v.GetString("TOKEN_BLACKLIST_CRON"),
			BlacklistRetention: time.Duration(v.GetInt("TOKEN_BLACKLIST_TTL_DAYS")) * 24 * time.Hour,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 12*time.Hour)
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5500")
	v.SetDefault("SCHOOL_TIMEZONE", "Asia/Jakarta")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "schoolku")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_STATEMENT_TIMEOUT", 3*time.Second)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)

	v.SetDefault("MIDTRANS_SERVER_KEY", "")
	v.SetDefault("MIDTRANS_USE_PROD", false)
	v.SetDefault("MIDTRANS_CURRENCY", "IDR")

	v.SetDefault("FEE_ORDER_TTL", 24*time.Hour)
	v.SetDefault("FEE_ORDER_REAPER_CRON", "*/15 * * * *")
	v.SetDefault("FEE_INSTALLMENT_MONTHS", 12)
	v.SetDefault("SNOWFLAKE_NODE", 1)
	v.SetDefault("FEE_RECEIPT_PREFIX", "RCPT")
	v.SetDefault("FEE_ORDER_PREFIX", "FEE")
	v.SetDefault("TOKEN_BLACKLIST_CRON", "15 2 * * *")
	v.SetDefault("TOKEN_BLACKLIST_TTL_DAYS", 7)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Fees.InstallmentMonths <= 0 {
		return fmt.Errorf("FEE_INSTALLMENT_MONTHS must be positive, got %d", c.Fees.InstallmentMonths)
	}
	if c.Fees.SnowflakeNode < 0 || c.Fees.SnowflakeNode > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE must be in [0,1023], got %d", c.Fees.SnowflakeNode)
	}
	return nil
}

func splitCSV(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
