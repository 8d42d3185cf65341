package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Token              string
	AdminID            int64
	SiteURL            string
	AlbumsURL          string
	SpreadsheetID      string
	ServiceAccountJSON []byte

	Port           string
	LocalStorePath string
	Location       *time.Location
	AdminMarker    string

	LogLevel  string
	LogFormat string

	DatabaseURL string
	AMQPURL     string
	Mail        MailConfig

	KeepAlivePingURL      string
	KeepAlivePingInterval time.Duration

	Version string
}

type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.To != ""
}

var requiredKeys = []string{
	"TOKEN",
	"ADMIN_ID",
	"SITE_URL",
	"ALBUMS_URL",
	"SPREADSHEET_ID",
	"SERVICE_ACCOUNT_DATA_B64",
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOCAL_STORE_PATH", "clients.csv")
	v.SetDefault("ADMIN_MARKER", "Админ")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("KEEPALIVE_PING_INTERVAL", 10*time.Minute)

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	adminID, err := strconv.ParseInt(strings.TrimSpace(v.GetString("ADMIN_ID")), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID must be an integer: %w", err)
	}

	creds, err := decodeServiceAccount(v.GetString("SERVICE_ACCOUNT_DATA_B64"))
	if err != nil {
		return nil, err
	}

	loc := time.Local
	if tz := v.GetString("TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("TIMEZONE: %w", err)
		}
	}

	interval := v.GetDuration("KEEPALIVE_PING_INTERVAL")
	if interval <= 0 {
		return nil, fmt.Errorf("KEEPALIVE_PING_INTERVAL must be positive, got %q", v.GetString("KEEPALIVE_PING_INTERVAL"))
	}

	return &Config{
		Token:              v.GetString("TOKEN"),
		AdminID:            adminID,
		SiteURL:            strings.TrimRight(v.GetString("SITE_URL"), "/"),
		AlbumsURL:          v.GetString("ALBUMS_URL"),
		SpreadsheetID:      v.GetString("SPREADSHEET_ID"),
		ServiceAccountJSON: creds,

		Port:           v.GetString("PORT"),
		LocalStorePath: v.GetString("LOCAL_STORE_PATH"),
		Location:       loc,
		AdminMarker:    v.GetString("ADMIN_MARKER"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		AMQPURL:     v.GetString("AMQP_URL"),
		Mail: MailConfig{
			Host: v.GetString("MAIL_HOST"),
			Port: v.GetInt("MAIL_PORT"),
			User: v.GetString("MAIL_USER"),
			Pass: v.GetString("MAIL_PASS"),
			From: v.GetString("MAIL_FROM"),
			To:   v.GetString("ADMIN_EMAIL"),
		},

		KeepAlivePingURL:      v.GetString("KEEPALIVE_PING_URL"),
		KeepAlivePingInterval: interval,

		Version: v.GetString("APP_VERSION"),
	}, nil
}

// decodeServiceAccount unpacks the base64 service-account key and checks
// it is a JSON object before anything tries to dial Google.
func decodeServiceAccount(b64 string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("SERVICE_ACCOUNT_DATA_B64 is not valid base64: %w", err)
	}

	var probe map[string]interface{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("SERVICE_ACCOUNT_DATA_B64 does not decode to JSON: %w", err)
	}
	return raw, nil
}

// Now returns the current time in the configured zone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location)
}
