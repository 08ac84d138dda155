package cardsite

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads the TOML config at path. A .env file next to the working
// directory is loaded first so secrets can stay out of the config file.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// DefaultConfig returns the settings used for anything the file leaves out.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo, Format: "text"},
		DB: DBConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "indigestion",
			PoolSize: 10,
		},
		Web: WebConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			PublicURL:    "http://localhost:4321",
			AdminURL:     "http://localhost:4322",
			AllowOrigins: "http://localhost:4321,http://localhost:4322",
		},
		Session: SessionConfig{
			TTL:            Duration(30 * 24 * time.Hour),
			CurrentVersion: 1,
			MinVersion:     1,
		},
		Events: EventsConfig{Source: "indigestion-cards", BusName: "default"},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Realtime: RealtimeConfig{
			Host:    "0.0.0.0",
			Port:    8081,
			Channel: "indigestion:broadcast",
			SetKey:  "indigestion:connections",
		},
	}
}

type Config struct {
	Log      LogConfig      `toml:"log"`
	DB       DBConfig       `toml:"db"`
	Web      WebConfig      `toml:"web"`
	Session  SessionConfig  `toml:"session"`
	Twitch   TwitchConfig   `toml:"twitch"`
	S3       S3Config       `toml:"s3"`
	Events   EventsConfig   `toml:"events"`
	Redis    RedisConfig    `toml:"redis"`
	Realtime RealtimeConfig `toml:"realtime"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
	SSLMode      string `toml:"ssl_mode"`
	LogQueries   bool   `toml:"log_queries"`
}

type WebConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	PublicURL    string `toml:"public_url"`
	AdminURL     string `toml:"admin_url"`
	BetaURL      string `toml:"beta_url"`
	AllowOrigins string `toml:"allow_origins"`
	Production   bool   `toml:"production"`
}

type SessionConfig struct {
	Secret string   `toml:"secret"`
	TTL    Duration `toml:"ttl"`
	// CurrentVersion is stamped into new tokens. Raising MinVersion above a
	// token's version forces that user to sign in again.
	CurrentVersion int `toml:"current_version"`
	MinVersion     int `toml:"min_version"`
}

type TwitchConfig struct {
	ClientID       string   `toml:"client_id"`
	ClientSecret   string   `toml:"client_secret"`
	RedirectURL    string   `toml:"redirect_url"`
	StreamerUserID string   `toml:"streamer_user_id"`
	AdminUserIDs   []string `toml:"admin_user_ids"`
}

type S3Config struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	Endpoint  string `toml:"endpoint"`
	PublicURL string `toml:"public_url"`
}

type EventsConfig struct {
	BusName string `toml:"bus_name"`
	Source  string `toml:"source"`
	Region  string `toml:"region"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RealtimeConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Channel string `toml:"channel"`
	SetKey  string `toml:"set_key"`
}

// Duration decodes TOML strings such as "720h".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Session.Secret, "CARDSITE_SESSION_SECRET")
	setFromEnv(&c.DB.Password, "CARDSITE_DB_PASSWORD")
	setFromEnv(&c.Twitch.ClientSecret, "TWITCH_CLIENT_SECRET")
	setFromEnv(&c.S3.Key, "AWS_ACCESS_KEY_ID")
	setFromEnv(&c.S3.Secret, "AWS_SECRET_ACCESS_KEY")
	setFromEnv(&c.Redis.Password, "CARDSITE_REDIS_PASSWORD")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("session.secret is required"))
	}
	if c.Session.MinVersion > c.Session.CurrentVersion {
		errs = append(errs, fmt.Errorf("session.min_version (%d) is above session.current_version (%d)",
			c.Session.MinVersion, c.Session.CurrentVersion))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("db.user is required"))
	}
	if c.Twitch.ClientID == "" {
		errs = append(errs, errors.New("twitch.client_id is required"))
	}
	if c.S3.Bucket == "" {
		errs = append(errs, errors.New("s3.bucket is required"))
	}
	return errors.Join(errs...)
}
