package config

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Storage   StorageConfig
	Mail      MailConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
	App       AppConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds encryption keys
type SecurityConfig struct {
	SessionEncryptionKey string
}

// StorageConfig selects and configures the object store.
// Driver is one of "s3", "local" or "memory".
type StorageConfig struct {
	Driver         string
	Region         string
	Endpoint       string
	PublicBaseURL  string
	LocalDir       string
	MaxUploadBytes int64
	Timeout        time.Duration
}

// MailConfig configures confirmation e-mails. Driver is "ses" or "log".
type MailConfig struct {
	Driver    string
	Region    string
	FromEmail string
	Timeout   time.Duration
}

// NotifyConfig configures SNS notifications. Empty topic disables publishing.
type NotifyConfig struct {
	Region           string
	ApprovalTopicARN string
}

// RateLimitConfig holds per-IP login throttling
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// JobsConfig holds background job schedules (cron syntax)
type JobsConfig struct {
	TokenPurgeSchedule string
}

// AppConfig holds product level settings
type AppConfig struct {
	PublicBaseURL   string
	DeepLink        string
	GalleryLockTTL  time.Duration
	GalleryLockWait time.Duration
}

var readConfigFile = func(v *viper.Viper) error { return v.ReadInConfig() }

// Load reads defaults, an optional config.yaml and the environment (highest priority)
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := readConfigFile(v); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("config file ignored: %v", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("server.port"),
			Env:            v.GetString("server.env"),
			AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("db.host"),
			Port:        getInt(v, "db.port", 5432),
			User:        v.GetString("db.user"),
			Password:    v.GetString("db.password"),
			DBName:      v.GetString("db.name"),
			SSLMode:     v.GetString("db.sslmode"),
			AutoMigrate: v.GetBool("db.auto_migrate"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			PASSWORD: v.GetString("redis.password"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("jwt.secret"),
			AccessExpiry:  getDuration(v, "jwt.access_expiry", 15*time.Minute),
			RefreshExpiry: getDuration(v, "jwt.refresh_expiry", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: v.GetString("session.encryption_key"),
		},
		Storage: StorageConfig{
			Driver:         v.GetString("storage.driver"),
			Region:         v.GetString("storage.region"),
			Endpoint:       v.GetString("storage.endpoint"),
			PublicBaseURL:  strings.TrimRight(v.GetString("storage.public_base_url"), "/"),
			LocalDir:       v.GetString("storage.local_dir"),
			MaxUploadBytes: int64(getInt(v, "storage.max_upload_bytes", 5*1024*1024)),
			Timeout:        getDuration(v, "storage.timeout", 30*time.Second),
		},
		Mail: MailConfig{
			Driver:    v.GetString("mail.driver"),
			Region:    v.GetString("mail.region"),
			FromEmail: v.GetString("mail.from_email"),
			Timeout:   getDuration(v, "mail.timeout", 10*time.Second),
		},
		Notify: NotifyConfig{
			Region:           v.GetString("notify.region"),
			ApprovalTopicARN: v.GetString("notify.approval_topic_arn"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getInt(v, "ratelimit.login_per_minute", 10),
			LoginBurst:     getInt(v, "ratelimit.login_burst", 5),
		},
		Jobs: JobsConfig{
			TokenPurgeSchedule: v.GetString("jobs.token_purge_schedule"),
		},
		App: AppConfig{
			PublicBaseURL:   strings.TrimRight(v.GetString("app.public_base_url"), "/"),
			DeepLink:        v.GetString("app.deep_link"),
			GalleryLockTTL:  getDuration(v, "app.gallery_lock_ttl", 30*time.Second),
			GalleryLockWait: getDuration(v, "app.gallery_lock_wait", 5*time.Second),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "qhoar")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.auto_migrate", false)

	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.password", "")

	v.SetDefault("jwt.secret", "change-this-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")

	// 32 bytes, hex encoded
	v.SetDefault("session.encryption_key", "0000000000000000000000000000000000000000000000000000000000000000")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.public_base_url", "http://localhost:8080/storage")
	v.SetDefault("storage.local_dir", "./data/storage")
	v.SetDefault("storage.max_upload_bytes", 5*1024*1024)
	v.SetDefault("storage.timeout", "30s")

	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.region", "us-east-1")
	v.SetDefault("mail.from_email", "no-reply@qhoar.pe")
	v.SetDefault("mail.timeout", "10s")

	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.approval_topic_arn", "")

	v.SetDefault("ratelimit.login_per_minute", 10)
	v.SetDefault("ratelimit.login_burst", 5)

	v.SetDefault("jobs.token_purge_schedule", "@every 1h")

	v.SetDefault("app.public_base_url", "http://localhost:3000")
	v.SetDefault("app.deep_link", "qhoar://login")
	v.SetDefault("app.gallery_lock_ttl", "30s")
	v.SetDefault("app.gallery_lock_wait", "5s")
}

func getInt(v *viper.Viper, key string, defaultValue int) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return defaultValue
}

func getDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
