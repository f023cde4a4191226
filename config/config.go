package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Redis     Redis
	JWT       JWT
	Tracing   Tracing
	RateLimit RateLimit
	Attempt   Attempt
	Log       Log
}

type Server struct {
	Port               string
	Mode               string
	CorsAllowedOrigins []string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string
}

type Redis struct {
	Addr             string
	Password         string
	DB               int
	QuestionCacheTTL time.Duration
}

type JWT struct {
	Secret string
}

type Tracing struct {
	Enabled           bool
	ServiceName       string
	CollectorEndpoint string
}

type RateLimit struct {
	MaxRequests int
	Window      time.Duration
}

// Attempt holds the timing knobs of the attempt engine.
type Attempt struct {
	// SubmitGrace is how long after the exam deadline responses are still accepted.
	SubmitGrace     time.Duration
	SweeperSchedule string
}

type Log struct {
	Level string
	File  string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_PATH", "exam_portal.db")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("QUESTION_CACHE_TTL", "10m")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_SERVICE_NAME", "exam-portal")
	viper.SetDefault("TRACING_COLLECTOR_ENDPOINT", "http://localhost:14268/api/traces")
	viper.SetDefault("RATE_LIMIT_MAX_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("SUBMIT_GRACE_SECONDS", 30)
	viper.SetDefault("SWEEPER_SCHEDULE", "@every 1m")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("GIN_MODE")
	config.Server.CorsAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Database.Driver = strings.ToLower(viper.GetString("DATABASE_DRIVER"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.QuestionCacheTTL = viper.GetDuration("QUESTION_CACHE_TTL")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	if config.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is empty, every authenticated request will be rejected")
	}

	config.Tracing.Enabled = viper.GetBool("TRACING_ENABLED")
	config.Tracing.ServiceName = viper.GetString("TRACING_SERVICE_NAME")
	config.Tracing.CollectorEndpoint = viper.GetString("TRACING_COLLECTOR_ENDPOINT")

	config.RateLimit.MaxRequests = viper.GetInt("RATE_LIMIT_MAX_REQUESTS")
	config.RateLimit.Window = viper.GetDuration("RATE_LIMIT_WINDOW")

	config.Attempt.SubmitGrace = time.Duration(viper.GetInt("SUBMIT_GRACE_SECONDS")) * time.Second
	config.Attempt.SweeperSchedule = viper.GetString("SWEEPER_SCHEDULE")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.File = viper.GetString("LOG_FILE")

	log.Info().
		Str("port", config.Server.Port).
		Str("dbDriver", config.Database.Driver).
		Bool("redis", config.Redis.Addr != "").
		Bool("tracing", config.Tracing.Enabled).
		Msg("Config loaded")
	return &config, nil
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
