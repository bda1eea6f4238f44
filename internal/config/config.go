package config

import (
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Mode   string `env:"SERVER_MODE"   envDefault:"dev"`
	Scheme string `env:"SERVER_SCHEME" envDefault:"http"`
	Domain string `env:"SERVER_DOMAIN" envDefault:"localhost"`
	Port   int    `env:"SERVER_PORT"   envDefault:"8080"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST"     envDefault:"localhost"`
	Port     int    `env:"DB_PORT"     envDefault:"5432"`
	User     string `env:"DB_USER"     envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Database string `env:"DB_DATABASE" envDefault:"taskboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS" envDefault:""`
}

type JWTConfig struct {
	Secret string `env:"AUTH_JWT_SECRET"`
	Issuer string `env:"AUTH_JWT_ISSUER" envDefault:"taskboard"`
}

type CookieConfig struct {
	Secret string `env:"AUTH_COOKIE_SECRET"`
}

type AuthConfig struct {
	JWT    JWTConfig
	Cookie CookieConfig
}

type EmailConfig struct {
	Enabled bool   `env:"EMAIL_ENABLED" envDefault:"false"`
	Server  string `env:"EMAIL_SERVER"`
	Port    int    `env:"EMAIL_PORT" envDefault:"587"`
	User    string `env:"EMAIL_USER"`
	Pass    string `env:"EMAIL_PASS"`
	Admin   string `env:"EMAIL_ADMIN"`
}

type S3Config struct {
	Endpoint  string `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Bucket    string `env:"S3_BUCKET" envDefault:"avatars"`
	UseSSL    bool   `env:"S3_USE_SSL" envDefault:"false"`
}

type JaegerConfig struct {
	Sampler struct {
		Type  string  `env:"JAEGER_SAMPLER_TYPE" envDefault:"const"`
		Param float64 `env:"JAEGER_SAMPLER_PARAM" envDefault:"1"`
	}
	Reporter struct {
		LogSpans           bool   `env:"JAEGER_REPORTER_LOG_SPANS" envDefault:"false"`
		LocalAgentHostPort string `env:"JAEGER_AGENT_ADDR" envDefault:"localhost:6831"`
	}
}

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"taskboard"`
	Server      ServerConfig
	DB          DBConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Email       EmailConfig
	S3          S3Config
	Jaeger      JaegerConfig
}

// MustLoad reads configuration from the environment, optionally seeded
// from a .env file. Missing signing secrets abort startup.
func MustLoad() Config {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found, relying on environment")
	}

	conf := Config{}
	if err := env.Parse(&conf); err != nil {
		zap.L().Fatal("failed to parse configuration", zap.Error(err))
	}

	if conf.Auth.JWT.Secret == "" {
		zap.L().Fatal("AUTH_JWT_SECRET is not set")
	}

	if conf.Auth.Cookie.Secret == "" {
		zap.L().Fatal("AUTH_COOKIE_SECRET is not set")
	}

	return conf
}
