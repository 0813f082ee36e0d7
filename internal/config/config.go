package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

const EnvDevelopment = "development"

// Configはアプリ全体の設定
type Config struct {
	Port string `env:"PORT" envDefault:"8080"` // サーバーポート

	DatabaseURL string   `env:"DATABASE_URL"` // あればPOSTGRES_*より優先
	Postgres    Postgres `envPrefix:"POSTGRES_"`

	JWTSecret string `env:"JWT_SECRET"` // JWT署名シークレット

	GoEnv string `env:"GO_ENV" envDefault:"development"` // development/production

	PaginationLimit int `env:"PAGINATION_LIMIT" envDefault:"10"` // 商品一覧の1ページ件数

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"5"` // ログインの秒間リクエスト数（IP単位）

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	Log   Log   `envPrefix:"LOG_"`
	Kafka Kafka `envPrefix:"KAFKA_"`
}

type Postgres struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	DB       string `env:"DB" envDefault:"shop"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"` // json/console
}

// 注文イベントの送信先（BROKERSが空なら送らない）
type Kafka struct {
	Brokers    []string `env:"BROKERS" envSeparator:","`
	OrderTopic string   `env:"ORDER_TOPIC" envDefault:"orders"`
}

// Loadは環境変数
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

//必須チェック
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.PaginationLimit < 1 {
		return fmt.Errorf("PAGINATION_LIMIT must be >= 1")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be > 0")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

func (c Config) IsDevelopment() bool {
	return c.GoEnv == EnvDevelopment
}

// ":8080" の形で返す
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
