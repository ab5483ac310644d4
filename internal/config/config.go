package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Configは在庫APIサーバーの設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL string // あれば POSTGRES_* より優先

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	GoEnv    string // dev/prod
	LogLevel string
	SeedFile string // 起動時に投入する商品JSON（任意）

	OTelEndpoint string // OTLP gRPC（空ならトレースは送らない）
}

// LoadDotEnv は .env を読む。無ければ何もしない。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort := 5432
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("POSTGRES_PORT must be number: %w", err)
		}
		pgPort = i
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		SeedFile: os.Getenv("SEED_FILE"),

		OTelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	//必須チェック（DATABASE_URL が無いときだけ）
	if cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
	}

	return cfg, nil
}

// Addr は ":8080" 形式のlisten先
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// Client はカートCLIの設定（kongのフラグ / 環境変数）
type Client struct {
	APIURL      string        `name:"api-url" help:"Inventory API base URL." env:"CART_API_URL" default:"http://localhost:8080"`
	HTTPTimeout time.Duration `name:"http-timeout" help:"Timeout for inventory requests." env:"CART_HTTP_TIMEOUT" default:"10s"`
	Inventory   string        `name:"inventory" help:"Inventory source (http, db)." env:"CART_INVENTORY" enum:"http,db" default:"http"`

	Store       string `name:"store" help:"Cart storage backend (file, redis, postgres, memory)." env:"CART_STORE" enum:"file,redis,postgres,memory" default:"file"`
	File        string `name:"file" help:"Cart file for the file store." env:"CART_FILE" default:".rocketcart.json" type:"path"`
	RedisAddr   string `name:"redis-addr" help:"Redis address or redis:// URL." env:"REDIS_ADDR" default:"localhost:6379"`
	DatabaseURL string `name:"database-url" help:"Postgres DSN for the postgres store and db inventory." env:"DATABASE_URL"`

	LogLevel     string `name:"log-level" help:"Log level (notifications are already printed as error: lines)." env:"LOG_LEVEL" default:"error"`
	OTelEndpoint string `name:"otel-endpoint" help:"OTLP gRPC endpoint for traces (empty: not exported)." env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Validate はバックエンドごとの必須値を確認する。
func (c Client) Validate() error {
	if c.Inventory == "http" && c.APIURL == "" {
		return fmt.Errorf("api-url is required for http inventory")
	}
	if (c.Store == "postgres" || c.Inventory == "db") && c.DatabaseURL == "" {
		return fmt.Errorf("database-url is required for postgres store or db inventory")
	}
	if c.Store == "file" && c.File == "" {
		return fmt.Errorf("file is required for file store")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http-timeout must be positive")
	}
	return nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
