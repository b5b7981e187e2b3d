package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type Config struct {
	StoreAPIBaseURL string        `envconfig:"STORE_API_BASEURL" default:"http://localhost:8080/api"`
	StoreAPITimeout time.Duration `envconfig:"STORE_API_TIMEOUT" default:"5s"`

	// Credentials used by the terminal storefront. STORE_TOKEN skips the login call.
	Username string `envconfig:"STORE_USERNAME"`
	Password string `envconfig:"STORE_PASSWORD"`
	Token    string `envconfig:"STORE_TOKEN"`

	GatewayAddr string `envconfig:"GATEWAY_ADDR" default:":8090"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"true"`
	// LogFile is where the terminal storefront logs.
	LogFile string `envconfig:"LOG_FILE" default:"storefront.log"`

	// Journal sinks are optional; empty means disabled.
	PostgresDSN  string `envconfig:"POSTGRES_DSN"`
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"storefront.events"`

	StockFetchConcurrency int           `envconfig:"STOCK_FETCH_CONCURRENCY" default:"8"`
	CancelAttempts        int           `envconfig:"CANCEL_ATTEMPTS" default:"3"`
	CancelBaseDelay       time.Duration `envconfig:"CANCEL_BASE_DELAY" default:"600ms"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // load .env if it exists
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.StockFetchConcurrency <= 0 {
		cfg.StockFetchConcurrency = 1
	}
	if cfg.CancelAttempts <= 0 {
		cfg.CancelAttempts = 3
	}
	return cfg, nil
}

// Log writes the effective configuration without secrets.
func (c Config) Log(logger *zap.Logger) {
	logger.Info("config",
		zap.String("store_api_baseurl", c.StoreAPIBaseURL),
		zap.Duration("store_api_timeout", c.StoreAPITimeout),
		zap.String("gateway_addr", c.GatewayAddr),
		zap.Bool("postgres_journal", c.PostgresDSN != ""),
		zap.Bool("amqp_journal", c.AMQPURL != ""),
		zap.Int("cancel_attempts", c.CancelAttempts),
		zap.Duration("cancel_base_delay", c.CancelBaseDelay),
	)
}
