package config

import (
	"flag"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddress = ":8080"
	defaultDatabaseDSN   = ""
	defaultGatewayAddr   = "https://backend.flexpay.cd/api/rest/v1"
	defaultGatewayToken  = ""
	defaultRedisAddr     = "localhost:6379"
	defaultKafkaBrokers  = ""
	defaultLogLevel      = "debug"
)

type Config struct {
	ServerAddr   string
	DatabaseDSN  string
	GatewayAddr  string
	GatewayToken string
	RedisAddr    string
	KafkaBrokers []string
	LogLevel     string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		// load .env if present, real environment wins
		_ = godotenv.Load()

		cfg := Config{}
		var brokers string

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "storefront server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "storefront database DSN")
		flag.StringVar(&cfg.GatewayAddr, "g", defaultGatewayAddr, "payment gateway address")
		flag.StringVar(&cfg.GatewayToken, "t", defaultGatewayToken, "payment gateway bearer token")
		flag.StringVar(&cfg.RedisAddr, "r", defaultRedisAddr, "redis address for pending orders")
		flag.StringVar(&brokers, "k", defaultKafkaBrokers, "kafka brokers, comma separated")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if gatewayAddrEnv := os.Getenv("PAYMENT_GATEWAY_ADDRESS"); gatewayAddrEnv != "" {
			cfg.GatewayAddr = gatewayAddrEnv
		}
		if gatewayTokenEnv := os.Getenv("PAYMENT_GATEWAY_TOKEN"); gatewayTokenEnv != "" {
			cfg.GatewayToken = gatewayTokenEnv
		}
		if redisAddrEnv := os.Getenv("REDIS_ADDRESS"); redisAddrEnv != "" {
			cfg.RedisAddr = redisAddrEnv
		}
		if kafkaBrokersEnv := os.Getenv("KAFKA_BROKERS"); kafkaBrokersEnv != "" {
			brokers = kafkaBrokersEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		cfg.KafkaBrokers = splitBrokers(brokers)

		singleton = &cfg
	})

	return singleton, nil
}

func splitBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
