package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ADORESHOP"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	GRPC       GRPCConfig       `mapstructure:"grpc"`
	Etcd       EtcdConfig       `mapstructure:"etcd"`
	Redis      RedisConfig      `mapstructure:"redis"`
	MongoDB    MongoDBConfig    `mapstructure:"mongodb"`
	Log        LogConfig        `mapstructure:"log"`
	Storefront StorefrontConfig `mapstructure:"storefront"`
	Session    SessionConfig    `mapstructure:"session"`
	Advice     AdviceConfig     `mapstructure:"advice"`
}

type ServerConfig struct {
	Name string `mapstructure:"name"`
}

type GatewayConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`

	// RateLimit is requests per second across all clients. Zero disables it.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

func (c GatewayConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCConfig is the listener for the health probe server.
type GRPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Host    string `mapstructure:"host"`
}

func (c GRPCConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type EtcdConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Endpoints   []string      `mapstructure:"endpoints"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	Prefix      string        `mapstructure:"prefix"`
	LeaseTTL    int64         `mapstructure:"lease_ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoDBConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Encoding    string   `mapstructure:"encoding"`
	OutputPaths []string `mapstructure:"output_paths"`
}

type StorefrontConfig struct {
	// RequestTimeout bounds every request to a storefront actor.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type SessionConfig struct {
	// TTL of the stored session record; zero keeps it until logout.
	TTL time.Duration `mapstructure:"ttl"`
}

type AdviceConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Fallback    string        `mapstructure:"fallback"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "storefront")
	v.SetDefault("gateway.host", "0.0.0.0")
	v.SetDefault("gateway.port", 8080)
	v.SetDefault("gateway.rate_limit", 0)
	v.SetDefault("gateway.rate_burst", 20)
	v.SetDefault("grpc.enabled", true)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 9090)
	v.SetDefault("etcd.enabled", false)
	v.SetDefault("etcd.dial_timeout", "5s")
	v.SetDefault("etcd.prefix", "/services/")
	v.SetDefault("etcd.lease_ttl", 30)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("mongodb.enabled", false)
	v.SetDefault("mongodb.database", "adoreshop")
	v.SetDefault("mongodb.collection", "storefront_events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.output_paths", []string{"stdout"})
	v.SetDefault("storefront.request_timeout", "5s")
	v.SetDefault("advice.timeout", "3s")
	v.SetDefault("advice.max_failures", 3)
	v.SetDefault("advice.open_timeout", "30s")
}

// Load reads a YAML config file. Any key can be overridden from the
// environment, e.g. ADORESHOP_REDIS_ADDR.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
