package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "BLOOMORA_CONFIG_FILE"

type storage struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	RedisURL string `mapstructure:"redis_url"`
}

type session struct {
	IdentityKey string        `mapstructure:"identity_key"`
	SignInDelay time.Duration `mapstructure:"sign_in_delay"`
}

type checkout struct {
	PaymentDelay time.Duration `mapstructure:"payment_delay"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type consumers struct {
	SalesGroup string `mapstructure:"sales_group"`
}

type topics struct {
	OrdersPlaced string `mapstructure:"orders_placed"`
}

type broker struct {
	Enabled            bool      `mapstructure:"enabled"`
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	TLS                tlsFiles  `mapstructure:"tls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Storage        storage    `mapstructure:"storage"`
	Session        session    `mapstructure:"session"`
	Checkout       checkout   `mapstructure:"checkout"`
	Broker         broker     `mapstructure:"broker"`
}

var (
	ErrNoSeedBrokers   = errors.New("broker is enabled without seed brokers")
	ErrNoRegistry      = errors.New("broker is enabled without schema registry urls")
	ErrNoStorageTarget = errors.New("storage driver has no dsn or redis url")
)

// Load reads the config file named by the --config flag or
// BLOOMORA_CONFIG_FILE and exits the process on failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeHook also parses log levels such as "DEBUG" into [slog.Level].
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "file:bloomora.db")
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("session.identity_key", "bloomora_user")
	v.SetDefault("session.sign_in_delay", "1500ms")
	v.SetDefault("checkout.payment_delay", "2s")
	v.SetDefault("broker.enabled", false)
	v.SetDefault("broker.topics.orders_placed", "bloomora.orders.placed")
	v.SetDefault("broker.consumers.sales_group", "bloomora-sales")
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case "redis":
		if c.Storage.RedisURL == "" {
			return ErrNoStorageTarget
		}
	default:
		if c.Storage.DSN == "" {
			return ErrNoStorageTarget
		}
	}

	if !c.Broker.Enabled {
		return nil
	}
	if len(c.Broker.SeedBrokers) == 0 {
		return ErrNoSeedBrokers
	}
	if len(c.Broker.SchemaRegistryURLs) == 0 {
		return ErrNoRegistry
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Storage:
	Driver=%q
	DSN=%q
	RedisURL=%q

	Session:
	IdentityKey=%q
	SignInDelay=%q

	Checkout:
	PaymentDelay=%q

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		OrdersPlaced=%q
	Consumers:
		SalesGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Storage.Driver,
		redact(c.Storage.DSN),
		redact(c.Storage.RedisURL),
		c.Session.IdentityKey,
		c.Session.SignInDelay,
		c.Checkout.PaymentDelay,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.OrdersPlaced,
		c.Broker.Consumers.SalesGroup,
	)
}

// redact hides credentials in connection strings.
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
