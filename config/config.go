package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type api struct {
	CatalogURL    string        `mapstructure:"catalog_url"`
	RatesURL      string        `mapstructure:"rates_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
}

type store struct {
	Path string `mapstructure:"path"`
}

type search struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	API            api        `mapstructure:"api"`
	Store          store      `mapstructure:"store"`
	Search         search     `mapstructure:"search"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
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

	API:
	CatalogURL=%q
	RatesURL=%q
	Timeout=%q
	RetryAttempts=%d

	Store:
	Path=%q

	Search:
	Debounce=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.API.CatalogURL,
		c.API.RatesURL,
		c.API.Timeout,
		c.API.RetryAttempts,
		c.Store.Path,
		c.Search.Debounce,
	)
}
