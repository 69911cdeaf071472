package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Accounts []AccountConfig
	Trade    TradeConfig
	Runtime  RuntimeConfig
}

type ServerConfig struct {
	Listen string
}

type AccountConfig struct {
	Name    string `mapstructure:"name"`
	ApiKey  string `mapstructure:"api_key"`
	Secret  string `mapstructure:"secret"`
	BaseUrl string `mapstructure:"base_url"`
}

type TradeConfig struct {
	PricePrecision int
	FlattenWaitSec int
	OrderStream    bool
	WSPrivateUrl   string
}

type RuntimeConfig struct {
	Log LogConfig
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func Load() (*Config, error) {

	cfg := &Config{}
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.ReadInConfig()

	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("trade.price_precision", 2)
	viper.SetDefault("trade.flatten_wait_sec", 5)
	viper.SetDefault("trade.ws_private_url", "wss://stream.bybit.com/v5/private")

	cfg.Server = ServerConfig{
		Listen: viper.GetString("server.listen"),
	}

	var accounts []AccountConfig
	if err := viper.UnmarshalKey("accounts", &accounts); err != nil {
		return nil, fmt.Errorf("Не удалось разобрать список аккаунтов: %w", err)
	}
	for i := range accounts {
		accounts[i].ApiKey = envSub(accounts[i].ApiKey)
		accounts[i].Secret = envSub(accounts[i].Secret)
		if accounts[i].BaseUrl == "" {
			accounts[i].BaseUrl = "https://api.bybit.com"
		}
		if accounts[i].Name == "" {
			accounts[i].Name = fmt.Sprintf("account-%d", i+1)
		}
	}
	cfg.Accounts = accounts

	cfg.Trade = TradeConfig{
		PricePrecision: viper.GetInt("trade.price_precision"),
		FlattenWaitSec: viper.GetInt("trade.flatten_wait_sec"),
		OrderStream:    viper.GetBool("trade.order_stream"),
		WSPrivateUrl:   viper.GetString("trade.ws_private_url"),
	}

	cfg.Runtime = RuntimeConfig{
		Log: LogConfig{
			Level:      viper.GetString("runtime.log.level"),
			Format:     viper.GetString("runtime.log.format"),
			File:       viper.GetString("runtime.log.file"),
			MaxSize:    viper.GetInt("runtime.log.max_size"),
			MaxBackups: viper.GetInt("runtime.log.max_backups"),
			MaxAge:     viper.GetInt("runtime.log.max_age"),
			Compress:   viper.GetBool("runtime.log.compress"),
		},
	}

	return cfg, nil
}

func envSub(val string) string {
	if val == "" {
		return ""
	}

	re := regexp.MustCompile(`\$\{(\w+)\}`)
	return re.ReplaceAllStringFunc(val, func(match string) string {
		envKey := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(envKey)
	})
}
