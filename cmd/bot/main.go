package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hookbot/internal/api"
	"hookbot/internal/config"
	"hookbot/internal/exchange/bybit"
	"hookbot/internal/exchange/bybit/ws"
	"hookbot/internal/logger"
	"hookbot/internal/models"
	"hookbot/internal/trade"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Runtime.Log.Level,
		Format:     cfg.Runtime.Log.Format,
		Output:     cfg.Runtime.Log.File,
		MaxSize:    cfg.Runtime.Log.MaxSize,
		MaxBackups: cfg.Runtime.Log.MaxBackups,
		MaxAge:     cfg.Runtime.Log.MaxAge,
		Compress:   cfg.Runtime.Log.Compress,
	})

	log.Info("Роутер сигналов запущен.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var clients []trade.Client
	var accounts []models.Account
	for _, acc := range cfg.Accounts {
		if acc.ApiKey == "" || acc.Secret == "" {
			log.WithAccount(acc.Name).Warn("Аккаунт без ключей пропущен.")
			continue
		}
		account := models.Account{
			Name:    acc.Name,
			ApiKey:  acc.ApiKey,
			Secret:  acc.Secret,
			BaseUrl: acc.BaseUrl,
		}
		accounts = append(accounts, account)
		clients = append(clients, bybit.New(account, log))
	}

	if len(clients) == 0 {
		log.Warn("Нет ни одного аккаунта с ключами.")
	}

	if cfg.Trade.OrderStream {
		for _, account := range accounts {
			watcher := ws.NewWatcher(cfg.Trade.WSPrivateUrl, account, log)
			if err := watcher.Start(ctx); err != nil {
				log.WithAccount(account.Name).WithError(err).Warn("Поток ордеров не запустился.")
			}
		}
	}

	submitter := trade.New(clients, cfg.Trade.PricePrecision, cfg.Trade.FlattenWaitSec, log)
	server := api.NewServer(cfg.Server.Listen, submitter, log)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("HTTP сервер завершился с ошибкой.")
		}
	}()
	<-sigCh

	cancel()

	log.Info("Роутер сигналов остановлен.")
}
