package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fsdevblog/shortlink/internal/app"
	"github.com/fsdevblog/shortlink/internal/config"
)

func main() {
	conf := config.MustLoadConfig()

	a := app.Must(app.New(*conf))

	a.Logger.Info("starting shortlink server",
		zap.String("address", conf.ServerAddress),
		zap.String("storage", string(conf.DBType)),
		zap.Bool("redis", conf.RedisURL != ""),
	)
	if err := a.Run(); err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Fatal("server stopped", zap.Error(err))
	}
}
