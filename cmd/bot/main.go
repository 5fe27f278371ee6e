package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"lynxbot/internal/app"

	"github.com/rs/zerolog"
)

func main() {
	configPath := "./config/config.toml"
	sessionPath := "./data/session.db"
	databasePath := "./data/database.db"
	logger := zerolog.
		New(os.Stdout).
		With().
		Timestamp().
		Logger().
		Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.TimeOnly,
			FormatMessage: func(s any) string {
				if s, ok := s.(string); ok {
					return s
				}
				return ""
			},
		}).
		Level(zerolog.InfoLevel)

	lynx, err := app.StartLynxbot(configPath, sessionPath, databasePath, &logger)
	if err != nil {
		panic(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGABRT)
	<-c

	lynx.Client.Disconnect()
	lynx.Stop()
	lynx.Container.Close()
	lynx.UserDB.Close()
}
