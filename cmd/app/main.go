package main

import (
	"context"

	"velvet/config"
	"velvet/di"
	"velvet/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	sweeper := di.InitializeSweeper()
	go sweeper.Run(context.Background())

	http := di.InitializeService()
	http.Serve()
}
