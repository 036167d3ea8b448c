package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heyyrintu/mis-lifelong/internal/config"
	"github.com/heyyrintu/mis-lifelong/internal/logger"
	"github.com/heyyrintu/mis-lifelong/internal/server"
)

var (
	port    = flag.Int("port", 0, "listen port (config.toml wins when it sets one explicitly)")
	devMode = flag.Bool("dev", false, "dev mode: console logging, gin debug")
	dataDir = flag.String("dataDir", "", "data directory (overrides config file)")
)

func main() {
	flag.Parse()

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger.Setup(cfg.Server.DevMode)
	log := logger.Component("main")

	if dir, err := config.EnsureDataDir(cfg); err != nil {
		log.Warn().Err(err).Msg("failed to create data directory")
	} else {
		log.Info().Str("dataDir", dir).Msg("data directory ready")
	}

	srv := server.NewServer(cfg)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := srv.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
}
