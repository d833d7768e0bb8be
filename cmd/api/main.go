package main

import (
	"log"

	"go.uber.org/zap"

	"agriconnect/auth"
	"agriconnect/backend"
	"agriconnect/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("bootstrap config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("bootstrap logger: %v", err)
	}
	defer logger.Sync()

	client, err := backend.NewClient(cfg.FunctionsBaseURL, cfg.AnonKey)
	if err != nil {
		logger.Fatal("bootstrap backend client", zap.Error(err))
	}

	authClient, err := backend.NewAuthClient(cfg.AuthBaseURL, cfg.AnonKey)
	if err != nil {
		logger.Fatal("bootstrap auth client", zap.Error(err))
	}

	sessions := auth.NewSessionStore()
	provisioner := auth.NewProvisioner(client, authClient)

	logger.Info("agriconnect core ready",
		zap.String("project", cfg.ProjectID),
		zap.Bool("session_active", sessions.Get() != nil),
		zap.Bool("provisioner", provisioner != nil),
	)
}
