package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"os"

	"nychousing-backend/config"
	"nychousing-backend/logging"
	"nychousing-backend/service"
	"nychousing-backend/storage"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "path to the JSON price model artifact")
	key := flag.String("key", "", "artifact key in the store (defaults to MODEL_ARTIFACT_PATH)")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	if *file == "" {
		logger.Fatal("missing -file")
	}
	if *key == "" {
		*key = cfg.ModelArtifactPath
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("failed to read artifact", zap.String("file", *file), zap.Error(err))
	}

	// Refuse to publish what the server would reject at load time
	if _, err := service.ParseModelArtifact(bytes.NewReader(data)); err != nil {
		logger.Fatal("artifact is not a valid price model", zap.String("file", *file), zap.Error(err))
	}

	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	ctx := context.Background()
	location, err := store.Upload(ctx, *key, bytes.NewReader(data))
	if err != nil {
		logger.Fatal("failed to upload artifact", zap.String("key", *key), zap.Error(err))
	}

	logger.Info("price model published",
		zap.String("key", *key),
		zap.String("location", location),
		zap.Int("bytes", len(data)))
}
