package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"ptm-api/config"
	"ptm-api/database"
	"ptm-api/services"
	"ptm-api/storage"
)

const snapshotPrefix = "statistics-"

type SnapshotConfig struct {
	KeepSnapshots int           `envconfig:"KEEP_SNAPSHOTS" default:"4"`
	Timeout       time.Duration `envconfig:"SNAPSHOT_TIMEOUT" default:"10m"`
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()
	logging.Info("Starte Statistik-Snapshot...")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	var snapCfg SnapshotConfig
	if err := envconfig.Process("", &snapCfg); err != nil {
		logging.Fatal("Snapshot config load error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapCfg.Timeout)
	defer cancel()

	// 1. Statistiken aus der Datenbank berechnen
	db, err := database.Connect(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	now := time.Now()
	stats, err := services.ComputeStatistics(ctx, db, now)
	if err != nil {
		logging.Fatal("Computing statistics failed", zap.Error(err))
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		logging.Fatal("Encoding statistics failed", zap.Error(err))
	}

	// Ohne Bucket nur lokal schreiben
	if !cfg.S3Enabled() {
		if err := writeFile(cfg.StatisticsFile, data); err != nil {
			logging.Fatal("Writing statistics file failed", zap.String("path", cfg.StatisticsFile), zap.Error(err))
		}
		logging.Info("Statistik-Snapshot lokal geschrieben", zap.String("path", cfg.StatisticsFile))
		return
	}

	// 2. Snapshot und stabilen Schlüssel hochladen
	bucket, err := storage.NewBucket(ctx, cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	key := snapshotKey(now)
	for _, k := range []string{key, cfg.StatsS3Object} {
		if err := bucket.Put(ctx, k, data, "application/json"); err != nil {
			logging.Fatal("Upload failed", zap.String("key", k), zap.Error(err))
		}
	}
	logging.Info("Snapshot hochgeladen", zap.String("bucket", bucket.Name), zap.String("key", key))

	// 3. Alte Snapshots rotieren
	deleted, err := bucket.Rotate(ctx, snapshotPrefix, snapCfg.KeepSnapshots)
	if err != nil {
		logging.Warn("Snapshot rotation incomplete", zap.Error(err))
	}
	logging.Info("Statistik-Snapshot abgeschlossen", zap.Strings("deleted", deleted))
}

func snapshotKey(t time.Time) string {
	return fmt.Sprintf("%s%s.json", snapshotPrefix, t.UTC().Format("2006-01-02T15-04-05Z"))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
