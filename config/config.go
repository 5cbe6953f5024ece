package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	go_ora "github.com/sijms/go-ora/v2"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// postgres oder oracle
	DBEngine   string `envconfig:"DB_ENGINE" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	// Datenbankname bzw. Service-Name bei Oracle
	DBName string `envconfig:"DB_NAME" required:"true"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"8088"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Multiple Sequence Alignment
	MusclePath string `envconfig:"MUSCLE_PATH" default:"muscle"`
	MSAWorkers int    `envconfig:"MSA_WORKERS" default:"8"`

	// Statistik-Snapshot: lokal oder aus S3, periodisch neu geladen
	StatisticsFile string `envconfig:"STATISTICS_FILE" default:"static/statistics.json"`
	StatisticsCron string `envconfig:"STATISTICS_CRON" default:"@every 1h"`

	StatsS3URL    string `envconfig:"STATS_S3_URL"`
	StatsS3Region string `envconfig:"STATS_S3_REGION" default:"us-east-1"`
	StatsS3Key    string `envconfig:"STATS_S3_KEY"`
	StatsS3Secret string `envconfig:"STATS_S3_SECRET"`
	StatsS3Bucket string `envconfig:"STATS_S3_BUCKET"`
	StatsS3Object string `envconfig:"STATS_S3_OBJECT" default:"statistics.json"`
}

// PostgresDSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// OracleURL baut die go-ora Verbindungs-URL (DB_NAME ist hier der Service-Name).
func (c *Config) OracleURL() string {
	return go_ora.BuildUrl(c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, nil)
}

// S3Enabled meldet, ob Statistiken aus einem Bucket gelesen werden sollen.
func (c *Config) S3Enabled() bool {
	return c.StatsS3Bucket != ""
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return &c, err
	}
	c.DBEngine = strings.ToLower(strings.TrimSpace(c.DBEngine))
	if c.DBEngine != "postgres" && c.DBEngine != "oracle" {
		return &c, fmt.Errorf("unsupported DB_ENGINE %q (expected postgres or oracle)", c.DBEngine)
	}
	if c.MSAWorkers <= 0 {
		c.MSAWorkers = 1
	}
	return &c, nil
}
