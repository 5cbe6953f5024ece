package database

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ptm-api/apperrors"
)

// PostgresQuerier läuft über GORM; Platzhalter sind "?" und werden von GORM gebunden.
type PostgresQuerier struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// OpenPostgres verbindet sich über den GORM-Postgres-Treiber.
func OpenPostgres(dsn string, log *zap.Logger) (*PostgresQuerier, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, apperrors.Upstream("connect to postgres", err)
	}
	log.Info("Successfully connected to postgres database.")
	return &PostgresQuerier{DB: db, Logger: log}, nil
}

func (p *PostgresQuerier) Engine() Engine { return Postgres }

func (p *PostgresQuerier) Query(ctx context.Context, query string, args []any, fn func(Row) error) error {
	rows, err := p.DB.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		p.Logger.Error("Postgres query failed", zap.String("query", query), zap.Error(err))
		return apperrors.Upstream("postgres query", err)
	}
	return scanRows(rows, func(values map[string]any) Row { return pgRow{values: values} }, fn)
}

func (p *PostgresQuerier) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
