package database

import (
	"context"
	"database/sql"

	_ "github.com/sijms/go-ora/v2"
	"go.uber.org/zap"

	"ptm-api/apperrors"
)

// OracleQuerier nutzt go-ora über database/sql; Platzhalter sind ":1", ":2", ...
type OracleQuerier struct {
	DB     *sql.DB
	Logger *zap.Logger
}

// OpenOracle öffnet den Pool und prüft die Verbindung einmal.
func OpenOracle(ctx context.Context, url string, log *zap.Logger) (*OracleQuerier, error) {
	db, err := sql.Open("oracle", url)
	if err != nil {
		return nil, apperrors.Upstream("open oracle", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.Upstream("connect to oracle", err)
	}
	log.Info("Successfully connected to oracle database.")
	return &OracleQuerier{DB: db, Logger: log}, nil
}

func (o *OracleQuerier) Engine() Engine { return Oracle }

func (o *OracleQuerier) Query(ctx context.Context, query string, args []any, fn func(Row) error) error {
	rows, err := o.DB.QueryContext(ctx, query, args...)
	if err != nil {
		o.Logger.Error("Oracle query failed", zap.String("query", query), zap.Error(err))
		return apperrors.Upstream("oracle query", err)
	}
	return scanRows(rows, func(values map[string]any) Row { return oracleRow{values: values} }, fn)
}

func (o *OracleQuerier) Close() error {
	return o.DB.Close()
}
