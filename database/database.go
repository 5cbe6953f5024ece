package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/config"
)

// Engine bestimmt Platzhalter-Syntax und SQL-Dialekt.
type Engine int

const (
	Postgres Engine = iota
	Oracle
)

func (e Engine) String() string {
	if e == Oracle {
		return "oracle"
	}
	return "postgres"
}

// ParseEngine liest den Wert aus DB_ENGINE.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "postgres":
		return Postgres, nil
	case "oracle":
		return Oracle, nil
	default:
		return Postgres, fmt.Errorf("unknown database engine %q", name)
	}
}

// Querier führt eine Query aus und reicht jede Zeile an fn weiter.
// Gibt fn einen Fehler zurück, wird abgebrochen und dieser Fehler geliefert.
type Querier interface {
	Engine() Engine
	Query(ctx context.Context, query string, args []any, fn func(Row) error) error
	Close() error
}

// Connect öffnet die Verbindung passend zur konfigurierten Engine.
func Connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (Querier, error) {
	engine, err := ParseEngine(cfg.DBEngine)
	if err != nil {
		return nil, err
	}
	switch engine {
	case Oracle:
		return OpenOracle(ctx, cfg.OracleURL(), log)
	default:
		return OpenPostgres(cfg.PostgresDSN(), log)
	}
}

// ErrStopIteration beendet Query vorzeitig ohne Fehler (z.B. nach der ersten Zeile).
var ErrStopIteration = errors.New("stop iteration")

// QueryOne liefert nur die erste Zeile an fn; found=false wenn es keine gab.
func QueryOne(ctx context.Context, q Querier, query string, args []any, fn func(Row) error) (bool, error) {
	found := false
	err := q.Query(ctx, query, args, func(row Row) error {
		found = true
		if err := fn(row); err != nil {
			return err
		}
		return ErrStopIteration
	})
	if errors.Is(err, ErrStopIteration) {
		err = nil
	}
	return found, err
}

// scanRows liest alle Zeilen in Spalten-Maps und verpackt sie engine-spezifisch.
func scanRows(rows *sql.Rows, wrap func(map[string]any) Row, fn func(Row) error) error {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return apperrors.Upstream("read columns", err)
	}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return apperrors.Upstream("scan row", err)
		}
		record := make(map[string]any, len(columns))
		for i, col := range columns {
			record[strings.ToLower(col)] = values[i]
		}
		if err := fn(wrap(record)); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Upstream("iterate rows", err)
	}
	return nil
}
