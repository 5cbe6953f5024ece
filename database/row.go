package database

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row ist die schmale Sicht auf eine bereits gelesene Ergebniszeile.
// Alle Zugriffe sind NULL-sicher: fehlende oder NULL-Spalten liefern ok=false.
type Row interface {
	String(column string) (string, bool)
	Int64(column string) (int64, bool)
	Bool(column string) (bool, bool)
}

// pgRow: Werte aus pgx (string, int64, bool, []byte, time.Time ...).
type pgRow struct {
	values map[string]any
}

func (r pgRow) String(column string) (string, bool) {
	return coerceString(lookup(r.values, column))
}

func (r pgRow) Int64(column string) (int64, bool) {
	return coerceInt64(lookup(r.values, column))
}

func (r pgRow) Bool(column string) (bool, bool) {
	v, ok := lookup(r.values, column)
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	default:
		s, ok := coerceString(t, true)
		if !ok {
			return false, false
		}
		return parseFlag(s)
	}
}

// oracleRow: go-ora liefert Spaltennamen in Großbuchstaben, NUMBER teils als
// float64 oder string und Flags als CHAR ('T'/'F', 'Y'/'N').
type oracleRow struct {
	values map[string]any
}

func (r oracleRow) String(column string) (string, bool) {
	return coerceString(lookup(r.values, column))
}

func (r oracleRow) Int64(column string) (int64, bool) {
	return coerceInt64(lookup(r.values, column))
}

func (r oracleRow) Bool(column string) (bool, bool) {
	v, ok := lookup(r.values, column)
	if !ok {
		return false, false
	}
	if n, ok := coerceInt64(v, true); ok {
		return n != 0, true
	}
	s, ok := coerceString(v, true)
	if !ok {
		return false, false
	}
	return parseFlag(s)
}

// MapRow ist eine In-Memory-Zeile, z.B. für Tests oder vorberechnete Daten.
// Semantik wie bei Postgres.
type MapRow map[string]any

func (m MapRow) String(column string) (string, bool) {
	return pgRow{values: m.normalized()}.String(column)
}

func (m MapRow) Int64(column string) (int64, bool) {
	return pgRow{values: m.normalized()}.Int64(column)
}

func (m MapRow) Bool(column string) (bool, bool) {
	return pgRow{values: m.normalized()}.Bool(column)
}

func (m MapRow) normalized() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

func lookup(values map[string]any, column string) (any, bool) {
	v, ok := values[strings.ToLower(column)]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func coerceString(v any, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case time.Time:
		return t.Format(time.RFC3339), true
	default:
		return fmt.Sprint(t), true
	}
}

// coerceInt64 akzeptiert auch numerischen Text; alles andere gilt als nicht vorhanden.
func coerceInt64(v any, ok bool) (int64, bool) {
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, false
		}
		return int64(t), true
	case float32:
		return coerceInt64(float64(t), true)
	case bool:
		return 0, false
	default:
		s, _ := coerceString(t, true)
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
}

func parseFlag(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "y", "yes", "1":
		return true, true
	case "f", "false", "n", "no", "0":
		return false, true
	default:
		return false, false
	}
}
