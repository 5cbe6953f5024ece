// Package dbtest stellt einen In-Memory-Querier für Tests bereit.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ptm-api/database"
)

type result struct {
	match string
	args  []any
	rows  []database.MapRow
	err   error
}

// Call ist eine aufgezeichnete Query.
type Call struct {
	Query string
	Args  []any
}

// Querier beantwortet Queries anhand registrierter Teilstrings.
// Der erste passende Eintrag gewinnt; ohne Treffer gibt es keine Zeilen.
type Querier struct {
	Kind database.Engine

	mu      sync.Mutex
	results []result
	calls   []Call
}

func New(kind database.Engine) *Querier {
	return &Querier{Kind: kind}
}

// On registriert Zeilen für Queries, die match enthalten.
func (q *Querier) On(match string, rows ...database.MapRow) *Querier {
	return q.OnArgs(match, nil, rows...)
}

// OnArgs wie On, aber nur wenn auch die Argumente übereinstimmen.
func (q *Querier) OnArgs(match string, args []any, rows ...database.MapRow) *Querier {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results = append(q.results, result{match: match, args: args, rows: rows})
	return q
}

// Fail lässt Queries, die match enthalten, mit err scheitern.
func (q *Querier) Fail(match string, err error) *Querier {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results = append(q.results, result{match: match, err: err})
	return q
}

func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

func (q *Querier) Engine() database.Engine { return q.Kind }

func (q *Querier) Query(ctx context.Context, query string, args []any, fn func(database.Row) error) error {
	q.mu.Lock()
	q.calls = append(q.calls, Call{Query: query, Args: args})
	var hit *result
	for i := range q.results {
		r := &q.results[i]
		if strings.Contains(query, r.match) && (r.args == nil || fmt.Sprint(r.args) == fmt.Sprint(args)) {
			hit = r
			break
		}
	}
	q.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if hit == nil {
		return nil
	}
	if hit.err != nil {
		return hit.err
	}
	for _, row := range hit.rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func (q *Querier) Close() error { return nil }
