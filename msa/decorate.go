package msa

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ptm-api/models"
)

const gap = '-'

// DecorationLookup liefert die PTM-Annotationen einer Form an einer Stelle.
type DecorationLookup interface {
	Decorations(ctx context.Context, form string, position int64, residue string) ([]models.Decoration, error)
}

// Decorate fragt für jede Spalte jeder Sequenz die Annotationen ab, mit
// höchstens workers gleichzeitigen Abfragen. Positionen zählen nur Residuen;
// Lücken bekommen Position 0 und keine Abfrage. Ein Fehler bricht alles ab.
func Decorate(ctx context.Context, records []Record, lookup DecorationLookup, workers int) ([]models.Alignment, error) {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	alignments := make([]models.Alignment, len(records))
	for i, rec := range records {
		items := make([]models.AlignmentItem, len(rec.Seq))
		alignments[i] = models.Alignment{ID: rec.ID, Sequence: items}

		position := 0
		for col := 0; col < len(rec.Seq); col++ {
			site := string(rec.Seq[col])
			items[col] = models.AlignmentItem{Site: site, Decorations: []models.Decoration{}}
			if rec.Seq[col] == gap {
				continue
			}
			position++
			items[col].Position = position

			form, pos, slot := rec.ID, int64(position), &items[col]
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				decorations, err := lookup.Decorations(ctx, form, pos, site)
				if err != nil {
					return fmt.Errorf("decorate %s at %s%d: %w", form, site, pos, err)
				}
				if decorations != nil {
					slot.Decorations = decorations
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return alignments, nil
}
