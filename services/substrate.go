package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ptm-api/database"
	"ptm-api/evidence"
	"ptm-api/models"
)

// SubstrateEvents gruppiert und bewertet die Events jeder Form von id.
// Die PMID-Statistik gilt jeweils für eine Form.
func (s *PTMService) SubstrateEvents(ctx context.Context, id string) ([]models.SubFormEvents, error) {
	forms, err := s.subForms(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]models.SubFormEvents, 0, len(forms))
	for _, form := range forms {
		events, err := s.eventsForSubForm(ctx, form)
		if err != nil {
			return nil, fmt.Errorf("sub form %s: %w", form, err)
		}
		out = append(out, models.SubFormEvents{SubForm: form, Events: events})
	}
	return out, nil
}

func (s *PTMService) subForms(ctx context.Context, id string) ([]string, error) {
	var forms []string
	err := s.DB.Query(ctx, database.SubFormsQuery(s.DB.Engine()), []any{id}, func(row database.Row) error {
		f, _ := row.String("sub_form_code")
		forms = append(forms, f)
		return nil
	})
	return forms, err
}

func (s *PTMService) eventsForSubForm(ctx context.Context, form string) ([]models.Event, error) {
	log := s.Logger.With(zap.String("sub_form", form))

	g := evidence.NewGrouper()
	err := s.DB.Query(ctx, database.EventsQuery(s.DB.Engine()), []any{form}, func(row database.Row) error {
		return g.Add(evidence.FromRow(row))
	})
	if err != nil {
		log.Error("Event aggregation failed", zap.Error(err))
		return nil, err
	}

	events, diag := g.Finish()
	reportDiagnostics(log, diag)
	eventsAggregatedCounter.WithLabelValues("streaming").Add(float64(len(events)))
	return events, nil
}

// EventsBySubForm ist die JSON-Form der Antwort.
func EventsBySubForm(forms []models.SubFormEvents) map[string][]models.Event {
	out := make(map[string][]models.Event, len(forms))
	for _, f := range forms {
		out[f.SubForm] = f.Events
	}
	return out
}
