package services

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/catalog"
	"ptm-api/database"
	"ptm-api/evidence"
	"ptm-api/models"
)

// SiteKeys prüft den Request-Body. Positionen müssen ganzzahlig sein.
func SiteKeys(subs []models.QuerySubstrate) ([]database.SiteKey, error) {
	keys := make([]database.SiteKey, 0, len(subs))
	for _, q := range subs {
		pos, err := strconv.ParseInt(strings.TrimSpace(q.SitePosition), 10, 64)
		if err != nil {
			return nil, apperrors.Rejectf("invalid site_position %q for %s", q.SitePosition, q.SubstrateAC)
		}
		keys = append(keys, database.SiteKey{
			SubstrateAC: strings.TrimSpace(q.SubstrateAC),
			Residue:     strings.TrimSpace(q.SiteResidue),
			Position:    pos,
		})
	}
	return keys, nil
}

// BatchEnzymes liefert pro (Enzym, Stelle, PTM-Typ) ein bewertetes Event.
func (s *PTMService) BatchEnzymes(ctx context.Context, subs []models.QuerySubstrate) ([]models.BatchEvent, error) {
	keys, err := SiteKeys(subs)
	if err != nil {
		return nil, err
	}
	events := []models.BatchEvent{}
	if len(keys) == 0 {
		return events, nil
	}

	var diag evidence.Diagnostics
	query, args := database.BatchEnzymesQuery(s.DB.Engine(), keys)
	err = s.DB.Query(ctx, query, args, func(row database.Row) error {
		ev, d := evidence.BuildBatchEvent(evidence.BatchFromRow(row))
		diag.MissingPMIDs = append(diag.MissingPMIDs, d.MissingPMIDs...)
		diag.MalformedCounts += d.MalformedCounts
		events = append(events, ev)
		return nil
	})
	if err != nil {
		s.Logger.Error("Batch enzyme query failed", zap.Int("sites", len(keys)), zap.Error(err))
		return nil, err
	}

	reportDiagnostics(s.Logger, diag)
	eventsAggregatedCounter.WithLabelValues("batch").Add(float64(len(events)))
	return events, nil
}

// BatchPPI liefert die PTM-abhängigen Interaktionen an den angefragten Stellen.
func (s *PTMService) BatchPPI(ctx context.Context, subs []models.QuerySubstrate) ([]models.BatchPPI, error) {
	keys, err := SiteKeys(subs)
	if err != nil {
		return nil, err
	}
	ppis := []models.BatchPPI{}
	if len(keys) == 0 {
		return ppis, nil
	}

	query, args := database.BatchPPIQuery(s.DB.Engine(), keys)
	err = s.DB.Query(ctx, query, args, func(row database.Row) error {
		site := evidence.SiteOf(row, "ptm_residue", "ptm_position")
		p := models.BatchPPI{
			Site:         site.String(),
			SitePosition: site.Position,
			PMIDs:        []string{},
		}
		p.PTMType, _ = row.String("ptm_event_name")
		p.AssociationType, _ = row.String("impact")
		p.Interactant.UniprotID, _ = row.String("ppi_pr_code")
		p.Interactant.Name, _ = row.String("ppi_pr_symbol")
		p.Substrate.UniprotID, _ = row.String("ppi_sub_code")
		p.Substrate.Name, _ = row.String("ppi_sub_symbol")
		p.Source = sourceOf(row, "ptm_source_label")
		raw, _ := row.String("ppi_pmids")
		p.PMIDs = evidence.SplitList(raw, ",")
		ppis = append(ppis, p)
		return nil
	})
	if err != nil {
		s.Logger.Error("Batch PPI query failed", zap.Int("sites", len(keys)), zap.Error(err))
		return nil, err
	}
	return ppis, nil
}

func sourceOf(row database.Row, column string) *models.Source {
	code, _ := row.String(column)
	if src, ok := catalog.LookupSource(code); ok {
		return &src
	}
	return nil
}
