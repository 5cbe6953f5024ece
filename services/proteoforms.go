package services

import (
	"context"

	"ptm-api/database"
	"ptm-api/evidence"
	"ptm-api/models"
)

func (s *PTMService) Proteoforms(ctx context.Context, id string) ([]models.Proteoform, error) {
	e := s.DB.Engine()
	out := []models.Proteoform{}
	err := s.DB.Query(ctx, database.ProteoformsQuery(e), []any{e.LikeArg(id)}, func(row database.Row) error {
		p := models.Proteoform{Source: sourceOf(row, "source_label")}
		p.ProID, _ = row.String("sub_code")
		p.Label, _ = row.String("sub_symbol")
		p.PTMEnzyme.ProID, _ = row.String("enz_code")
		p.PTMEnzyme.Label, _ = row.String("enz_symbol")
		sites, _ := row.String("sites")
		p.Sites = evidence.SplitList(sites, ",")
		pmids, _ := row.String("pmids")
		p.PMIDs = evidence.SplitPMIDs(pmids)
		out = append(out, p)
		return nil
	})
	return out, err
}

func (s *PTMService) ProteoformPPIs(ctx context.Context, id string) ([]models.ProteoformPPI, error) {
	e := s.DB.Engine()
	out := []models.ProteoformPPI{}
	err := s.DB.Query(ctx, database.ProteoformPPIQuery(e), []any{e.LikeArg(id)}, func(row database.Row) error {
		p := models.ProteoformPPI{Source: sourceOf(row, "source_label")}
		p.Protein1.ProID, _ = row.String("sub_code")
		p.Protein1.Label, _ = row.String("sub_symbol")
		p.Protein2.ProID, _ = row.String("enz_code")
		p.Protein2.Label, _ = row.String("enz_symbol")
		p.Relation, _ = row.String("event_name")
		pmids, _ := row.String("pmids")
		p.PMIDs = evidence.SplitPMIDs(pmids)
		out = append(out, p)
		return nil
	})
	return out, err
}

// PTMPPIs liest MV_EFIP; id kann Substrat oder Interaktionspartner sein.
func (s *PTMService) PTMPPIs(ctx context.Context, id string) ([]models.PTMPPI, error) {
	out := []models.PTMPPI{}
	err := s.DB.Query(ctx, database.PTMPPIQuery(s.DB.Engine()), []any{id, id}, func(row database.Row) error {
		p := models.PTMPPI{
			Site:   evidence.SiteOf(row, "ptm_residue", "ptm_position").String(),
			Source: sourceOf(row, "ppi_source_label"),
		}
		p.PTMType, _ = row.String("ptm_event_name")
		p.Substrate.UniprotID, _ = row.String("ppi_sub_code")
		p.Substrate.Name, _ = row.String("ppi_sub_symbol")
		p.Interactant.UniprotID, _ = row.String("ppi_pr_code")
		p.Interactant.Name, _ = row.String("ppi_pr_symbol")
		p.AssociationType, _ = row.String("impact")
		p.PMID, _ = row.String("ppi_pmids")
		out = append(out, p)
		return nil
	})
	return out, err
}
