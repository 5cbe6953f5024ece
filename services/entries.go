package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/catalog"
	"ptm-api/database"
	"ptm-api/evidence"
	"ptm-api/models"
)

// PTMService beantwortet alle Abfragen gegen die materialisierten Views.
type PTMService struct {
	DB     database.Querier
	Logger *zap.Logger
}

func NewPTMService(db database.Querier, logger *zap.Logger) *PTMService {
	return &PTMService{DB: db, Logger: logger}
}

// Info liefert den Eintrag samt optionalem PRO-Datensatz.
func (s *PTMService) Info(ctx context.Context, id string) (*models.Info, error) {
	var info *models.Info
	found, err := database.QueryOne(ctx, s.DB, database.InfoQuery(s.DB.Engine()), []any{id}, func(row database.Row) error {
		info = buildInfo(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("entry %s not found", id)
	}

	pro, err := s.proInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	info.Pro = pro
	return info, nil
}

func (s *PTMService) proInfo(ctx context.Context, id string) (*models.Pro, error) {
	var pro *models.Pro
	_, err := database.QueryOne(ctx, s.DB, database.ProInfoQuery(s.DB.Engine()), []any{"PR:" + id}, func(row database.Row) error {
		p := models.Pro{}
		p.ID, _ = row.String("iptm_entry_code")
		p.Name, _ = row.String("protein_name")
		p.Category, _ = row.String("category")
		p.Definition, _ = row.String("definition")
		p.ShortLabel, _ = row.String("protein_synonyms")
		pro = &p
		return nil
	})
	return pro, err
}

func buildInfo(row database.Row) *models.Info {
	info := &models.Info{Organism: organismOf(row)}
	info.UniprotAC, _ = row.String("iptm_entry_code")
	info.UniprotID, _ = row.String("uniprot_id")
	info.ProteinName, _ = row.String("protein_name")
	info.GeneName, _ = row.String("gene_name")
	syn, _ := row.String("gene_syn")
	info.Synonyms = evidence.SplitList(syn, "|")
	return info
}

func organismOf(row database.Row) models.Organism {
	var o models.Organism
	o.TaxonCode, _ = row.String("taxon_code")
	o.Species, _ = row.String("taxon_species")
	o.CommonName, _ = row.String("taxon_common")
	return o
}

// SearchParams sind die bereits validierten Parameter von /search und /browse.
type SearchParams struct {
	Term      string
	TermType  string
	Role      string
	PTMTypes  []string
	Organisms []int

	Paginate bool
	Start    int
	End      int
}

// PTMLabels löst die PTM-Namen auf. Ohne Angabe gelten alle Kürzel,
// unbekannte Namen werden abgelehnt.
func PTMLabels(names []string) ([]string, error) {
	if len(names) == 0 {
		return catalog.DefaultPTMLabels(), nil
	}
	labels := make([]string, 0, len(names))
	for _, n := range names {
		l, ok := catalog.PTMLabel(n)
		if !ok {
			return nil, apperrors.Rejectf("invalid PTM type %s", n)
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// Search filtert in der DB nach Begriff, Rolle und Organismus und danach
// hier nach den PTM-Kürzeln. total ist die Trefferzahl vor dem Paging.
func (s *PTMService) Search(ctx context.Context, p SearchParams) (results []models.SearchResult, total int, err error) {
	labels, err := PTMLabels(p.PTMTypes)
	if err != nil {
		return nil, 0, err
	}
	if p.Paginate && p.End <= p.Start {
		return nil, 0, apperrors.Rejectf("end_index cannot be smaller than or equal to start index")
	}

	p.Term = NormalizeTerm(p.Term)
	query, args, err := database.SearchQuery(s.DB.Engine(), p.Term, p.TermType, p.Role, p.Organisms)
	if err != nil {
		return nil, 0, err
	}

	results = []models.SearchResult{}
	err = s.DB.Query(ctx, query, args, func(row database.Row) error {
		r := buildSearchResult(row)
		if hasAnyLabel(r.PTMLabels, labels) {
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		s.Logger.Error("Search query failed", zap.String("term", p.Term), zap.Error(err))
		return nil, 0, err
	}

	total = len(results)
	if p.Paginate {
		results = page(results, p.Start, p.End)
	}
	return results, total, nil
}

func page[T any](items []T, start, end int) []T {
	if start < 0 {
		start = 0
	}
	if start >= len(items) {
		return items[:0]
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func buildSearchResult(row database.Row) models.SearchResult {
	r := models.SearchResult{Organism: organismOf(row)}
	r.IPTMID, _ = row.String("iptm_entry_code")
	r.UniprotAC, _ = row.String("uniprot_id")
	r.ProteinName, _ = row.String("protein_name")
	r.GeneName, _ = row.String("gene_name")
	syn, _ := row.String("gene_syn")
	r.Synonyms = evidence.SplitList(syn, "|")

	r.SubstrateRole = flag(row, "role_as_substrate")
	r.EnzymeRole = flag(row, "role_as_enzyme")
	r.PTMDependentPPIRole = flag(row, "role_as_ppi")
	r.SubstrateNum = optInt(row, "num_substrate")
	r.EnzymeNum = optInt(row, "num_enzyme")
	r.PTMDependentPPINum = optInt(row, "num_ppi")
	r.Sites = optInt(row, "num_site")
	r.Isoforms = optInt(row, "num_form")

	ptms, _ := row.String("list_as_substrate")
	r.PTMLabels = evidence.Dedupe(evidence.SplitList(ptms, ","))
	return r
}

// flag: nur 'T' ist wahr, NULL ist falsch.
func flag(row database.Row, column string) bool {
	v, ok := row.String(column)
	return ok && strings.TrimSpace(v) == "T"
}

func optInt(row database.Row, column string) *int64 {
	if v, ok := row.Int64(column); ok {
		return &v
	}
	return nil
}

func hasAnyLabel(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
