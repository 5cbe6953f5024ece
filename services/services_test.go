package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ptm-api/apperrors"
	"ptm-api/database"
	"ptm-api/database/dbtest"
	"ptm-api/evidence"
	"ptm-api/models"
)

func newService(db *dbtest.Querier) *PTMService {
	return NewPTMService(db, zap.NewNop())
}

func TestInfo(t *testing.T) {
	db := dbtest.New(database.Postgres).
		OnArgs("FROM MV_ENTRY", []any{"Q15796"}, database.MapRow{
			"iptm_entry_code": "Q15796",
			"uniprot_id":      "SMAD2_HUMAN",
			"gene_name":       "SMAD2",
			"gene_syn":        "MADH2|MADR2",
			"taxon_code":      "9606",
		}).
		OnArgs("FROM MV_ENTRY", []any{"PR:Q15796"}, database.MapRow{
			"iptm_entry_code": "PR:Q15796",
			"protein_name":    "mothers against decapentaplegic homolog 2",
			"category":        "gene",
		})

	info, err := newService(db).Info(context.Background(), "Q15796")
	require.NoError(t, err)
	assert.Equal(t, "SMAD2_HUMAN", info.UniprotID)
	assert.Equal(t, []string{"MADH2", "MADR2"}, info.Synonyms)
	assert.Equal(t, "9606", info.Organism.TaxonCode)
	require.NotNil(t, info.Pro)
	assert.Equal(t, "PR:Q15796", info.Pro.ID)
	assert.Equal(t, "gene", info.Pro.Category)
}

func TestInfoNotFound(t *testing.T) {
	_, err := newService(dbtest.New(database.Postgres)).Info(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, 404, apperrors.StatusCode(err))
}

func searchRows() []database.MapRow {
	return []database.MapRow{
		{"iptm_entry_code": "A", "role_as_substrate": "T", "role_as_enzyme": "F", "list_as_substrate": "p,p,ac", "num_site": int64(4)},
		{"iptm_entry_code": "B", "role_as_substrate": "T", "list_as_substrate": "ub"},
		{"iptm_entry_code": "C", "role_as_enzyme": "T", "list_as_substrate": "p"},
		{"iptm_entry_code": "D", "role_as_enzyme": "T"},
	}
}

func TestSearchFiltersByPTMLabel(t *testing.T) {
	db := dbtest.New(database.Postgres).On("FROM MV_ENTRY WHERE (", searchRows()...)
	svc := newService(db)

	results, total, err := svc.Search(context.Background(), SearchParams{
		Term: "smad", TermType: database.TermTypeAll, Role: database.RoleEnzymeOrSubstrate,
		PTMTypes: []string{"Phosphorylation"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].IPTMID)
	assert.True(t, results[0].SubstrateRole)
	assert.False(t, results[0].EnzymeRole)
	assert.Equal(t, int64(4), *results[0].Sites)
	assert.Nil(t, results[0].Isoforms)
	assert.Equal(t, "C", results[1].IPTMID)

	// ohne Filter: alle Kürzel, D hat keine PTMs
	_, total, err = svc.Search(context.Background(), SearchParams{
		Term: "smad", TermType: database.TermTypeAll, Role: database.RoleEnzymeOrSubstrate,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	calls := db.Calls()
	assert.Equal(t, []any{"%smad%", "%smad%", "%smad%"}, calls[0].Args)
}

func TestSearchPaging(t *testing.T) {
	db := dbtest.New(database.Postgres).On("FROM MV_ENTRY WHERE (", searchRows()...)
	svc := newService(db)
	params := SearchParams{Term: "x", TermType: database.TermTypeUniprotID, Role: database.RoleSubstrate, Paginate: true, Start: 1, End: 5}

	results, total, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, results, 2)
	assert.Equal(t, "B", results[0].IPTMID)

	params.Start, params.End = 10, 20
	results, _, err = svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, results)

	params.Start, params.End = 3, 3
	_, _, err = svc.Search(context.Background(), params)
	assert.True(t, errors.Is(err, apperrors.ErrSemanticRejection))
}

func TestSearchRejectsUnknownPTMTypeBeforeQuerying(t *testing.T) {
	db := dbtest.New(database.Postgres)
	_, _, err := newService(db).Search(context.Background(), SearchParams{
		Term: "x", TermType: database.TermTypeAll, Role: database.RoleEnzyme, PTMTypes: []string{"Farnesylation"},
	})
	assert.True(t, errors.Is(err, apperrors.ErrSemanticRejection))
	assert.Empty(t, db.Calls())
}

func TestSubstrateEvents(t *testing.T) {
	db := dbtest.New(database.Postgres).
		On("SELECT DISTINCT SUB_FORM_CODE", database.MapRow{"sub_form_code": "Q15796"}, database.MapRow{"sub_form_code": "Q15796-2"}).
		OnArgs("SELECT RESIDUE,POSITION", []any{"Q15796"},
			database.MapRow{"residue": "K", "position": int64(19), "event_name": "Acetylation", "source_label": "pro", "pmids": "11", "num_substrates": "1"},
			database.MapRow{"residue": "K", "position": int64(19), "event_name": "Acetylation", "source_label": "uniprot", "pmids": "11,12", "num_substrates": "1|2"},
		).
		OnArgs("SELECT RESIDUE,POSITION", []any{"Q15796-2"},
			database.MapRow{"residue": "S", "position": int64(465), "event_name": "Phosphorylation", "source_label": "rlimsp", "pmids": "13", "num_substrates": "200"},
		)

	forms, err := newService(db).SubstrateEvents(context.Background(), "Q15796")
	require.NoError(t, err)
	require.Len(t, forms, 2)

	assert.Equal(t, "Q15796", forms[0].SubForm)
	require.Len(t, forms[0].Events, 1)
	assert.Equal(t, "K19", forms[0].Events[0].Site)
	assert.Equal(t, int64(1+2+1), forms[0].Events[0].Score)

	require.Len(t, forms[1].Events, 1)
	assert.Equal(t, int64(-1), forms[1].Events[0].Score)

	bySubForm := EventsBySubForm(forms)
	assert.Len(t, bySubForm, 2)
}

func TestSubstrateEventsPropagatesUpstreamFailure(t *testing.T) {
	db := dbtest.New(database.Postgres).
		On("SELECT DISTINCT SUB_FORM_CODE", database.MapRow{"sub_form_code": "Q15796"}).
		Fail("SELECT RESIDUE,POSITION", apperrors.Upstream("postgres query", errors.New("connection reset")))

	_, err := newService(db).SubstrateEvents(context.Background(), "Q15796")
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamFailure))
}

func TestSubstrateEventsUnsortedRows(t *testing.T) {
	db := dbtest.New(database.Postgres).
		On("SELECT DISTINCT SUB_FORM_CODE", database.MapRow{"sub_form_code": "F"}).
		On("SELECT RESIDUE,POSITION",
			database.MapRow{"residue": "S", "position": int64(1), "event_name": "Phosphorylation"},
			database.MapRow{"residue": "T", "position": int64(2), "event_name": "Phosphorylation"},
			database.MapRow{"residue": "S", "position": int64(1), "event_name": "Phosphorylation"},
		)

	_, err := newService(db).SubstrateEvents(context.Background(), "F")
	assert.True(t, errors.Is(err, evidence.ErrUnsortedRows))
	assert.Equal(t, 500, apperrors.StatusCode(err))
}

func TestBatchEnzymes(t *testing.T) {
	db := dbtest.New(database.Postgres).On("GROUP BY enz_code", database.MapRow{
		"event_name": "Phosphorylation", "sub_code": "P04637", "sub_symbol": "TP53",
		"residue": "S", "position": int64(15), "enz_code": "Q13315", "enz_symbol": "ATM",
		"source_label": "psp,psp,hprd", "pmids": "1,2", "num_substrates": "3|4",
	})

	events, err := newService(db).BatchEnzymes(context.Background(), []models.QuerySubstrate{
		{SubstrateAC: "P04637", SiteResidue: "S", SitePosition: "15"},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(4), events[0].Score)
	assert.Equal(t, []any{"P04637", "S", int64(15)}, db.Calls()[0].Args)
}

func TestBatchEnzymesRejectsBadPosition(t *testing.T) {
	db := dbtest.New(database.Postgres)
	_, err := newService(db).BatchEnzymes(context.Background(), []models.QuerySubstrate{
		{SubstrateAC: "P04637", SiteResidue: "S", SitePosition: "15a"},
	})
	assert.True(t, errors.Is(err, apperrors.ErrSemanticRejection))
	assert.Empty(t, db.Calls())

	events, err := newService(db).BatchEnzymes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBatchPPI(t *testing.T) {
	db := dbtest.New(database.Oracle).On("FROM MV_EFIP", database.MapRow{
		"ptm_event_name": "Phosphorylation", "ptm_residue": "S", "ptm_position": float64(465),
		"impact": "increases", "ppi_pr_code": "Q13485", "ppi_pr_symbol": "SMAD4",
		"ppi_sub_code": "Q15796", "ppi_sub_symbol": "SMAD2", "ptm_source_label": "efip", "ppi_pmids": "9,10",
	})

	ppis, err := newService(db).BatchPPI(context.Background(), []models.QuerySubstrate{
		{SubstrateAC: "Q15796", SiteResidue: "S", SitePosition: "465"},
	})
	require.NoError(t, err)
	require.Len(t, ppis, 1)
	assert.Equal(t, "S465", ppis[0].Site)
	assert.Equal(t, "SMAD4", ppis[0].Interactant.Name)
	require.NotNil(t, ppis[0].Source)
	assert.Equal(t, "eFIP", ppis[0].Source.Name)
	assert.Equal(t, []string{"9", "10"}, ppis[0].PMIDs)
	assert.Contains(t, db.Calls()[0].Query, "ptm_sub_code = :1")
}

func TestDecorationsGroupBySourceAndPTM(t *testing.T) {
	db := dbtest.New(database.Postgres).On("SELECT EVENT_NAME,SOURCE_LABEL",
		database.MapRow{"event_name": "Phosphorylation", "source_label": "psp", "enz_code": "P1", "enz_symbol": "CDK1", "pmids": "1"},
		database.MapRow{"event_name": "Phosphorylation", "source_label": "psp", "enz_code": "P1", "enz_symbol": "CDK1", "pmids": "1,2"},
		database.MapRow{"event_name": "Phosphorylation", "source_label": "uniprot", "pmids": "3"},
	)

	decorations, err := newService(db).Decorations(context.Background(), "F", 5, "S")
	require.NoError(t, err)
	require.Len(t, decorations, 2)
	assert.Len(t, decorations[0].Enzymes, 1)
	assert.Equal(t, []string{"1", "2"}, decorations[0].PMIDs)
	assert.Equal(t, "uniprot", decorations[1].Source.Label)
	assert.Empty(t, decorations[1].Enzymes)
	assert.Equal(t, []any{"F", int64(5), "S"}, db.Calls()[0].Args)
}

type staticSource struct {
	data []byte
	err  error
}

func (s *staticSource) Fetch(context.Context) ([]byte, error) { return s.data, s.err }
func (s *staticSource) Name() string { return "static" }

func TestStatisticsReloadKeepsLastGoodSnapshot(t *testing.T) {
	src := &staticSource{data: []byte(`{"entries":3}`)}
	svc := NewStatisticsService(src, zap.NewNop())

	data, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":3}`, string(data))

	src.data = []byte(`{broken`)
	assert.Error(t, svc.Reload(context.Background()))

	src.data, src.err = nil, errors.New("bucket unavailable")
	assert.True(t, errors.Is(svc.Reload(context.Background()), apperrors.ErrUpstreamFailure))

	data, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":3}`, string(data))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statistics.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok":true}`), 0o644))

	svc := NewStatisticsService(FileSource{Path: path}, zap.NewNop())
	data, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	_, err = NewStatisticsService(FileSource{Path: path + ".missing"}, zap.NewNop()).Current(context.Background())
	assert.Error(t, err)
}

type mapBucket map[string][]byte

func (m mapBucket) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return nil, errors.New("no such key")
}

func TestBucketSource(t *testing.T) {
	src := BucketSource{Bucket: mapBucket{"statistics.json": []byte(`{}`)}, Key: "statistics.json"}
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
	assert.Equal(t, "s3:statistics.json", src.Name())
}

func TestComputeStatistics(t *testing.T) {
	db := dbtest.New(database.Postgres).
		On(database.EntryCountQuery, database.MapRow{"n": int64(120)}).
		On(database.SubstrateCountQuery, database.MapRow{"n": int64(80)}).
		On(database.EventCountByPTMQuery,
			database.MapRow{"event_name": "Phosphorylation", "n": int64(70)},
			database.MapRow{"event_name": "Acetylation", "n": int64(9)}).
		On(database.EventCountBySrcQuery, database.MapRow{"source_label": "psp", "n": int64(50)})

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stats, err := ComputeStatistics(context.Background(), db, now)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02T03:04:05Z", stats.GeneratedAt)
	assert.Equal(t, int64(120), stats.Entries)
	assert.Equal(t, int64(80), stats.Substrates)
	assert.Equal(t, map[string]int64{"Phosphorylation": 70, "Acetylation": 9}, stats.EventsByPTM)
	assert.Equal(t, map[string]int64{"psp": 50}, stats.EventsBySource)
}

func TestNormalizeTerm(t *testing.T) {
	tests := map[string]string{
		"  smad2 ":           "smad2",
		"tgf beta\treceptor": "tgf beta receptor",
		"tgf\u00a0beta":      "tgf beta",
		"\ufb01brillin":      "fibrillin",
		"cafe\u0301":         "caf\u00e9",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeTerm(in), in)
	}
}

func TestSearchNormalizesTerm(t *testing.T) {
	db := dbtest.New(database.Postgres)
	_, _, err := newService(db).Search(context.Background(), SearchParams{
		Term: " \ufb01brillin\u00a0 1 ", TermType: database.TermTypeUniprotID, Role: database.RoleEnzyme,
	})
	require.NoError(t, err)
	require.Len(t, db.Calls(), 1)
	assert.Equal(t, []any{"%fibrillin 1%"}, db.Calls()[0].Args)
}

func TestProteoforms(t *testing.T) {
	db := dbtest.New(database.Postgres).
		On("EVENT_NAME != 'Interaction'", database.MapRow{
			"sub_code": "PR:000025934", "sub_symbol": "SMAD2/iso:1/Phos:1", "sites": "S465,S467",
			"enz_code": "PR:Q13315", "enz_symbol": "ATM", "source_label": "pro", "pmids": "1,2",
		}).
		On("EVENT_NAME = 'Interaction'", database.MapRow{
			"sub_code": "PR:000025934", "enz_code": "PR:000000001", "event_name": "Interaction", "source_label": "nope",
		})
	svc := newService(db)

	forms, err := svc.Proteoforms(context.Background(), "Q15796")
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, []string{"S465", "S467"}, forms[0].Sites)
	assert.Equal(t, "ATM", forms[0].PTMEnzyme.Label)
	require.NotNil(t, forms[0].Source)
	assert.Equal(t, "PRO", forms[0].Source.Name)
	assert.Equal(t, []any{"%Q15796%"}, db.Calls()[0].Args)

	ppis, err := svc.ProteoformPPIs(context.Background(), "Q15796")
	require.NoError(t, err)
	require.Len(t, ppis, 1)
	assert.Equal(t, "Interaction", ppis[0].Relation)
	assert.Nil(t, ppis[0].Source)
	assert.Empty(t, ppis[0].PMIDs)
}

func TestPTMPPIs(t *testing.T) {
	db := dbtest.New(database.Postgres).On("FROM MV_EFIP", database.MapRow{
		"ptm_event_name": "Phosphorylation", "ptm_residue": "S", "ptm_position": int64(465),
		"ppi_sub_code": "Q15796", "ppi_pr_code": "Q13485", "impact": "increases",
		"ppi_source_label": "efip", "ppi_pmids": "9",
	})

	ppis, err := newService(db).PTMPPIs(context.Background(), "Q15796")
	require.NoError(t, err)
	require.Len(t, ppis, 1)
	assert.Equal(t, "S465", ppis[0].Site)
	assert.Equal(t, "increases", ppis[0].AssociationType)
	assert.Equal(t, "9", ppis[0].PMID)
	assert.Equal(t, []any{"Q15796", "Q15796"}, db.Calls()[0].Args)
}
