package database

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptm-api/apperrors"
)

func TestSearchQueryPlaceholders(t *testing.T) {
	q, args, err := SearchQuery(Postgres, "smad2", TermTypeAll, RoleEnzymeOrSubstrate, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(q, "?"))
	assert.Contains(t, q, "uniprot_id ILIKE ?")
	assert.Equal(t, []any{"%smad2%", "%smad2%", "%smad2%"}, args)

	q, args, err = SearchQuery(Oracle, "smad2", TermTypeProteinGene, RoleSubstrate, []int{9606, 10090})
	require.NoError(t, err)
	assert.Contains(t, q, "regexp_like(uniprot_id,:1,'i') OR regexp_like(gene_name,:2,'i')")
	assert.Contains(t, q, "taxon_code IN ('9606','10090')")
	assert.Contains(t, q, "(role_as_substrate = 'T')")
	assert.Equal(t, []any{"smad2", "smad2"}, args)
}

func TestSearchQueryRejectsUnknownValues(t *testing.T) {
	_, _, err := SearchQuery(Postgres, "x", "Gene", RoleEnzyme, nil)
	assert.True(t, errors.Is(err, apperrors.ErrSemanticRejection))

	_, _, err = SearchQuery(Postgres, "x", TermTypeAll, "Kinase", nil)
	assert.True(t, errors.Is(err, apperrors.ErrSemanticRejection))
}

func TestEventsQueryIsOrdered(t *testing.T) {
	q := EventsQuery(Postgres)
	assert.True(t, strings.HasSuffix(q, "RESIDUE,POSITION,EVENT_NAME"))
	assert.Contains(t, q, "ORDER BY CASE WHEN RESIDUE IS NULL OR POSITION IS NULL THEN 0 ELSE 1 END,")
	assert.Contains(t, EventsQuery(Oracle), "SUB_FORM_CODE = :1")
}

func TestBatchEnzymesQuery(t *testing.T) {
	sites := []SiteKey{
		{SubstrateAC: "Q15796", Residue: "K", Position: 19},
		{SubstrateAC: "P04637", Residue: "S", Position: 149},
	}

	q, args := BatchEnzymesQuery(Postgres, sites)
	assert.Contains(t, q, "string_agg(num_substrates,'|' ORDER BY source_label)")
	assert.Contains(t, q, "(sub_code = ? AND residue = ? AND position = ?) OR (sub_code = ? AND residue = ? AND position = ?)")
	assert.Equal(t, []any{"Q15796", "K", int64(19), "P04637", "S", int64(149)}, args)

	q, _ = BatchEnzymesQuery(Oracle, sites)
	assert.Contains(t, q, "LISTAGG(pmids,',') WITHIN GROUP (ORDER BY source_label)")
	assert.Contains(t, q, "(sub_code = :4 AND residue = :5 AND position = :6)")
}

func TestPTMPPIQueryBindsTwice(t *testing.T) {
	assert.Equal(t, "SELECT * FROM MV_EFIP WHERE PPI_SUB_CODE = :1 OR PPI_PR_CODE = :2", PTMPPIQuery(Oracle))
	assert.Equal(t, "SELECT * FROM MV_EFIP WHERE PPI_SUB_CODE = ? OR PPI_PR_CODE = ?", PTMPPIQuery(Postgres))
}
