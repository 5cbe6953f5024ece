package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptm-api/apperrors"
	"ptm-api/models"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		accept string
		want   Format
		err    bool
	}{
		{"", JSON, false},
		{"*/*", JSON, false},
		{"text/html, */*;q=0.8", JSON, false},
		{"application/json", JSON, false},
		{"text/plain", CSV, false},
		{"application/xml", JSON, true},
	}
	for _, tt := range tests {
		got, err := Negotiate(tt.accept)
		if tt.err {
			assert.True(t, errors.Is(err, apperrors.ErrSemanticRejection), tt.accept)
			continue
		}
		require.NoError(t, err, tt.accept)
		assert.Equal(t, tt.want, got, tt.accept)
	}
	assert.Equal(t, "text/csv", CSV.ContentType())
}

func TestSubstrateEventsCSV(t *testing.T) {
	forms := []models.SubFormEvents{{
		SubForm: "Q15796",
		Events: []models.Event{{
			Residue: "K",
			Site:    "K19",
			PTMType: "Acetylation",
			Score:   3,
			Sources: []models.Source{{Name: "PSP", Label: "psp"}, {Name: "UniProt", Label: "uniprot"}},
			Enzymes: []models.Enzyme{{ID: "Q09472", Type: "protein", Name: "EP300"}, {ID: "Q92793", Name: "CREBBP"}},
			PMIDs:   []string{"1", "2"},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, SubstrateEvents(forms).WriteCSV(&buf))
	assert.Equal(t,
		"sub_form,residue,site,ptm_type,score,sources,enzymes,pmids\n"+
			"Q15796,K,K19,Acetylation,3,\"PSP,UniProt\",\"[EP300,Q09472,protein],[CREBBP,Q92793,]\",\"1,2\"\n",
		buf.String())
}

func TestBatchEventsTable(t *testing.T) {
	pos := int64(15)
	table := BatchEvents([]models.BatchEvent{{
		Enzyme:       models.Entity{UniprotID: "Q13315", Name: "ATM"},
		Substrate:    models.Entity{UniprotID: "P04637", Name: "TP53"},
		PTMType:      "Phosphorylation",
		Site:         "S15",
		SitePosition: &pos,
		Score:        4,
		Sources:      []models.Source{{Name: "PSP"}, {Name: "HPRD"}},
		PMIDs:        []string{"1", "2"},
	}})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"ATM", "Q13315", "TP53", "P04637", "Phosphorylation", "S15", "15", "4", "PSP,HPRD", "1,2"}, table.Rows[0])
	assert.Len(t, table.Header, len(table.Rows[0]))
}

func TestProteoformTableUsesPMIDs(t *testing.T) {
	table := Proteoforms([]models.Proteoform{{
		ProID: "PR:000025934",
		Sites: []string{"S465", "S467"},
		PMIDs: []string{"42"},
	}})
	assert.Equal(t, "S465,S467", table.Rows[0][2])
	assert.Equal(t, "", table.Rows[0][5])
	assert.Equal(t, "42", table.Rows[0][6])
}
