package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ptm-api/database"
)

func TestBuildBatchEventDedupesAndZips(t *testing.T) {
	row := BatchFromRow(database.MapRow{
		"event_name":     "Phosphorylation",
		"sub_code":       "P04637",
		"sub_symbol":     "TP53",
		"residue":        "S",
		"position":       int64(15),
		"enz_code":       "Q13315",
		"enz_symbol":     "ATM",
		"source_label":   "psp,psp,hprd",
		"pmids":          "1,2",
		"num_substrates": "3|4",
	})

	ev, diag := BuildBatchEvent(row)

	assert.Equal(t, "S15", ev.Site)
	if assert.NotNil(t, ev.SitePosition) {
		assert.Equal(t, int64(15), *ev.SitePosition)
	}
	assert.Equal(t, "ATM", ev.Enzyme.Name)
	assert.Equal(t, "P04637", ev.Substrate.UniprotID)
	assert.Equal(t, []string{"1", "2"}, ev.PMIDs)
	if assert.Len(t, ev.Sources, 2) {
		assert.Equal(t, "psp", ev.Sources[0].Label)
		assert.Equal(t, "hprd", ev.Sources[1].Label)
	}
	assert.Equal(t, int64(4), ev.Score)
	assert.Empty(t, diag.MissingPMIDs)
}

func TestBuildBatchEventPadsShortCounts(t *testing.T) {
	ev, _ := BuildBatchEvent(BatchRow{
		SourceLabels:  "rlimsp",
		PMIDs:         "10,20,30",
		NumSubstrates: "90|95",
	})

	// 30 erhält 0 -> keine reine Großstudie
	assert.Equal(t, int64(0+0+1), ev.Score)
}

func TestBuildBatchEventScoresUnknownLabels(t *testing.T) {
	ev, _ := BuildBatchEvent(BatchRow{
		SourceLabels:  "hprd,legacy",
		PMIDs:         "5",
		NumSubstrates: "1",
	})

	// unbekanntes Label zählt für Sn, wird aber nicht ausgegeben
	assert.Len(t, ev.Sources, 1)
	assert.Equal(t, int64(1+1+0), ev.Score)
}
