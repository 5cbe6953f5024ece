package evidence

import (
	"ptm-api/catalog"
	"ptm-api/models"
)

// BuildBatchEvent wertet eine vorab gruppierte Zeile aus. Es gibt keine
// Zusammenführung über Zeilen hinweg.
//
// Der Score wird mit den deduplizierten Roh-Labels berechnet, ausgegeben
// werden nur die im Katalog bekannten Quellen.
func BuildBatchEvent(row BatchRow) (models.BatchEvent, Diagnostics) {
	var diag Diagnostics

	labels := Dedupe(SplitList(row.SourceLabels, ","))
	pmids := Dedupe(SplitList(row.PMIDs, ","))
	counts, malformed := SplitIntList(row.NumSubstrates, "|")
	diag.MalformedCounts = malformed

	stats := NewPmidStats()
	stats.RecordAligned(pmids, counts)

	score, missing := Score(labels, pmids, stats)
	diag.MissingPMIDs = missing

	sources := make([]models.Source, 0, len(labels))
	for _, l := range labels {
		if src, ok := catalog.LookupSource(l); ok {
			sources = append(sources, src)
		}
	}

	return models.BatchEvent{
		Enzyme:       row.Enzyme,
		Substrate:    row.Substrate,
		PTMType:      row.PTMType,
		Site:         row.Site.String(),
		SitePosition: row.Site.Position,
		Score:        score,
		Sources:      sources,
		PMIDs:        pmids,
	}, diag
}
