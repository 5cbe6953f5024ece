package evidence

import (
	"errors"
	"fmt"

	"ptm-api/catalog"
	"ptm-api/models"
)

// ErrUnsortedRows: ein (Site, PTM-Typ)-Schlüssel taucht nach einem anderen
// Schlüssel erneut auf. Die Zeilen müssen nach residue, position, event_name
// sortiert sein.
var ErrUnsortedRows = errors.New("evidence: rows are not ordered by site and ptm type")

// Diagnostics sammelt nicht-fatale Auffälligkeiten eines Laufs.
type Diagnostics struct {
	MissingPMIDs    []string // PMIDs ohne Eintrag in PmidStats
	MalformedCounts int      // nicht-numerische num_substrates-Segmente
}

type eventKey struct {
	site    string
	ptmType string
}

// Grouper faltet sortierte Zeilen in einem Durchlauf zu Events. Eine
// Zeile wird nur mit dem jeweils letzten Event zusammengeführt.
type Grouper struct {
	events []models.Event
	stats  *PmidStats
	closed map[eventKey]struct{}
	diag   Diagnostics
}

func NewGrouper() *Grouper {
	return &Grouper{
		stats:  NewPmidStats(),
		closed: make(map[eventKey]struct{}),
	}
}

// Add nimmt die nächste Zeile auf.
func (g *Grouper) Add(row EvidenceRow) error {
	pmids := SplitPMIDs(row.PMIDs)
	counts, malformed := SplitIntList(row.NumSubstrates, "|")
	g.diag.MalformedCounts += malformed
	// Zuordnung über den Index der rohen Liste, vor der Deduplizierung
	g.stats.RecordAligned(pmids, counts)

	cand := candidate(row, pmids)

	key := eventKey{site: cand.Site, ptmType: cand.PTMType}
	if n := len(g.events); n > 0 {
		last := &g.events[n-1]
		lastKey := eventKey{site: last.Site, ptmType: last.PTMType}
		if key == lastKey {
			mergeInto(last, cand)
			return nil
		}
		g.closed[lastKey] = struct{}{}
	}
	if _, ok := g.closed[key]; ok {
		return fmt.Errorf("%w: site %q ptm type %q", ErrUnsortedRows, key.site, key.ptmType)
	}
	g.events = append(g.events, cand)
	return nil
}

// Finish bewertet alle Events gegen die Statistik des gesamten Laufs.
func (g *Grouper) Finish() ([]models.Event, Diagnostics) {
	for i := range g.events {
		ev := &g.events[i]
		score, missing := Score(ev.SourceLabels(), ev.PMIDs, g.stats)
		ev.Score = score
		g.diag.MissingPMIDs = append(g.diag.MissingPMIDs, missing...)
	}
	return g.events, g.diag
}

// Stats gibt die bisher gesammelte PMID-Statistik zurück.
func (g *Grouper) Stats() *PmidStats {
	return g.stats
}

// GroupRows ist Add für jede Zeile plus Finish.
func GroupRows(rows []EvidenceRow) ([]models.Event, Diagnostics, error) {
	g := NewGrouper()
	for _, r := range rows {
		if err := g.Add(r); err != nil {
			return nil, Diagnostics{}, err
		}
	}
	events, diag := g.Finish()
	return events, diag, nil
}

func candidate(row EvidenceRow, pmids []string) models.Event {
	ev := models.Event{
		Residue: row.Site.Residue,
		Site:    row.Site.String(),
		PTMType: row.PTMType,
		Sources: []models.Source{},
		Enzymes: []models.Enzyme{},
		PMIDs:   Dedupe(pmids),
	}
	// Enzyme ohne Namen zählen als "kein Enzym".
	if row.Enzyme.Name != "" {
		ev.Enzymes = append(ev.Enzymes, row.Enzyme)
	}
	if src, ok := catalog.LookupSource(row.SourceCode); ok {
		ev.Sources = append(ev.Sources, src)
	}
	return ev
}

func mergeInto(dst *models.Event, src models.Event) {
	for _, enz := range src.Enzymes {
		if !containsEnzyme(dst.Enzymes, enz) {
			dst.Enzymes = append(dst.Enzymes, enz)
		}
	}
	for _, s := range src.Sources {
		if !containsSource(dst.Sources, s) {
			dst.Sources = append(dst.Sources, s)
		}
	}
	for _, p := range src.PMIDs {
		if !containsString(dst.PMIDs, p) {
			dst.PMIDs = append(dst.PMIDs, p)
		}
	}
}

func containsEnzyme(list []models.Enzyme, e models.Enzyme) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

func containsSource(list []models.Source, s models.Source) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
