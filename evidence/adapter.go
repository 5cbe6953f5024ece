// Package evidence fasst PTM-Zeilen aus MV_EVENT zu Events zusammen und
// berechnet deren Konfidenz-Score.
package evidence

import (
	"ptm-api/database"
	"ptm-api/models"
)

// EvidenceRow ist eine einzelne Zeile des Streaming-Pfads.
type EvidenceRow struct {
	Site          models.Site
	PTMType       string
	Enzyme        models.Enzyme
	SourceCode    string
	PMIDs         string // roh, evtl. kommasepariert
	NumSubstrates string // roh, "|"-separiert, parallel zu PMIDs
}

// BatchRow ist eine serverseitig gruppierte Zeile (ein Enzym pro Zeile).
type BatchRow struct {
	Site          models.Site
	PTMType       string
	Enzyme        models.Entity
	Substrate     models.Entity
	SourceLabels  string // ","
	PMIDs         string // ","
	NumSubstrates string // "|"
}

// FromRow liest die Spalten des Streaming-Pfads. Fehlende Spalten bleiben leer.
func FromRow(r database.Row) EvidenceRow {
	var e EvidenceRow
	e.Site = SiteOf(r, "residue", "position")
	e.PTMType, _ = r.String("event_name")
	e.Enzyme.ID, _ = r.String("enz_code")
	e.Enzyme.Type, _ = r.String("enz_type")
	e.Enzyme.Name, _ = r.String("enz_symbol")
	e.SourceCode, _ = r.String("source_label")
	e.PMIDs, _ = r.String("pmids")
	e.NumSubstrates, _ = r.String("num_substrates")
	return e
}

func BatchFromRow(r database.Row) BatchRow {
	var b BatchRow
	b.Site = SiteOf(r, "residue", "position")
	b.PTMType, _ = r.String("event_name")
	b.Enzyme.UniprotID, _ = r.String("enz_code")
	b.Enzyme.Name, _ = r.String("enz_symbol")
	b.Substrate.UniprotID, _ = r.String("sub_code")
	b.Substrate.Name, _ = r.String("sub_symbol")
	b.SourceLabels, _ = r.String("source_label")
	b.PMIDs, _ = r.String("pmids")
	b.NumSubstrates, _ = r.String("num_substrates")
	return b
}

// SiteOf liest Residue und Position aus den angegebenen Spalten.
// Nicht-numerische Positionen gelten als fehlend.
func SiteOf(r database.Row, residueCol, positionCol string) models.Site {
	var s models.Site
	s.Residue, _ = r.String(residueCol)
	if pos, ok := r.Int64(positionCol); ok {
		s.Position = &pos
	}
	return s
}
