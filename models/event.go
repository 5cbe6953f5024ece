package models

import "strconv"

// Site ist eine Stelle auf dem Substrat. Fehlt Residue oder Position,
// wird sie als leerer String gerendert.
type Site struct {
	Residue  string
	Position *int64
}

func (s Site) String() string {
	if s.Residue == "" || s.Position == nil {
		return ""
	}
	return s.Residue + strconv.FormatInt(*s.Position, 10)
}

// Enzyme: gleich, wenn alle drei Felder gleich sind.
type Enzyme struct {
	ID   string `json:"id"`
	Type string `json:"enz_type"`
	Name string `json:"name"`
}

// Source ist ein Eintrag aus dem statischen Quellenkatalog.
type Source struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Event fasst alle Zeilen zu (Site, PTM-Typ) zusammen.
type Event struct {
	Residue string   `json:"residue"`
	Site    string   `json:"site"`
	PTMType string   `json:"ptm_type"`
	Score   int64    `json:"score"`
	Sources []Source `json:"sources"`
	Enzymes []Enzyme `json:"enzymes"`
	PMIDs   []string `json:"pmids"`
}

// SourceLabels liefert die Kürzel der Quellen in Einfügereihenfolge.
func (e *Event) SourceLabels() []string {
	labels := make([]string, 0, len(e.Sources))
	for _, s := range e.Sources {
		labels = append(labels, s.Label)
	}
	return labels
}

// SubFormEvents hält die Events einer Substrat-Form in Abfragereihenfolge.
type SubFormEvents struct {
	SubForm string
	Events  []Event
}

type Entity struct {
	UniprotID string `json:"uniprot_id"`
	Name      string `json:"name"`
}

// BatchEvent ist eine voraggregierte Zeile aus /batch_ptm_enzymes.
type BatchEvent struct {
	Enzyme       Entity   `json:"enzyme"`
	Substrate    Entity   `json:"substrate"`
	PTMType      string   `json:"ptm_type"`
	Site         string   `json:"site"`
	SitePosition *int64   `json:"site_position"`
	Score        int64    `json:"score"`
	Sources      []Source `json:"source"`
	PMIDs        []string `json:"pmids"`
}

// BatchPPI: PTM-abhängige Interaktion an einer angefragten Stelle.
type BatchPPI struct {
	PTMType         string   `json:"ptm_type"`
	Site            string   `json:"site"`
	SitePosition    *int64   `json:"site_position"`
	AssociationType string   `json:"association_type"`
	Interactant     Entity   `json:"interactant"`
	Substrate       Entity   `json:"substrate"`
	Source          *Source  `json:"source"`
	PMIDs           []string `json:"pmids"`
}

// QuerySubstrate ist ein Element des Batch-Request-Bodys.
type QuerySubstrate struct {
	SubstrateAC  string `json:"substrate_ac" binding:"required"`
	SiteResidue  string `json:"site_residue" binding:"required"`
	SitePosition string `json:"site_position" binding:"required"`
}
