package models

// Sequence ist die Eingabe für das Alignment.
type Sequence struct {
	ID       string `json:"id"`
	Sequence string `json:"sequence"`
}

// Decoration: PTM-Annotation an einer Alignment-Spalte.
type Decoration struct {
	PTMType string   `json:"ptm_type"`
	Source  *Source  `json:"source"`
	Enzymes []Entity `json:"enzymes"`
	PMIDs   []string `json:"pmids"`
}

type AlignmentItem struct {
	Site        string       `json:"site"`
	Position    int          `json:"position"`
	Decorations []Decoration `json:"decorations"`
}

type Alignment struct {
	ID       string          `json:"id"`
	Sequence []AlignmentItem `json:"sequence"`
}

// Statistics ist der gecachte Inhalt von /statistics.
type Statistics struct {
	GeneratedAt    string           `json:"generated_at"`
	Entries        int64            `json:"entries"`
	Substrates     int64            `json:"substrates"`
	EventsByPTM    map[string]int64 `json:"events_by_ptm"`
	EventsBySource map[string]int64 `json:"events_by_source"`
}
