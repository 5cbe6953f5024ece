package models

type Protein struct {
	ProID string `json:"pro_id"`
	Label string `json:"label"`
}

type Proteoform struct {
	ProID     string   `json:"pro_id"`
	Label     string   `json:"label"`
	Sites     []string `json:"sites"`
	PTMEnzyme Protein  `json:"ptm_enzyme"`
	Source    *Source  `json:"source"`
	PMIDs     []string `json:"pmids"`
}

type ProteoformPPI struct {
	Protein1 Protein  `json:"protein_1"`
	Relation string   `json:"relation"`
	Protein2 Protein  `json:"protein_2"`
	Source   *Source  `json:"source"`
	PMIDs    []string `json:"pmids"`
}

// PTMPPI stammt aus MV_EFIP.
type PTMPPI struct {
	PTMType         string  `json:"ptm_type"`
	Substrate       Entity  `json:"substrate"`
	Site            string  `json:"site"`
	Interactant     Entity  `json:"interactant"`
	AssociationType string  `json:"association_type"`
	Source          *Source `json:"source"`
	PMID            string  `json:"pmid"`
}
