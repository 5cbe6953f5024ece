package models

type Organism struct {
	TaxonCode  string `json:"taxon_code"`
	Species    string `json:"species"`
	CommonName string `json:"common_name"`
}

// Pro ist der optionale PRO-Eintrag ("PR:{id}") zu einem Protein.
type Pro struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
	ShortLabel string `json:"short_label"`
	Category   string `json:"category"`
}

type Info struct {
	UniprotAC   string   `json:"uniprot_ac"`
	UniprotID   string   `json:"uniprot_id"`
	ProteinName string   `json:"protein_name"`
	GeneName    string   `json:"gene_name"`
	Synonyms    []string `json:"synonyms"`
	Organism    Organism `json:"organism"`
	Pro         *Pro     `json:"pro"`
}

// SearchResult ist eine Trefferzeile aus MV_ENTRY.
type SearchResult struct {
	IPTMID              string   `json:"iptm_id"`
	UniprotAC           string   `json:"uniprot_ac"`
	ProteinName         string   `json:"protein_name"`
	GeneName            string   `json:"gene_name"`
	Synonyms            []string `json:"synonyms"`
	Organism            Organism `json:"organism"`
	SubstrateRole       bool     `json:"substrate_role"`
	SubstrateNum        *int64   `json:"substrate_num"`
	EnzymeRole          bool     `json:"enzyme_role"`
	EnzymeNum           *int64   `json:"enzyme_num"`
	PTMDependentPPIRole bool     `json:"ptm_dependent_ppi_role"`
	PTMDependentPPINum  *int64   `json:"ptm_dependent_ppi_num"`
	Sites               *int64   `json:"sites"`
	Isoforms            *int64   `json:"isoforms"`

	// PTM-Kürzel aus list_as_substrate, nur für den Filter
	PTMLabels []string `json:"-"`
}
