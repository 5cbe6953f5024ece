// Package render wählt das Antwortformat und flacht Ergebnisse für CSV ab.
package render

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"ptm-api/apperrors"
	"ptm-api/evidence"
	"ptm-api/models"
)

type Format int

const (
	JSON Format = iota
	CSV
)

// ContentType der Antwort.
func (f Format) ContentType() string {
	if f == CSV {
		return "text/csv"
	}
	return "application/json"
}

// Negotiate wertet den Accept-Header aus. Fehlt er oder enthält er */*,
// wird JSON geliefert; text/plain liefert CSV.
func Negotiate(accept string) (Format, error) {
	accept = strings.TrimSpace(accept)
	switch {
	case accept == "" || strings.Contains(accept, "*/*"):
		return JSON, nil
	case accept == "application/json":
		return JSON, nil
	case accept == "text/plain":
		return CSV, nil
	default:
		return JSON, apperrors.Rejectf("Invalid ACCEPT header - %s", accept)
	}
}

// Table ist eine abgeflachte Ergebnisliste.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func optInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func sourceName(s *models.Source) string {
	if s == nil {
		return ""
	}
	return s.Name
}

func sourceNames(sources []models.Source) string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	return evidence.JoinList(names, ",")
}

// enzymeList: "[name,id,type]" je Enzym, kommagetrennt.
func enzymeList(enzymes []models.Enzyme) string {
	parts := make([]string, 0, len(enzymes))
	for _, e := range enzymes {
		parts = append(parts, "["+e.Name+","+e.ID+","+e.Type+"]")
	}
	return evidence.JoinList(parts, ",")
}

func SubstrateEvents(forms []models.SubFormEvents) Table {
	t := Table{Header: []string{"sub_form", "residue", "site", "ptm_type", "score", "sources", "enzymes", "pmids"}}
	for _, f := range forms {
		for _, e := range f.Events {
			t.Rows = append(t.Rows, []string{
				f.SubForm,
				e.Residue,
				e.Site,
				e.PTMType,
				strconv.FormatInt(e.Score, 10),
				sourceNames(e.Sources),
				enzymeList(e.Enzymes),
				evidence.JoinList(e.PMIDs, ","),
			})
		}
	}
	return t
}

func SearchResults(results []models.SearchResult) Table {
	t := Table{Header: []string{
		"iptm_id", "protein_name", "gene_name", "synonyms",
		"organism_taxon_code", "organism_species", "organism_common_name",
		"substrate_role", "substrate_num", "enzyme_role", "enzyme_num",
		"ptm_dependent_ppi_role", "ptm_dependent_ppi_num", "sites", "isoforms",
	}}
	for _, r := range results {
		t.Rows = append(t.Rows, []string{
			r.IPTMID, r.ProteinName, r.GeneName, evidence.JoinList(r.Synonyms, ","),
			r.Organism.TaxonCode, r.Organism.Species, r.Organism.CommonName,
			strconv.FormatBool(r.SubstrateRole), optInt(r.SubstrateNum),
			strconv.FormatBool(r.EnzymeRole), optInt(r.EnzymeNum),
			strconv.FormatBool(r.PTMDependentPPIRole), optInt(r.PTMDependentPPINum),
			optInt(r.Sites), optInt(r.Isoforms),
		})
	}
	return t
}

func Proteoforms(items []models.Proteoform) Table {
	t := Table{Header: []string{"pro_id", "label", "sites", "ptm_enzyme_id", "ptm_enzyme_label", "source", "pmids"}}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			p.ProID, p.Label, evidence.JoinList(p.Sites, ","),
			p.PTMEnzyme.ProID, p.PTMEnzyme.Label,
			sourceName(p.Source), evidence.JoinList(p.PMIDs, ","),
		})
	}
	return t
}

func ProteoformPPIs(items []models.ProteoformPPI) Table {
	t := Table{Header: []string{"protein_1_pro_id", "protein_1_label", "relation", "protein_2_pro_id", "protein_2_label", "source", "pmids"}}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			p.Protein1.ProID, p.Protein1.Label, p.Relation,
			p.Protein2.ProID, p.Protein2.Label,
			sourceName(p.Source), evidence.JoinList(p.PMIDs, ","),
		})
	}
	return t
}

func PTMPPIs(items []models.PTMPPI) Table {
	t := Table{Header: []string{
		"ptm_type", "substrate_uniprot_id", "substrate_name", "site",
		"interactant_uniprot_id", "interactant_name", "association_type", "source", "pmid",
	}}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			p.PTMType, p.Substrate.UniprotID, p.Substrate.Name, p.Site,
			p.Interactant.UniprotID, p.Interactant.Name, p.AssociationType,
			sourceName(p.Source), p.PMID,
		})
	}
	return t
}

func BatchEvents(items []models.BatchEvent) Table {
	t := Table{Header: []string{
		"enz_name", "enz_id", "sub_name", "sub_id", "ptm_type", "site", "site_position", "score", "source", "pmids",
	}}
	for _, b := range items {
		t.Rows = append(t.Rows, []string{
			b.Enzyme.Name, b.Enzyme.UniprotID, b.Substrate.Name, b.Substrate.UniprotID,
			b.PTMType, b.Site, optInt(b.SitePosition), strconv.FormatInt(b.Score, 10),
			sourceNames(b.Sources), evidence.JoinList(b.PMIDs, ","),
		})
	}
	return t
}

func BatchPPIs(items []models.BatchPPI) Table {
	t := Table{Header: []string{
		"ptm_type", "site", "site_position", "association_type",
		"interactant_id", "interactant_name", "substrate_id", "substrate_name", "source", "pmids",
	}}
	for _, b := range items {
		t.Rows = append(t.Rows, []string{
			b.PTMType, b.Site, optInt(b.SitePosition), b.AssociationType,
			b.Interactant.UniprotID, b.Interactant.Name, b.Substrate.UniprotID, b.Substrate.Name,
			sourceName(b.Source), evidence.JoinList(b.PMIDs, ","),
		})
	}
	return t
}
