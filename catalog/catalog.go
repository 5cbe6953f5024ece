// Package catalog enthält die statischen Nachschlagetabellen für Quellen und PTM-Typen.
package catalog

import (
	"strings"

	"ptm-api/models"
)

var sources = map[string]models.Source{
	"hprd":    {Name: "HPRD", Label: "hprd", URL: "http://www.hprd.org/"},
	"pelm":    {Name: "phospho.ELM", Label: "pelm", URL: "http://phospho.elm.eu.org/"},
	"psp":     {Name: "PSP", Label: "psp", URL: "http://www.phosphosite.org/"},
	"p3db":    {Name: "p3DB: Plant Protein Phosphorylation DataBase", Label: "p3db", URL: "http://www.p3db.org/"},
	"pgrd":    {Name: "PhosphoGrid", Label: "pgrd", URL: "http://www.phosphogrid.org/"},
	"phat":    {Name: "PhosPhAt", Label: "phat", URL: "http://phosphat.uni-hohenheim.de/"},
	"pro":     {Name: "PRO", Label: "pro", URL: "http://pir.georgetown.edu/pro/pro.shtml"},
	"uniprot": {Name: "UniProt", Label: "uniprot", URL: "http://www.uniprot.org/"},
	"rlimsp":  {Name: "RLIMS-P", Label: "rlimsp", URL: "http://research.bioinformatics.udel.edu/rlimsp/"},
	"efip":    {Name: "eFIP", Label: "efip", URL: "http://research.bioinformatics.udel.edu/eFIPonline/index.php"},
	"pomb":    {Name: "PomBase", Label: "pomb", URL: "https://www.pombase.org/"},
	"npro":    {Name: "neXtProt", Label: "npro", URL: "www.nextprot.org"},
	"sign":    {Name: "Signor", Label: "sign", URL: "signor.uniroma2.it"},
	"sno":     {Name: "dbSNO", Label: "sno", URL: ""},
}

// LookupSource löst einen Quell-Code auf. Unbekannte Codes liefern ok=false.
func LookupSource(code string) (models.Source, bool) {
	s, ok := sources[code]
	return s, ok
}

type ptmType struct {
	name  string
	label string
}

// Reihenfolge entspricht der Default-Filterliste.
var ptmTypes = []ptmType{
	{"acetylation", "ac"},
	{"n-glycosylation", "gn"},
	{"o-glycosylation", "go"},
	{"c-glycosylation", "gc"},
	{"s-glycosylation", "gs"},
	{"methylation", "me"},
	{"myristoylation", "my"},
	{"phosphorylation", "p"},
	{"sumoylation", "su"},
	{"ubiquitination", "ub"},
	{"interaction", "i"},
	{"s-nitrosylation", "sno"},
}

// PTMLabel bildet einen PTM-Namen (case-insensitive) auf sein Kürzel ab.
func PTMLabel(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, t := range ptmTypes {
		if t.name == n {
			return t.label, true
		}
	}
	return "", false
}

// DefaultPTMLabels: alle Kürzel, wenn der Client keinen Filter schickt.
func DefaultPTMLabels() []string {
	labels := make([]string, 0, len(ptmTypes))
	for _, t := range ptmTypes {
		labels = append(labels, t.label)
	}
	return labels
}
