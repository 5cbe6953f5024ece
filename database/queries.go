package database

import (
	"fmt"
	"strconv"
	"strings"

	"ptm-api/apperrors"
)

// Suchfeld-Typen und Rollen, wie sie das Frontend schickt.
const (
	TermTypeAll         = "All"
	TermTypeUniprotID   = "UniprotID"
	TermTypeProteinGene = "Protein/Gene Name"

	RoleEnzymeOrSubstrate  = "Enzyme or Substrate"
	RoleEnzyme             = "Enzyme"
	RoleSubstrate          = "Substrate"
	RoleEnzymeAndSubstrate = "Enzyme and Substrate"
)

// bind liefert den n-ten Platzhalter (1-basiert).
func (e Engine) bind(n int) string {
	if e == Oracle {
		return ":" + strconv.Itoa(n)
	}
	return "?"
}

// likeClause: case-insensitive Teilstring-Suche (ILIKE vs. regexp_like).
func (e Engine) likeClause(column string, n int) string {
	if e == Oracle {
		return fmt.Sprintf("regexp_like(%s,%s,'i')", column, e.bind(n))
	}
	return fmt.Sprintf("%s ILIKE %s", column, e.bind(n))
}

// LikeArg formatiert den Suchbegriff für likeClause.
func (e Engine) LikeArg(term string) string {
	if e == Oracle {
		return term
	}
	return "%" + term + "%"
}

func InfoQuery(e Engine) string {
	return "SELECT * FROM MV_ENTRY WHERE iptm_entry_code = " + e.bind(1)
}

// ProInfoQuery: gleiche Tabelle, Schlüssel ist "PR:{id}".
func ProInfoQuery(e Engine) string {
	return InfoQuery(e)
}

// SearchQuery baut die MV_ENTRY-Suche und die passenden Argumente.
func SearchQuery(e Engine, term, termType, role string, taxons []int) (string, []any, error) {
	var clause string
	var args []any
	arg := e.LikeArg(term)
	switch termType {
	case TermTypeAll:
		clause = strings.Join([]string{
			e.likeClause("uniprot_id", 1),
			e.likeClause("protein_name", 2),
			e.likeClause("gene_name", 3),
		}, " OR ")
		args = []any{arg, arg, arg}
	case TermTypeUniprotID:
		clause = e.likeClause("uniprot_id", 1)
		args = []any{arg}
	case TermTypeProteinGene:
		clause = e.likeClause("uniprot_id", 1) + " OR " + e.likeClause("gene_name", 2)
		args = []any{arg, arg}
	default:
		return "", nil, apperrors.Rejectf("invalid term_type %s", termType)
	}

	var roleClause string
	switch role {
	case RoleEnzymeOrSubstrate:
		roleClause = "role_as_enzyme = 'T' OR role_as_substrate = 'T'"
	case RoleEnzyme:
		roleClause = "role_as_enzyme = 'T'"
	case RoleSubstrate:
		roleClause = "role_as_substrate = 'T'"
	case RoleEnzymeAndSubstrate:
		roleClause = "role_as_enzyme = 'T' AND role_as_substrate = 'T'"
	default:
		return "", nil, apperrors.Rejectf("invalid role %s", role)
	}

	// Taxon-Codes sind bereits als int validiert, daher als Literale eingebettet.
	taxonClause := ""
	if len(taxons) > 0 {
		codes := make([]string, 0, len(taxons))
		for _, t := range taxons {
			codes = append(codes, "'"+strconv.Itoa(t)+"'")
		}
		taxonClause = " AND taxon_code IN (" + strings.Join(codes, ",") + ")"
	}

	query := fmt.Sprintf("SELECT * FROM MV_ENTRY WHERE (%s) AND (%s) AND iptm_entry_type != 'pro_id'%s ORDER BY iptm_entry_code",
		clause, roleClause, taxonClause)
	return query, args, nil
}

func SubFormsQuery(e Engine) string {
	return "SELECT DISTINCT SUB_FORM_CODE FROM MV_EVENT WHERE SUB_CODE = " + e.bind(1) + " ORDER BY SUB_FORM_CODE"
}

// Zeilen ohne vollständige Stelle haben alle die leere Site und müssen
// deshalb zusammenhängend und nach EVENT_NAME sortiert vorne stehen.
const noSite = "CASE WHEN RESIDUE IS NULL OR POSITION IS NULL THEN "

// EventsQuery muss nach (residue, position, event_name) sortieren: der
// Grouper fasst nur benachbarte Zeilen zusammen.
func EventsQuery(e Engine) string {
	return "SELECT RESIDUE,POSITION,EVENT_NAME,ENZ_CODE,ENZ_TYPE,ENZ_SYMBOL,SOURCE_LABEL,PMIDS,NUM_SUBSTRATES " +
		"FROM MV_EVENT WHERE SUB_FORM_CODE = " + e.bind(1) +
		" ORDER BY " + noSite + "0 ELSE 1 END," + noSite + "EVENT_NAME END,RESIDUE,POSITION,EVENT_NAME"
}

func ProteoformsQuery(e Engine) string {
	return "SELECT * FROM MV_PROTEO WHERE " + e.likeClause("SUB_XREF", 1) + " AND EVENT_NAME != 'Interaction'"
}

func ProteoformPPIQuery(e Engine) string {
	return "SELECT * FROM MV_PROTEO WHERE " + e.likeClause("SUB_XREF", 1) + " AND EVENT_NAME = 'Interaction'"
}

func PTMPPIQuery(e Engine) string {
	return "SELECT * FROM MV_EFIP WHERE PPI_SUB_CODE = " + e.bind(1) + " OR PPI_PR_CODE = " + e.bind(2)
}

// SiteKey identifiziert eine Substrat-Stelle in Batch-Anfragen.
type SiteKey struct {
	SubstrateAC string
	Residue     string
	Position    int64
}

// siteFilter baut "(a = ? AND b = ? AND c = ?) OR ..." samt Argumenten.
func siteFilter(e Engine, acCol, residueCol, positionCol string, sites []SiteKey) (string, []any) {
	groups := make([]string, 0, len(sites))
	args := make([]any, 0, len(sites)*3)
	for i, s := range sites {
		n := i*3 + 1
		groups = append(groups, fmt.Sprintf("(%s = %s AND %s = %s AND %s = %s)",
			acCol, e.bind(n), residueCol, e.bind(n+1), positionCol, e.bind(n+2)))
		args = append(args, s.SubstrateAC, s.Residue, s.Position)
	}
	return strings.Join(groups, " OR "), args
}

// BatchEnzymesQuery: die Datenbank gruppiert bereits pro (Enzym, Substrat, Stelle, PTM)
// und liefert Quellen, Substrat-Zahlen und PMIDs als gleich sortierte Listen.
func BatchEnzymesQuery(e Engine, sites []SiteKey) (string, []any) {
	filter, args := siteFilter(e, "sub_code", "residue", "position", sites)
	var aggregates string
	if e == Oracle {
		aggregates = "LISTAGG(source_label,',') WITHIN GROUP (ORDER BY source_label) AS source_label, " +
			"LISTAGG(num_substrates,'|') WITHIN GROUP (ORDER BY source_label) AS num_substrates, " +
			"LISTAGG(pmids,',') WITHIN GROUP (ORDER BY source_label) AS pmids"
	} else {
		aggregates = "string_agg(source_label,',' ORDER BY source_label) AS source_label, " +
			"string_agg(num_substrates,'|' ORDER BY source_label) AS num_substrates, " +
			"string_agg(pmids,',' ORDER BY source_label) AS pmids"
	}
	query := "SELECT event_name,sub_code,sub_symbol,residue,position,enz_code,enz_symbol, " + aggregates +
		" FROM MV_EVENT WHERE (" + filter + ") AND enz_code IS NOT NULL" +
		" GROUP BY enz_code,enz_symbol,sub_code,sub_symbol,residue,position,event_name" +
		" ORDER BY sub_code,residue,position,event_name,enz_code"
	return query, args
}

func BatchPPIQuery(e Engine, sites []SiteKey) (string, []any) {
	filter, args := siteFilter(e, "ptm_sub_code", "ptm_residue", "ptm_position", sites)
	return "SELECT * FROM MV_EFIP WHERE " + filter, args
}

// SequencesQuery liefert pro Form die Proteinsequenz für das Alignment.
func SequencesQuery(e Engine) string {
	return "SELECT SUB_FORM_CODE AS ID, SEQUENCE FROM MV_SEQUENCE WHERE SUB_CODE = " + e.bind(1) + " ORDER BY SUB_FORM_CODE"
}

// DecorationsQuery: PTM-Ereignisse einer Form an genau einer Stelle.
func DecorationsQuery(e Engine) string {
	return "SELECT EVENT_NAME,SOURCE_LABEL,ENZ_CODE,ENZ_SYMBOL,PMIDS FROM MV_EVENT " +
		"WHERE SUB_FORM_CODE = " + e.bind(1) + " AND POSITION = " + e.bind(2) + " AND RESIDUE = " + e.bind(3) +
		" ORDER BY EVENT_NAME,SOURCE_LABEL"
}

// Statistik-Abfragen für den Snapshot.
const (
	EntryCountQuery      = "SELECT COUNT(*) AS N FROM MV_ENTRY WHERE iptm_entry_type != 'pro_id'"
	EventCountByPTMQuery = "SELECT EVENT_NAME, COUNT(*) AS N FROM MV_EVENT GROUP BY EVENT_NAME ORDER BY EVENT_NAME"
	EventCountBySrcQuery = "SELECT SOURCE_LABEL, COUNT(*) AS N FROM MV_EVENT GROUP BY SOURCE_LABEL ORDER BY SOURCE_LABEL"
	SubstrateCountQuery  = "SELECT COUNT(DISTINCT SUB_CODE) AS N FROM MV_EVENT"
)
