package evidence

// LargeScaleThreshold: eine Publikation mit mehr Substraten gilt als Großstudie.
const LargeScaleThreshold = 10

const textMinedSource = "rlimsp"

var preferredSources = map[string]struct{}{
	"p3db":    {},
	"pelm":    {},
	"pgrd":    {},
	"phat":    {},
	"pomb":    {},
	"psp":     {},
	"uniprot": {},
	"pro":     {},
	"npro":    {},
}

// Terms sind die drei Summanden des Scores.
type Terms struct {
	Sn int64 // Anzahl Quellen
	Sq int64 // Qualität der Quellen
	Sp int64 // Publikationsumfang
}

func (t Terms) Total() int64 {
	return t.Sn + t.Sq + t.Sp
}

// ScoreTerms berechnet die Summanden. PMIDs ohne Eintrag in stats zählen
// als 0 und werden in missing zurückgegeben.
func ScoreTerms(sources, pmids []string, stats Counts) (t Terms, missing []string) {
	sources = Dedupe(sources)

	if len(sources) >= 2 {
		t.Sn = 1
	}

	switch {
	case len(sources) == 1 && sources[0] == textMinedSource:
		t.Sq = 0
	case hasPreferred(sources):
		t.Sq = 2
	default:
		t.Sq = 1
	}

	nonLargeScale := false
	for _, pmid := range pmids {
		count, ok := stats.Lookup(pmid)
		if !ok {
			missing = append(missing, pmid)
			count = 0
		}
		if count <= LargeScaleThreshold {
			nonLargeScale = true
		}
	}
	switch {
	case nonLargeScale && len(pmids) >= 2:
		t.Sp = 1
	case nonLargeScale:
		t.Sp = 0
	default:
		t.Sp = -1
	}
	return t, missing
}

// Score = Sn + Sq + Sp, Wertebereich -1..4.
func Score(sources, pmids []string, stats Counts) (int64, []string) {
	t, missing := ScoreTerms(sources, pmids, stats)
	return t.Total(), missing
}

func hasPreferred(sources []string) bool {
	for _, s := range sources {
		if _, ok := preferredSources[s]; ok {
			return true
		}
	}
	return false
}
