package evidence

// Counts ist die Sicht des Scorers auf die PMID-Statistik.
type Counts interface {
	Lookup(pmid string) (int64, bool)
}

// PmidStats sammelt pmid -> Anzahl Substrate für genau einen Aggregationslauf.
// Record überschreibt (last writer wins).
type PmidStats struct {
	counts map[string]int64
}

func NewPmidStats() *PmidStats {
	return &PmidStats{counts: make(map[string]int64)}
}

func (s *PmidStats) Record(pmid string, count int64) {
	s.counts[pmid] = count
}

// RecordAligned paart pmids und counts über den Index; fehlende counts sind 0.
func (s *PmidStats) RecordAligned(pmids []string, counts []int64) {
	for i, pmid := range pmids {
		var c int64
		if i < len(counts) {
			c = counts[i]
		}
		s.Record(pmid, c)
	}
}

func (s *PmidStats) Lookup(pmid string) (int64, bool) {
	c, ok := s.counts[pmid]
	return c, ok
}

// Get liefert 0 für unbekannte PMIDs.
func (s *PmidStats) Get(pmid string) int64 {
	return s.counts[pmid]
}

func (s *PmidStats) Len() int {
	return len(s.counts)
}
